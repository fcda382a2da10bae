package git

import "strings"

// NormalizeRemoteURL turns git@host:owner/name.git and
// https://host/owner/name.git into owner/name. URLs for other hosts are only
// trimmed of their .git suffix.
func NormalizeRemoteURL(raw, host string) string {
	s := strings.TrimSpace(raw)
	if host != "" {
		s = strings.TrimPrefix(s, "git@"+host+":")
		s = strings.TrimPrefix(s, "https://"+host+"/")
	}
	s = strings.TrimSuffix(s, ".git")
	return strings.TrimSpace(s)
}

// slugSegment returns the i-th /-separated segment of slug, absent when it is
// missing or empty.
func slugSegment(slug string, i int) (string, bool) {
	parts := strings.Split(slug, "/")
	if i >= len(parts) || parts[i] == "" {
		return "", false
	}
	return parts[i], true
}
