package models

import (
	"regexp"
	"strings"
	"time"
)

var semverPattern = regexp.MustCompile(`^v?\d+\.\d+\.\d+$`)

// Tag is a git tag with its creation date.
type Tag struct {
	Name string `json:"name" yaml:"name"`
	Date string `json:"date" yaml:"date"`
}

// Time parses Date.
func (t Tag) Time() (time.Time, error) {
	return parseDate(t.Date)
}

// IsSemanticVersion reports whether the name is MAJOR.MINOR.PATCH with an
// optional leading "v". Pre-release and build suffixes are not accepted.
func (t Tag) IsSemanticVersion() bool {
	return semverPattern.MatchString(t.Name)
}

// Version returns the name without its leading "v" for semantic version tags.
func (t Tag) Version() (string, bool) {
	if !t.IsSemanticVersion() {
		return "", false
	}
	return strings.TrimPrefix(t.Name, "v"), true
}

// IsNewerThan is false when either tag has no version.
func (t Tag) IsNewerThan(other Tag) bool {
	cmp, ok := t.compare(other)
	return ok && cmp > 0
}

// IsOlderThan is false when either tag has no version.
func (t Tag) IsOlderThan(other Tag) bool {
	cmp, ok := t.compare(other)
	return ok && cmp < 0
}

// IsSameAs is false when either tag has no version.
func (t Tag) IsSameAs(other Tag) bool {
	cmp, ok := t.compare(other)
	return ok && cmp == 0
}

func (t Tag) compare(other Tag) (int, bool) {
	a, ok := t.Version()
	if !ok {
		return 0, false
	}
	b, ok := other.Version()
	if !ok {
		return 0, false
	}
	return compareVersions(a, b), true
}

// compareVersions compares dotted numeric versions component by component.
// Components are compared as arbitrary-length integers.
func compareVersions(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareDigits(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// LatestTag returns the tag with the highest version. Non-semantic tags are
// ignored; on equal versions the first one wins.
func LatestTag(tags []Tag) (Tag, bool) {
	var latest Tag
	found := false
	for _, tag := range tags {
		if !tag.IsSemanticVersion() {
			continue
		}
		if !found || tag.IsNewerThan(latest) {
			latest = tag
			found = true
		}
	}
	return latest, found
}
