package git

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

type usernameStrategy struct {
	name    string
	resolve func(ctx context.Context, displayName string) (string, bool)
}

// UsernameResolver guesses a platform username from an ordered list of
// strategies. The first strategy with an answer wins.
type UsernameResolver struct {
	strategies []usernameStrategy
	logger     *slog.Logger
}

func newUsernameResolver(r *Repository) *UsernameResolver {
	loggedIn := regexp.MustCompile(`Logged in to ` + regexp.QuoteMeta(r.host.Name) + ` as ([a-zA-Z0-9_-]+)`)

	return &UsernameResolver{
		strategies: []usernameStrategy{
			{name: "commits", resolve: r.usernameFromCommits},
			{name: "cli", resolve: func(ctx context.Context, _ string) (string, bool) {
				return r.usernameFromCLI(ctx, loggedIn)
			}},
			{name: "remote", resolve: func(ctx context.Context, _ string) (string, bool) {
				return r.usernameFromRemote(ctx)
			}},
		},
		logger: r.logger,
	}
}

// Resolve returns the first username found, or absent when no strategy
// produced one.
func (u *UsernameResolver) Resolve(ctx context.Context, displayName string) (string, bool) {
	for _, s := range u.strategies {
		if username, ok := s.resolve(ctx, displayName); ok {
			u.logger.Debug("resolved username", "strategy", s.name, "username", username)
			return username, true
		}
	}
	return "", false
}

// GuessUsername resolves the platform username for a display name.
func (r *Repository) GuessUsername(ctx context.Context, displayName string) (string, bool) {
	return r.usernames.Resolve(ctx, displayName)
}

// usernameFromCommits scans commits made with a noreply address, oldest
// first, for one authored under displayName.
func (r *Repository) usernameFromCommits(ctx context.Context, displayName string) (string, bool) {
	if displayName == "" {
		return "", false
	}
	out, ok := r.tolerant(ctx, "log", "--author=@"+r.host.NoreplyDomain, "--pretty=%an:%ae", "--reverse")
	if !ok {
		return "", false
	}

	for _, a := range parseAuthorLines(out) {
		if !strings.EqualFold(a.name, displayName) || strings.Contains(a.name, "[bot]") {
			continue
		}
		if local, _, _ := strings.Cut(a.email, "@"); local != "" {
			return local, true
		}
	}
	return "", false
}

func (r *Repository) usernameFromCLI(ctx context.Context, loggedIn *regexp.Regexp) (string, bool) {
	out, ok := r.tolerantCmd(ctx, r.host.CLI, "auth", "status", "-h", r.host.Name)
	if !ok {
		return "", false
	}
	if m := loggedIn.FindStringSubmatch(out); m != nil {
		return m[1], true
	}
	return "", false
}

func (r *Repository) usernameFromRemote(ctx context.Context) (string, bool) {
	out, ok := r.tolerant(ctx, "config", "remote."+r.remote+".url")
	if !ok || out == "" {
		return "", false
	}
	return slugSegment(NormalizeRemoteURL(out, r.host.Name), 0)
}
