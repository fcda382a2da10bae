package git

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/emilianohg/gitprobe/internal/api"
	"github.com/emilianohg/gitprobe/internal/logging"
	"github.com/emilianohg/gitprobe/internal/models"
	"github.com/emilianohg/gitprobe/internal/process"
)

const (
	DefaultFallbackBranch = "master"
	DefaultRemote         = "origin"
	DefaultCommitLimit    = 10
)

// Host describes the code hosting platform the checkout is published on.
type Host struct {
	Name          string // github.com
	NoreplyDomain string // users.noreply.github.com
	CLI           string // gh
}

// DefaultHost is github.com.
func DefaultHost() Host {
	return Host{
		Name:          "github.com",
		NoreplyDomain: "users.noreply.github.com",
		CLI:           "gh",
	}
}

// Options configures a Repository. Zero values fall back to defaults.
type Options struct {
	Runner         process.Runner
	Fetcher        api.Fetcher
	GitBinary      string
	Host           Host
	Remote         string
	APIBaseURL     string
	FallbackBranch string
	Logger         *slog.Logger
}

// Repository answers read-only questions about a checkout. Every query runs
// its commands afresh; nothing is cached between calls.
type Repository struct {
	runner         process.Runner
	fetcher        api.Fetcher
	gitBin         string
	host           Host
	remote         string
	apiBaseURL     string
	fallbackBranch string
	logger         *slog.Logger
	usernames      *UsernameResolver
}

func New(opts Options) *Repository {
	r := &Repository{
		runner:         opts.Runner,
		fetcher:        opts.Fetcher,
		gitBin:         opts.GitBinary,
		host:           opts.Host,
		remote:         opts.Remote,
		apiBaseURL:     opts.APIBaseURL,
		fallbackBranch: opts.FallbackBranch,
		logger:         opts.Logger,
	}

	if r.runner == nil {
		r.runner = process.NewExecRunner("")
	}
	if r.gitBin == "" {
		r.gitBin = "git"
	}
	defaults := DefaultHost()
	if r.host.Name == "" {
		r.host.Name = defaults.Name
	}
	if r.host.NoreplyDomain == "" {
		r.host.NoreplyDomain = "users.noreply." + r.host.Name
	}
	if r.host.CLI == "" {
		r.host.CLI = defaults.CLI
	}
	if r.remote == "" {
		r.remote = DefaultRemote
	}
	if r.apiBaseURL == "" {
		r.apiBaseURL = api.DefaultBaseURL
	}
	if r.fallbackBranch == "" {
		r.fallbackBranch = DefaultFallbackBranch
	}
	if r.logger == nil {
		r.logger = logging.GetLogger()
	}

	r.usernames = newUsernameResolver(r)
	return r
}

// FallbackBranch is returned whenever a branch cannot be determined.
func (r *Repository) FallbackBranch() string {
	return r.fallbackBranch
}

// Host returns the hosting platform settings in effect.
func (r *Repository) Host() Host {
	return r.host
}

// tolerant runs git and reports failure as ok == false.
func (r *Repository) tolerant(ctx context.Context, args ...string) (string, bool) {
	return r.tolerantCmd(ctx, r.gitBin, args...)
}

func (r *Repository) tolerantCmd(ctx context.Context, name string, args ...string) (string, bool) {
	argv := append([]string{name}, args...)
	out, ok, err := process.Run(ctx, r.runner, process.Tolerant, argv...)
	if err != nil || !ok {
		r.logger.Debug("command failed, using empty result", "cmd", strings.Join(argv, " "))
		return "", false
	}
	return out, true
}

// fatal runs git and returns its failure.
func (r *Repository) fatal(ctx context.Context, args ...string) (string, error) {
	argv := append([]string{r.gitBin}, args...)
	out, _, err := process.Run(ctx, r.runner, process.Fatal, argv...)
	if err != nil {
		return "", err
	}
	return out, nil
}

// Branch returns the checked out branch, or the fallback branch.
func (r *Repository) Branch(ctx context.Context) string {
	out, ok := r.tolerant(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if !ok || out == "" {
		return r.fallbackBranch
	}
	return out
}

// ChangedFiles lists paths with working tree or index changes.
func (r *Repository) ChangedFiles(ctx context.Context) []string {
	out, ok := r.tolerant(ctx, "status", "--porcelain")
	if !ok {
		return []string{}
	}
	return ParseChangedFiles(out)
}

// HasUncommittedChanges reports whether git status prints anything.
func (r *Repository) HasUncommittedChanges(ctx context.Context) bool {
	out, ok := r.tolerant(ctx, "status", "--porcelain")
	return ok && out != ""
}

// Contributors lists commit authors, most commits first.
func (r *Repository) Contributors(ctx context.Context) []models.User {
	// An explicit revision keeps shortlog from reading stdin.
	out, ok := r.tolerant(ctx, "shortlog", "-sne", "HEAD")
	if !ok {
		return []models.User{}
	}
	return ParseContributors(out)
}

// CurrentTag returns the most recent tag reachable from HEAD.
func (r *Repository) CurrentTag(ctx context.Context) (string, bool) {
	out, ok := r.tolerant(ctx, "describe", "--tags", "--abbrev=0")
	if !ok || out == "" {
		return "", false
	}
	return out, true
}

// LastCommit returns the HEAD commit.
func (r *Repository) LastCommit(ctx context.Context) (models.Commit, bool) {
	out, ok := r.tolerant(ctx, "log", "-1", "--pretty={%H|%an|%ae|%ad|%s}")
	if !ok {
		return models.Commit{}, false
	}
	return ParseCommit(out)
}

// LastCommits returns up to limit commits, newest first. A limit below one
// uses DefaultCommitLimit.
func (r *Repository) LastCommits(ctx context.Context, limit int) []models.Commit {
	if limit < 1 {
		limit = DefaultCommitLimit
	}
	out, ok := r.tolerant(ctx, "log", fmt.Sprintf("-n%d", limit), "--date=iso", "--pretty=%H|%an|%ae|%ad|%s")
	if !ok {
		return []models.Commit{}
	}
	return ParseCommits(out)
}

// LastCommitHash returns the full hash of HEAD.
func (r *Repository) LastCommitHash(ctx context.Context) (string, bool) {
	out, ok := r.tolerant(ctx, "rev-parse", "HEAD")
	if !ok || out == "" {
		return "", false
	}
	return out, true
}

// RemoteURL returns the configured remote as owner/name for the configured
// host. Unlike the other queries it does not report absence: an unset remote
// yields the empty string, and callers must check for it.
func (r *Repository) RemoteURL(ctx context.Context) string {
	out, ok := r.tolerant(ctx, "config", "--get", "remote."+r.remote+".url")
	if !ok {
		return ""
	}
	return NormalizeRemoteURL(out, r.host.Name)
}

// Owner is the first path segment of RemoteURL.
func (r *Repository) Owner(ctx context.Context) (string, bool) {
	return slugSegment(r.RemoteURL(ctx), 0)
}

// Name is the second path segment of RemoteURL.
func (r *Repository) Name(ctx context.Context) (string, bool) {
	return slugSegment(r.RemoteURL(ctx), 1)
}

// Tags lists tags by ascending creation date.
func (r *Repository) Tags(ctx context.Context) []models.Tag {
	out, ok := r.tolerant(ctx, "for-each-ref", "--sort=creatordate", "--format", "%(refname:strip=2)|%(creatordate:iso)", "refs/tags")
	if !ok {
		return []models.Tag{}
	}
	return ParseTags(out)
}

// GuessDefaultBranch asks the hosting API for the default branch. It never
// fails: without a remote, a fetcher or a usable response it returns the
// fallback branch.
func (r *Repository) GuessDefaultBranch(ctx context.Context) string {
	slug := r.RemoteURL(ctx)
	if slug == "" || r.fetcher == nil {
		return r.fallbackBranch
	}

	endpoint := r.repoEndpoint(slug)
	data, err := r.fetcher.Fetch(ctx, endpoint)
	if err != nil {
		r.logger.Debug("default branch lookup failed", "endpoint", endpoint, "error", err)
		return r.fallbackBranch
	}

	branch, ok := api.String(data, "default_branch")
	if !ok {
		r.logger.Debug("default branch missing from response", "endpoint", endpoint)
		return r.fallbackBranch
	}
	return branch
}

func (r *Repository) repoEndpoint(slug string) string {
	return strings.TrimSuffix(r.apiBaseURL, "/") + "/repos/" + slug
}
