// Package report gathers repository facts into a single snapshot and renders
// it as text, JSON or YAML.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/emilianohg/gitprobe/internal/git"
	"github.com/emilianohg/gitprobe/internal/models"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml and yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected text, json or yaml)", s)
	}
}

// Summary is a point-in-time view of a checkout.
type Summary struct {
	Root          string          `json:"root,omitempty" yaml:"root,omitempty"`
	Branch        string          `json:"branch" yaml:"branch"`
	DefaultBranch string          `json:"default_branch,omitempty" yaml:"default_branch,omitempty"`
	Remote        string          `json:"remote,omitempty" yaml:"remote,omitempty"`
	Owner         string          `json:"owner,omitempty" yaml:"owner,omitempty"`
	Name          string          `json:"name,omitempty" yaml:"name,omitempty"`
	HeadHash      string          `json:"head,omitempty" yaml:"head,omitempty"`
	CurrentTag    string          `json:"current_tag,omitempty" yaml:"current_tag,omitempty"`
	LatestRelease string          `json:"latest_release,omitempty" yaml:"latest_release,omitempty"`
	Dirty         bool            `json:"dirty" yaml:"dirty"`
	ChangedFiles  []string        `json:"changed_files" yaml:"changed_files"`
	Commits       []models.Commit `json:"commits" yaml:"commits"`
	Tags          []models.Tag    `json:"tags" yaml:"tags"`
	Contributors  []models.User   `json:"contributors" yaml:"contributors"`
	User          *models.User    `json:"user,omitempty" yaml:"user,omitempty"`
	UserCommits   int             `json:"user_commits,omitempty" yaml:"user_commits,omitempty"`
}

// Options selects the optional, slower parts of a summary.
type Options struct {
	Commits       int
	DefaultBranch bool // performs a network call
	User          bool
}

// Collect runs every query against the session's repository. Only the user
// lookup can fail; all other parts degrade to empty values.
func Collect(ctx context.Context, session *git.Session, opts Options) (*Summary, error) {
	repo := session.Repository()

	s := &Summary{
		Branch:       repo.Branch(ctx),
		Remote:       repo.RemoteURL(ctx),
		Dirty:        repo.HasUncommittedChanges(ctx),
		ChangedFiles: repo.ChangedFiles(ctx),
		Commits:      repo.LastCommits(ctx, opts.Commits),
		Tags:         repo.Tags(ctx),
		Contributors: repo.Contributors(ctx),
	}
	s.Root, _ = repo.Root(ctx)
	s.Owner, _ = repo.Owner(ctx)
	s.Name, _ = repo.Name(ctx)
	s.HeadHash, _ = repo.LastCommitHash(ctx)
	s.CurrentTag, _ = repo.CurrentTag(ctx)
	if latest, ok := models.LatestTag(s.Tags); ok {
		s.LatestRelease = latest.Name
	}

	if opts.DefaultBranch {
		s.DefaultBranch = repo.GuessDefaultBranch(ctx)
	}

	if opts.User {
		u, err := session.CurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		s.User = &u
		s.UserCommits = repo.CommitCount(ctx, u)
	}

	return s, nil
}

// Write renders s to w.
func Write(w io.Writer, s *Summary, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		_, err := io.WriteString(w, Text(s))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Text renders s for a terminal.
func Text(s *Summary) string {
	var b strings.Builder

	field := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-15s", label)), value)
	}

	b.WriteString(headingStyle.Render("Repository"))
	b.WriteString("\n")
	field("Root", s.Root)
	field("Remote", s.Remote)
	field("Owner", s.Owner)
	field("Name", s.Name)
	field("Branch", s.Branch)
	if s.DefaultBranch != "" {
		field("Default branch", s.DefaultBranch)
	}
	field("HEAD", s.HeadHash)
	field("Current tag", s.CurrentTag)
	field("Latest release", s.LatestRelease)
	dirty := "clean"
	if s.Dirty {
		dirty = fmt.Sprintf("%d changed file(s)", len(s.ChangedFiles))
	}
	field("Working tree", dirty)

	if s.User != nil {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("You"))
		b.WriteString("\n")
		field("Name", s.User.Name)
		field("Email", s.User.Email)
		field("Username", s.User.Username)
		field("Commits", fmt.Sprintf("%d", s.UserCommits))
	}

	if len(s.Commits) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Recent commits"))
		b.WriteString("\n")
		for _, c := range s.Commits {
			b.WriteString(CommitLine(c))
			b.WriteString("\n")
		}
	}

	if len(s.Contributors) > 0 {
		b.WriteString("\n")
		b.WriteString(headingStyle.Render("Contributors"))
		b.WriteString("\n")
		for _, u := range s.Contributors {
			fmt.Fprintf(&b, "%s <%s>\n", u.Name, u.Email)
		}
	}

	return b.String()
}

// CommitLine formats a commit as "<short> <subject> (<author>)".
func CommitLine(c models.Commit) string {
	hash := c.Hash
	if len(hash) >= 7 {
		hash = c.ShortHash()
	}
	marker := ""
	if c.IsMergeCommit() {
		marker = " [merge]"
	}
	return fmt.Sprintf("%s %s (%s)%s", hash, c.Message, c.Author.Name, marker)
}
