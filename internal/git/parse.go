package git

import (
	"regexp"
	"strings"

	"github.com/emilianohg/gitprobe/internal/models"
)

var (
	statusLinePattern      = regexp.MustCompile(`^[ MADRCU?!]{1,2}\s+(.*)$`)
	contributorLinePattern = regexp.MustCompile(`^\s*(\d+)\s+(.*?)\s+<([^>]+)>$`)
)

// commitFields is the number of |-separated fields in a commit record:
// hash, author name, author email, date, subject.
const commitFields = 5

func splitLines(out string) []string {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// ParseChangedFiles extracts paths from `git status --porcelain` output.
func ParseChangedFiles(out string) []string {
	files := []string{}
	for _, line := range splitLines(out) {
		if m := statusLinePattern.FindStringSubmatch(line); m != nil {
			files = append(files, m[1])
		}
	}
	return files
}

// ParseContributors reads `git shortlog -sne` output. The commit counts only
// drive the source ordering and are not kept.
func ParseContributors(out string) []models.User {
	users := []models.User{}
	for _, line := range splitLines(out) {
		if m := contributorLinePattern.FindStringSubmatch(line); m != nil {
			users = append(users, models.User{Name: m[2], Email: m[3]})
		}
	}
	return users
}

// ParseCommit reads a single {hash|name|email|date|subject} record. Fields are
// positional, so a subject containing "|" is cut at the first pipe.
func ParseCommit(out string) (models.Commit, bool) {
	record := unwrapRecord(strings.TrimSpace(out))
	if !strings.Contains(record, "|") {
		return models.Commit{}, false
	}

	fields := strings.Split(record, "|")
	if len(fields) < commitFields {
		return models.Commit{}, false
	}
	return commitFromFields(fields), true
}

// ParseCommits reads one hash|name|email|date|subject record per line,
// skipping lines that do not carry all five fields.
func ParseCommits(out string) []models.Commit {
	commits := []models.Commit{}
	for _, line := range splitLines(out) {
		fields := strings.Split(unwrapRecord(strings.TrimSpace(line)), "|")
		if len(fields) < commitFields || !allPresent(fields[:commitFields]) {
			continue
		}
		commits = append(commits, commitFromFields(fields))
	}
	return commits
}

// ParseTags reads name|date lines from `git for-each-ref`.
func ParseTags(out string) []models.Tag {
	tags := []models.Tag{}
	for _, line := range splitLines(out) {
		fields := strings.Split(strings.TrimSpace(line), "|")
		if len(fields) < 2 || !allPresent(fields[:2]) {
			continue
		}
		tags = append(tags, models.Tag{Name: fields[0], Date: fields[1]})
	}
	return tags
}

type authorLine struct {
	name  string
	email string
}

// parseAuthorLines reads name:email lines, as printed by --pretty=%an:%ae.
func parseAuthorLines(out string) []authorLine {
	var authors []authorLine
	for _, line := range splitLines(out) {
		fields := strings.Split(strings.TrimSpace(line), ":")
		if len(fields) < 2 || !allPresent(fields[:2]) {
			continue
		}
		authors = append(authors, authorLine{name: fields[0], email: fields[1]})
	}
	return authors
}

func commitFromFields(fields []string) models.Commit {
	return models.Commit{
		Hash:    fields[0],
		Author:  models.User{Name: fields[1], Email: fields[2]},
		Date:    fields[3],
		Message: fields[4],
	}
}

func unwrapRecord(s string) string {
	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return s[1 : len(s)-1]
	}
	return s
}

func allPresent(fields []string) bool {
	for _, f := range fields {
		if f == "" {
			return false
		}
	}
	return true
}
