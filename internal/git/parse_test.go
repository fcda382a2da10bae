package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/gitprobe/internal/models"
)

func TestParseChangedFiles(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{"mixed codes", " M a.txt\nA  b.txt\n?? c.txt\n", []string{"a.txt", "b.txt", "c.txt"}},
		{"renames keep the arrow", "R  old.go -> new.go", []string{"old.go -> new.go"}},
		{"ignored and conflicted", "!! build/\nUU merge.go\nD  gone.txt", []string{"build/", "merge.go", "gone.txt"}},
		{"paths with spaces", " M docs/read me.md", []string{"docs/read me.md"}},
		{"unknown codes dropped", "XY weird.txt\n M ok.txt", []string{"ok.txt"}},
		{"empty", "", []string{}},
		{"whitespace only", "  \n ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseChangedFiles(tt.out))
		})
	}
}

func TestParseContributors(t *testing.T) {
	out := "  14\tJohn Doe <john@example.com>\n   7\tJane Smith <jane@example.com>"

	users := ParseContributors(out)
	require.Len(t, users, 2)
	assert.Equal(t, models.User{Name: "John Doe", Email: "john@example.com"}, users[0])
	assert.Equal(t, models.User{Name: "Jane Smith", Email: "jane@example.com"}, users[1])
}

func TestParseContributorsSkipsMalformedLines(t *testing.T) {
	out := "  3\tNo Email\nnot a contributor <x@y>\n  2\tReal Person <real@example.com>"

	users := ParseContributors(out)
	require.Len(t, users, 1)
	assert.Equal(t, "Real Person", users[0].Name)
	assert.Empty(t, users[0].Username)

	assert.Equal(t, []models.User{}, ParseContributors(""))
}

func TestParseCommit(t *testing.T) {
	c, ok := ParseCommit("{abc123|John Doe|john@example.com|2025-09-25 12:00:00|Fix bug}")
	require.True(t, ok)
	assert.Equal(t, "abc123", c.Hash)
	assert.Equal(t, models.User{Name: "John Doe", Email: "john@example.com"}, c.Author)
	assert.Equal(t, "2025-09-25 12:00:00", c.Date)
	assert.Equal(t, "Fix bug", c.Message)

	// Unwrapped records come through unchanged.
	c, ok = ParseCommit("abc123|John Doe|john@example.com|2025-09-25 12:00:00|Fix bug")
	require.True(t, ok)
	assert.Equal(t, "abc123", c.Hash)
	assert.Equal(t, "Fix bug", c.Message)
}

func TestParseCommitRequiresDelimiter(t *testing.T) {
	for _, out := range []string{"", "just a message", "{}", "abc|def"} {
		_, ok := ParseCommit(out)
		assert.False(t, ok, "%q", out)
	}
}

func TestParseCommitTruncatesPipeInSubject(t *testing.T) {
	c, ok := ParseCommit("{abc123|John|john@example.com|2025-09-25|feat: a | b}")
	require.True(t, ok)
	assert.Equal(t, "feat: a ", c.Message)
}

func TestParseCommits(t *testing.T) {
	out := "abc123|John Doe|john@example.com|2025-09-25 12:00:00 +0000|Fix bug\n" +
		"def456|Jane Smith|jane@example.com|2025-09-24 11:00:00 +0000|Add feature"

	commits := ParseCommits(out)
	require.Len(t, commits, 2)
	assert.Equal(t, "abc123", commits[0].Hash)
	assert.Equal(t, "def456", commits[1].Hash)
	assert.Equal(t, "Jane Smith", commits[1].Author.Name)
}

func TestParseCommitsSkipsIncompleteLines(t *testing.T) {
	out := "abc123|John Doe|john@example.com|2025-09-25 12:00:00|Fix bug\nbadline"
	commits := ParseCommits(out)
	require.Len(t, commits, 1)
	assert.Equal(t, "abc123", commits[0].Hash)

	out = "abc123|John Doe||2025-09-25|Fix bug\ndef456|Jane|jane@example.com|2025-09-24|"
	assert.Empty(t, ParseCommits(out))
	assert.Equal(t, []models.Commit{}, ParseCommits(""))
}

func TestParseCommitsAcceptsBracedLines(t *testing.T) {
	commits := ParseCommits("{abc123|John|john@example.com|2025-09-25|One}\n{def456|Jane|jane@example.com|2025-09-24|Two}")
	require.Len(t, commits, 2)
	assert.Equal(t, "abc123", commits[0].Hash)
	assert.Equal(t, "Two", commits[1].Message)
}

func TestParseTags(t *testing.T) {
	out := "v1.0.0|2025-09-20 10:00:00 +0000\nbroken\n|2025-09-21 10:00:00 +0000\nv1.1.0|2025-09-22 15:00:00 +0000\nv1.2.0|"

	tags := ParseTags(out)
	require.Len(t, tags, 2)
	assert.Equal(t, models.Tag{Name: "v1.0.0", Date: "2025-09-20 10:00:00 +0000"}, tags[0])
	assert.Equal(t, "v1.1.0", tags[1].Name)

	assert.Equal(t, []models.Tag{}, ParseTags(""))
}

func TestParseAuthorLines(t *testing.T) {
	out := "John Doe:john.doe@users.noreply.github.com\n\nno-colon\nJane:other@users.noreply.github.com\n"

	authors := parseAuthorLines(out)
	require.Len(t, authors, 2)
	assert.Equal(t, authorLine{name: "John Doe", email: "john.doe@users.noreply.github.com"}, authors[0])
	assert.Equal(t, "Jane", authors[1].name)
}
