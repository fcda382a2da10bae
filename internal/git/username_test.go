package git

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilianohg/gitprobe/internal/process/processtest"
)

func TestUsernameFromCommits(t *testing.T) {
	runner := processtest.NewRunner().
		On(cmdNoreplyLog, "John Doe:john.doe@users.noreply.github.com\nJane:other@users.noreply.github.com").
		On(cmdGHStatus, "Logged in to github.com as someoneelse").
		On(cmdRemote, "git@github.com:owner/repo.git")
	repo := newTestRepo(runner)

	username, ok := repo.GuessUsername(context.Background(), "John Doe")
	assert.True(t, ok)
	assert.Equal(t, "john.doe", username)

	assert.False(t, runner.Called(cmdGHStatus), "later strategies are not consulted")
	assert.False(t, runner.Called(cmdRemote))
}

func TestUsernameFromCommitsIsCaseInsensitive(t *testing.T) {
	runner := processtest.NewRunner().On(cmdNoreplyLog, "JOHN DOE:12345+jdoe@users.noreply.github.com")
	username, ok := newTestRepo(runner).GuessUsername(context.Background(), "john doe")
	assert.True(t, ok)
	assert.Equal(t, "12345+jdoe", username)
}

func TestUsernameFromCommitsPicksOldestMatch(t *testing.T) {
	runner := processtest.NewRunner().On(cmdNoreplyLog,
		"Someone:someone@users.noreply.github.com\n"+
			"John Doe:first@users.noreply.github.com\n"+
			"John Doe:second@users.noreply.github.com")
	username, ok := newTestRepo(runner).GuessUsername(context.Background(), "John Doe")
	assert.True(t, ok)
	assert.Equal(t, "first", username)
}

func TestUsernameFromCommitsSkipsBots(t *testing.T) {
	runner := processtest.NewRunner().
		On(cmdNoreplyLog, "dependabot[bot]:49699333+dependabot[bot]@users.noreply.github.com").
		On(cmdGHStatus, "Logged in to github.com as maintainer")
	username, ok := newTestRepo(runner).GuessUsername(context.Background(), "dependabot[bot]")
	assert.True(t, ok)
	assert.Equal(t, "maintainer", username)
}

func TestUsernameFromCommitsNeedsDisplayName(t *testing.T) {
	runner := processtest.NewRunner().On(cmdNoreplyLog, ":ghost@users.noreply.github.com")
	_, ok := newTestRepo(runner).GuessUsername(context.Background(), "")
	assert.False(t, ok)
	assert.False(t, runner.Called(cmdNoreplyLog))
}

func TestUsernameFromCLI(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
		ok     bool
	}{
		{"plain", "Logged in to github.com as johndoe.", "johndoe", true},
		{"with token source", "github.com\n  ✓ Logged in to github.com as john_doe-99 (keyring)", "john_doe-99", true},
		{"other host", "Logged in to gitlab.com as johndoe", "", false},
		{"logged out", "You are not logged into any GitHub hosts.", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := processtest.NewRunner().On(cmdGHStatus, tt.output)
			username, ok := newTestRepo(runner).GuessUsername(context.Background(), "John Doe")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, username)
		})
	}
}

func TestUsernameFromRemote(t *testing.T) {
	runner := processtest.NewRunner().On(cmdRemote, "git@github.com:johndoe/my-repo.git")
	username, ok := newTestRepo(runner).GuessUsername(context.Background(), "John Doe")
	assert.True(t, ok)
	assert.Equal(t, "johndoe", username)

	assert.Equal(t, []string{cmdNoreplyLog, cmdGHStatus, cmdRemote}, runner.Calls())
}

func TestUsernameAbsentWhenAllStrategiesFail(t *testing.T) {
	runner := processtest.NewRunner().
		On(cmdNoreplyLog, "").
		On(cmdRemote, "")
	username, ok := newTestRepo(runner).GuessUsername(context.Background(), "John Doe")
	assert.False(t, ok)
	assert.Empty(t, username)
}

func TestUsernameForOtherHost(t *testing.T) {
	runner := processtest.NewRunner().
		On("gh auth status -h ghe.example.com", "Logged in to ghe.example.com as octo").
		On("git config remote.origin.url", "git@ghe.example.com:team/repo.git")
	repo := newTestRepo(runner, func(o *Options) { o.Host = Host{Name: "ghe.example.com"} })

	username, ok := repo.GuessUsername(context.Background(), "Octo Cat")
	assert.True(t, ok)
	assert.Equal(t, "octo", username)
	assert.True(t, runner.Called("git log --author=@users.noreply.ghe.example.com --pretty=%an:%ae --reverse"))
}
