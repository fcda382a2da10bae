package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/gitprobe/internal/process"
	"github.com/emilianohg/gitprobe/internal/process/processtest"
)

// execute runs the root command against runner with a throwaway config file.
// Flags keep their values between runs, so tests pass them explicitly.
func execute(t *testing.T, runner *processtest.Runner, configTOML string, args ...string) (string, error) {
	t.Helper()

	orig := newRunner
	newRunner = func(string) process.Runner { return runner }
	t.Cleanup(func() { newRunner = orig })

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if configTOML != "" {
		require.NoError(t, os.WriteFile(cfgPath, []byte(configTOML), 0o644))
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--verbose=false"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBranchCommand(t *testing.T) {
	runner := processtest.NewRunner().On("git rev-parse --abbrev-ref HEAD", "feature/x")
	out, err := execute(t, runner, "", "branch")
	require.NoError(t, err)
	assert.Equal(t, "feature/x\n", out)
}

func TestBranchCommandUsesConfiguredFallback(t *testing.T) {
	out, err := execute(t, processtest.NewRunner(), `fallback_branch = "trunk"`, "branch")
	require.NoError(t, err)
	assert.Equal(t, "trunk\n", out)
}

func TestStatusCommand(t *testing.T) {
	runner := processtest.NewRunner().On("git status --porcelain", " M a.go\n?? b.go")
	out, err := execute(t, runner, "", "status")
	require.NoError(t, err)
	assert.Equal(t, "a.go\nb.go\n", out)

	out, err = execute(t, processtest.NewRunner().On("git status --porcelain", ""), "", "status")
	require.NoError(t, err)
	assert.Equal(t, "Working tree clean\n", out)
}

func TestTagsCommand(t *testing.T) {
	runner := processtest.NewRunner().
		On("git for-each-ref --sort=creatordate --format %(refname:strip=2)|%(creatordate:iso) refs/tags",
			"v1.0.0|2024-01-01 10:00:00 +0000").
		On("git describe --tags --abbrev=0", "v1.0.0")

	out, err := execute(t, runner, "", "tags", "--latest=false")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0\t2024-01-01 10:00:00 +0000\n", out)

	out, err = execute(t, runner, "", "tags", "--latest")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0\n", out)

	_, err = execute(t, processtest.NewRunner(), "", "tags", "--latest")
	assert.Error(t, err)
}

func TestLogCommand(t *testing.T) {
	runner := processtest.NewRunner().On("git log -n1 --date=iso --pretty=%H|%an|%ae|%ad|%s",
		"0123456789|Jane|jane@example.com|2024-01-02 10:00:00 +0000|Fix things")
	out, err := execute(t, runner, "", "log", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, "0123456 Fix things (Jane)\n", out)
}

func TestLastCommand(t *testing.T) {
	runner := processtest.NewRunner().On("git log -1 --pretty={%H|%an|%ae|%ad|%s}",
		"{0123456789|Jane|jane@example.com|Tue Jan 2 10:00:00 2024 +0000|Fix things}")
	out, err := execute(t, runner, "", "last")
	require.NoError(t, err)
	assert.Contains(t, out, "commit 0123456789\n")
	assert.Contains(t, out, "Author: Jane <jane@example.com>\n")
	assert.Contains(t, out, "    Fix things\n")

	_, err = execute(t, processtest.NewRunner(), "", "last")
	assert.EqualError(t, err, "no commits yet")
}

func TestRemoteCommand(t *testing.T) {
	runner := processtest.NewRunner().On("git config --get remote.upstream.url", "https://github.com/acme/widgets.git")
	out, err := execute(t, runner, `remote = "upstream"`, "remote")
	require.NoError(t, err)
	assert.Equal(t, "acme/widgets\n", out)

	_, err = execute(t, processtest.NewRunner(), "", "remote")
	assert.Error(t, err)
}

func TestDefaultBranchCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"default_branch":"develop"}`))
	}))
	defer server.Close()

	runner := processtest.NewRunner().On("git config --get remote.origin.url", "git@github.com:acme/widgets.git")
	out, err := execute(t, runner, `api_base_url = "`+server.URL+`/"`, "default-branch")
	require.NoError(t, err)
	assert.Equal(t, "develop\n", out)
}

func TestWhoamiCommand(t *testing.T) {
	runner := processtest.NewRunner().
		On("git config user.name", "Jane").
		On("git config user.email", "jane@example.com").
		On("gh auth status -h github.com", "Logged in to github.com as janedev").
		On("git log --author=jane@example.com --pretty=oneline", "a one\nb two")
	out, err := execute(t, runner, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Username: janedev\n")
	assert.Contains(t, out, "Commits:  2\n")
}

func TestWhoamiWithoutIdentityKeepsExitCode(t *testing.T) {
	_, err := execute(t, processtest.NewRunner(), "", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user.name")
	assert.Equal(t, 1, process.ExitCodeOf(err))
}

func TestUsernameCommand(t *testing.T) {
	runner := processtest.NewRunner().
		On("git log --author=@users.noreply.github.com --pretty=%an:%ae --reverse", "Jane Roe:jroe@users.noreply.github.com")
	out, err := execute(t, runner, "", "username", "Jane", "Roe")
	require.NoError(t, err)
	assert.Equal(t, "jroe\n", out)

	_, err = execute(t, processtest.NewRunner(), "", "username", "Nobody")
	assert.Error(t, err)

	_, err = execute(t, processtest.NewRunner(), "", "username")
	assert.Error(t, err, "a display name is required")
}

func TestSummaryCommandJSON(t *testing.T) {
	runner := processtest.NewRunner().
		On("git rev-parse --abbrev-ref HEAD", "main").
		On("git config --get remote.origin.url", "git@github.com:acme/widgets.git")
	out, err := execute(t, runner, "", "summary", "--format", "json", "--offline", "--no-user", "-n", "3")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "main", decoded["branch"])
	assert.Equal(t, "acme", decoded["owner"])
	assert.True(t, runner.Called("git log -n3 --date=iso --pretty=%H|%an|%ae|%ad|%s"))
}

func TestSummaryCommandRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, processtest.NewRunner(), "", "summary", "--format", "xml", "--offline", "--no-user", "-n", "5")
	assert.Error(t, err)
}

func TestInvalidConfigIsReported(t *testing.T) {
	_, err := execute(t, processtest.NewRunner(), `git_binary = ""`, "branch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading config")
}

func TestRootCommandRequiresRepository(t *testing.T) {
	_, err := execute(t, processtest.NewRunner(), "")
	assert.EqualError(t, err, "not a git repository (or any parent directory)")
}
