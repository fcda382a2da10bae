package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its trimmed standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Mode selects how a failed command is reported by Run.
type Mode int

const (
	// Fatal returns the command failure to the caller.
	Fatal Mode = iota
	// Tolerant reports a failure as ok == false and never returns an error.
	Tolerant
)

func (m Mode) String() string {
	switch m {
	case Fatal:
		return "fatal"
	case Tolerant:
		return "tolerant"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// CommandError describes a command that could not be started or exited non-zero.
type CommandError struct {
	Argv     []string
	ExitCode int // -1 when the process never ran
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s failed", strings.Join(e.Argv, " "))
	if e.ExitCode >= 0 {
		msg = fmt.Sprintf("%s with exit code %d", msg, e.ExitCode)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %s", msg, e.Stderr)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCodeOf extracts the exit code of a failed command, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ce *CommandError
	if errors.As(err, &ce) && ce.ExitCode > 0 {
		return ce.ExitCode
	}
	return 1
}

// Run executes argv through r. The output is only meaningful when ok is true.
func Run(ctx context.Context, r Runner, mode Mode, argv ...string) (out string, ok bool, err error) {
	if len(argv) == 0 {
		return "", false, fmt.Errorf("process: empty command")
	}

	out, err = r.Run(ctx, argv[0], argv[1:]...)
	if err == nil {
		return out, true, nil
	}
	if mode == Tolerant {
		return "", false, nil
	}
	return "", false, err
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is appended to the inherited environment.
	Env []string
}

func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{Dir: strings.TrimSpace(dir)}
}

func (e *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if e.Dir != "" {
		cmd.Dir = e.Dir
	}
	if len(e.Env) > 0 {
		cmd.Env = append(cmd.Environ(), e.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		ce := &CommandError{
			Argv:     append([]string{name}, args...),
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			ce.ExitCode = exitErr.ExitCode()
		}
		return "", ce
	}

	return strings.TrimSpace(stdout.String()), nil
}
