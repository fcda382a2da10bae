// Package processtest provides a scripted process.Runner for tests.
package processtest

import (
	"context"
	"strings"
	"sync"

	"github.com/emilianohg/gitprobe/internal/process"
)

type response struct {
	outputs []string
	fail    bool
}

// Runner answers commands from a script keyed by the space-joined argv.
// Unscripted commands fail with exit code 1.
type Runner struct {
	mu        sync.Mutex
	responses map[string]*response
	calls     []string
}

func NewRunner() *Runner {
	return &Runner{responses: make(map[string]*response)}
}

// On scripts the output of argv. Several outputs are returned on consecutive
// calls; the last one repeats.
func (r *Runner) On(argv string, outputs ...string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(outputs) == 0 {
		outputs = []string{""}
	}
	r.responses[argv] = &response{outputs: outputs}
	return r
}

// Fail scripts argv to exit non-zero.
func (r *Runner) Fail(argv string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[argv] = &response{fail: true}
	return r
}

func (r *Runner) Run(_ context.Context, name string, args ...string) (string, error) {
	argv := append([]string{name}, args...)
	key := strings.Join(argv, " ")

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, key)

	resp, ok := r.responses[key]
	if !ok || resp.fail {
		return "", &process.CommandError{Argv: argv, ExitCode: 1, Stderr: "scripted failure"}
	}

	out := resp.outputs[0]
	if len(resp.outputs) > 1 {
		resp.outputs = resp.outputs[1:]
	}
	return strings.TrimSpace(out), nil
}

// Calls returns every command run so far, in order.
func (r *Runner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Called reports whether argv was run at least once.
func (r *Runner) Called(argv string) bool {
	for _, c := range r.Calls() {
		if c == argv {
			return true
		}
	}
	return false
}
