// Package runner defines the command runner contract shared by the real shell runner
// and the mock runner. Calling code is written once against Runner and receives either
// variant through a Factory.
// This package exists to break import cycles between the cli, system and mock packages.
package runner

import "context"

// ExecResult is the outcome of one command execution.
// Empty Stdout or Stderr means the stream was not captured or was empty.
// Arguments is populated by the runner, never by the caller.
type ExecResult struct {
	Code      int      `json:"code"`
	Stdout    string   `json:"stdout,omitempty"`
	Stderr    string   `json:"stderr,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
}

// Succeeded reports whether the result carries a zero status code.
func (r ExecResult) Succeeded() bool {
	return r.Code == 0
}

// Runner accumulates arguments for one command and executes it.
// All builder methods return the runner so calls can be chained.
type Runner interface {
	// Start returns a new runner bound to the same executable path with an empty
	// argument list. The receiver is left untouched.
	Start() Runner

	// Arg trims val and appends it. An empty value is a no-op.
	Arg(val string) Runner

	// Args appends vals as-is, in order. An empty sequence is a no-op.
	Args(vals ...string) Runner

	// Line splits val as a quote-aware command line and appends the tokens.
	Line(val string) Runner

	// ArgIf appends val when cond is non-nil. cond itself is never invoked.
	ArgIf(cond func() bool, val string) Runner

	// ArgWhen invokes cond and appends val only when it returns true.
	ArgWhen(cond func() bool, val string) Runner

	// Path returns the executable path the runner was constructed with.
	Path() string

	// Arguments returns a copy of the accumulated argument list.
	Arguments() []string

	// Exec runs the command synchronously.
	Exec() ExecResult

	// ExecAsync runs the command and delivers exactly one result on the returned channel.
	ExecAsync(ctx context.Context) <-chan ExecResult
}

// Factory constructs a runner for the given executable path.
// The cli package receives one of these instead of choosing a runner variant itself.
type Factory func(path string) Runner
