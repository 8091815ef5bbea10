package mock

import (
	"context"
	"slices"

	"azcli/pkg/runner"
	"azcli/pkg/system"
)

// RunnerName is the runner label used in metrics.
const RunnerName = "mock"

// Scope holds the state a group of mock runners shares: the response queue and the
// most recently constructed runner.
type Scope struct {
	queue   ResponseQueue
	current *MockRunner
}

// NewScope returns a scope with an empty queue.
func NewScope() *Scope {
	return &Scope{}
}

// Queue returns the scope's response queue.
func (s *Scope) Queue() *ResponseQueue {
	return &s.queue
}

// Current returns the most recently constructed MockRunner, or nil.
func (s *Scope) Current() *MockRunner {
	return s.current
}

// NewRunner satisfies runner.Factory.
func (s *Scope) NewRunner(path string) runner.Runner {
	return NewMockRunner(s, path)
}

// MockRunner is a Runner that returns queued results instead of executing anything.
type MockRunner struct {
	scope *Scope
	path  string
	args  runner.ArgList
	calls []runner.ExecResult
}

// NewMockRunner creates a runner in scope and registers it as the scope's current runner.
func NewMockRunner(scope *Scope, path string) *MockRunner {
	r := &MockRunner{
		scope: scope,
		path:  path,
	}
	scope.current = r
	return r
}

// Clear resets the accumulated arguments without creating a new runner.
func (r *MockRunner) Clear() {
	r.args.Reset()
}

// Start returns a new MockRunner in the same scope with an empty argument list.
func (r *MockRunner) Start() runner.Runner {
	return NewMockRunner(r.scope, r.path)
}

func (r *MockRunner) Arg(val string) runner.Runner {
	r.args.Arg(val)
	return r
}

func (r *MockRunner) Args(vals ...string) runner.Runner {
	r.args.Args(vals...)
	return r
}

func (r *MockRunner) Line(val string) runner.Runner {
	r.args.Line(val)
	return r
}

func (r *MockRunner) ArgIf(cond func() bool, val string) runner.Runner {
	r.args.ArgIf(cond, val)
	return r
}

func (r *MockRunner) ArgWhen(cond func() bool, val string) runner.Runner {
	r.args.ArgWhen(cond, val)
	return r
}

func (r *MockRunner) Path() string {
	return r.path
}

func (r *MockRunner) Arguments() []string {
	return r.args.Slice()
}

// Calls returns every result this runner has returned, oldest first.
func (r *MockRunner) Calls() []runner.ExecResult {
	return slices.Clone(r.calls)
}

// Exec pops the next queued result and stamps it with the accumulated arguments.
func (r *MockRunner) Exec() runner.ExecResult {
	res := r.scope.queue.GetNext()
	res.Arguments = r.args.Slice()

	r.calls = append(r.calls, res)
	system.ObserveExecution(RunnerName, system.ResultLabel(res), 0)
	return res
}

// ExecAsync is Exec delivered on a channel. The result is available immediately.
func (r *MockRunner) ExecAsync(_ context.Context) <-chan runner.ExecResult {
	ch := make(chan runner.ExecResult, 1)
	ch <- r.Exec()
	close(ch)
	return ch
}
