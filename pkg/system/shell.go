package system

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"azcli/pkg/log"
	"azcli/pkg/runner"
)

// ShellRunnerName is the runner label used in metrics and logs.
const ShellRunnerName = "shell"

// ShellRunner is the Runner that executes commands on the live system.
type ShellRunner struct {
	path   string
	args   runner.ArgList
	ctx    context.Context
	logger log.Logger
}

// ShellOption configures a ShellRunner.
type ShellOption func(*ShellRunner)

// WithLogger sets the logger used to report executions.
func WithLogger(logger log.Logger) ShellOption {
	return func(r *ShellRunner) {
		r.logger = logger
	}
}

// WithContext binds Exec to ctx. Cancelling ctx kills a running process.
func WithContext(ctx context.Context) ShellOption {
	return func(r *ShellRunner) {
		r.ctx = ctx
	}
}

// NewShellRunner creates a runner for the executable at path.
func NewShellRunner(path string, opts ...ShellOption) *ShellRunner {
	r := &ShellRunner{
		path:   path,
		ctx:    context.Background(),
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ShellFactory returns a runner.Factory producing ShellRunners with the given options.
func ShellFactory(opts ...ShellOption) runner.Factory {
	return func(path string) runner.Runner {
		return NewShellRunner(path, opts...)
	}
}

func (r *ShellRunner) Start() runner.Runner {
	return &ShellRunner{
		path:   r.path,
		ctx:    r.ctx,
		logger: r.logger,
	}
}

func (r *ShellRunner) Arg(val string) runner.Runner {
	r.args.Arg(val)
	return r
}

func (r *ShellRunner) Args(vals ...string) runner.Runner {
	r.args.Args(vals...)
	return r
}

func (r *ShellRunner) Line(val string) runner.Runner {
	r.args.Line(val)
	return r
}

func (r *ShellRunner) ArgIf(cond func() bool, val string) runner.Runner {
	r.args.ArgIf(cond, val)
	return r
}

func (r *ShellRunner) ArgWhen(cond func() bool, val string) runner.Runner {
	r.args.ArgWhen(cond, val)
	return r
}

func (r *ShellRunner) Path() string {
	return r.path
}

func (r *ShellRunner) Arguments() []string {
	return r.args.Slice()
}

// Exec runs the command and waits for it to finish.
// A process that cannot be started yields Code -1 with the error text in Stderr.
// A process stopped because the context ended also yields Code -1; its Stderr keeps
// whatever the process wrote, followed by the context error.
func (r *ShellRunner) Exec() runner.ExecResult {
	return r.run(r.ctx)
}

// ExecAsync runs the command on its own goroutine.
func (r *ShellRunner) ExecAsync(ctx context.Context) <-chan runner.ExecResult {
	ch := make(chan runner.ExecResult, 1)
	go func() {
		defer close(ch)
		ch <- r.run(ctx)
	}()
	return ch
}

func (r *ShellRunner) run(ctx context.Context) runner.ExecResult {
	args := r.args.Slice()
	r.logger.Debug("Executing command", "path", r.path, "args", args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	res := runner.ExecResult{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Arguments: args,
	}
	result := ResultSuccess
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			res.Code = -1
			if res.Stderr != "" && !strings.HasSuffix(res.Stderr, "\n") {
				res.Stderr += "\n"
			}
			res.Stderr += ctx.Err().Error()
			result = ResultCanceled
		case errors.As(err, &exitErr):
			res.Code = exitErr.ExitCode()
			result = ResultLabel(res)
		default:
			res.Code = -1
			res.Stderr = err.Error()
			result = ResultSpawnError
		}
	}

	ObserveExecution(ShellRunnerName, result, elapsed)
	r.logger.Debug("Command finished", "path", r.path, "code", res.Code, "duration", elapsed)
	return res
}
