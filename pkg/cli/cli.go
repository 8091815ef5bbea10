// Package cli wraps the Azure command-line tool behind a Runner.
//
// A CLI never chooses how commands are executed: it receives a runner.Factory at
// construction, so the same calling code runs against system.ShellFactory in
// production and against a mock.Scope in tests.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"azcli/pkg/log"
	"azcli/pkg/model"
	"azcli/pkg/runner"
)

var versionPattern = regexp.MustCompile(`azure-cli \((\S+)\)`)

// CLI issues az commands through a runner.
type CLI struct {
	base    runner.Runner
	opts    model.Options
	logger  log.Logger
	version string

	// err holds a rejected option change until the next command reports it.
	err error
}

// Account is the subset of `az account show` output used by callers.
type Account struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TenantID  string `json:"tenantId"`
	State     string `json:"state"`
	IsDefault bool   `json:"isDefault"`
	User      struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"user"`
}

// New validates opts, builds the base runner and probes `az --version`.
// The probe is the first command every CLI executes.
func New(opts model.Options, newRunner runner.Factory, logger log.Logger) (*CLI, error) {
	opts.ApplyDefaults()
	if errs := opts.Validate(); len(errs) > 0 {
		return nil, errs
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	c := &CLI{
		base:   newRunner(opts.AzPath),
		opts:   opts,
		logger: logger,
	}

	res := c.base.Start().Arg("--version").Exec()
	if !res.Succeeded() {
		return nil, newExecError(res)
	}
	version, err := parseVersion(res.Stdout)
	if err != nil {
		return nil, err
	}
	c.version = version
	logger.Debug("Detected az version", "version", version, "path", opts.AzPath)

	return c, nil
}

func parseVersion(banner string) (string, error) {
	m := versionPattern.FindStringSubmatch(banner)
	if m == nil {
		return "", fmt.Errorf("unrecognized az version output: %q", strings.TrimSpace(banner))
	}
	return m[1], nil
}

// Version returns the version reported by the probe at construction.
func (c *CLI) Version() string {
	return c.version
}

// Options returns the effective options, including fluent overrides.
func (c *CLI) Options() model.Options {
	return c.opts
}

// Subscription sets --subscription on subsequent commands. A blank id removes it.
func (c *CLI) Subscription(id string) *CLI {
	return c.set(func(o *model.Options) { o.Subscription = strings.TrimSpace(id) })
}

// Output sets --output on subsequent commands. A blank format removes it.
func (c *CLI) Output(format string) *CLI {
	return c.set(func(o *model.Options) { o.Output = strings.TrimSpace(format) })
}

// Query sets --query on subsequent commands. A blank query removes it.
func (c *CLI) Query(jmespath string) *CLI {
	return c.set(func(o *model.Options) {
		if strings.TrimSpace(jmespath) == "" {
			jmespath = ""
		}
		o.Query = jmespath
	})
}

// set applies change only if the resulting options are valid. Otherwise the options
// stay as they were and the next command returns the validation errors without
// running.
func (c *CLI) set(change func(*model.Options)) *CLI {
	opts := c.opts
	change(&opts)
	if errs := opts.Validate(); len(errs) > 0 {
		c.logger.Warn("Rejected option change", "error", errs.Error())
		c.err = errs
		return c
	}
	c.opts = opts
	return c
}

// takeErr returns and clears a pending option error.
func (c *CLI) takeErr() error {
	err := c.err
	c.err = nil
	return err
}

// Debug enables --debug on subsequent commands.
func (c *CLI) Debug() *CLI {
	c.opts.Debug = true
	return c
}

// Verbose enables --verbose on subsequent commands.
func (c *CLI) Verbose() *CLI {
	c.opts.Verbose = true
	return c
}

// Exec runs `az <line>` followed by the global flags.
// A non-zero code is returned as *ExecError together with the result.
func (c *CLI) Exec(line string) (runner.ExecResult, error) {
	if err := c.takeErr(); err != nil {
		return runner.ExecResult{}, err
	}
	return c.finish(c.command(c.opts).Line(line).Exec())
}

// ExecArgs is Exec with pre-split arguments.
func (c *CLI) ExecArgs(args ...string) (runner.ExecResult, error) {
	if err := c.takeErr(); err != nil {
		return runner.ExecResult{}, err
	}
	return c.finish(c.command(c.opts).Args(args...).Exec())
}

// ExecAsync is Exec on the runner's asynchronous path.
func (c *CLI) ExecAsync(ctx context.Context, line string) (runner.ExecResult, error) {
	if err := c.takeErr(); err != nil {
		return runner.ExecResult{}, err
	}
	ch := c.command(c.opts).Line(line).ExecAsync(ctx)
	select {
	case res := <-ch:
		return c.finish(res)
	case <-ctx.Done():
		return runner.ExecResult{}, ctx.Err()
	}
}

// ExecJSON runs line with --output json and decodes stdout into v.
func (c *CLI) ExecJSON(line string, v any) error {
	if err := c.takeErr(); err != nil {
		return err
	}
	opts := c.opts
	opts.Output = "json"

	res, err := c.finish(c.command(opts).Line(line).Exec())
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(res.Stdout), v); err != nil {
		return fmt.Errorf("failed to decode output of az %s: %w", line, err)
	}
	return nil
}

// AccountShow returns the active account.
func (c *CLI) AccountShow() (*Account, error) {
	var account Account
	if err := c.ExecJSON("account show", &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// command starts a fresh runner and queues the global flags behind the command tokens.
func (c *CLI) command(opts model.Options) *pending {
	return &pending{r: c.base.Start(), opts: opts}
}

func (c *CLI) finish(res runner.ExecResult) (runner.ExecResult, error) {
	c.logger.Debug("az command finished", "args", res.Arguments, "code", res.Code)
	if !res.Succeeded() {
		return res, newExecError(res)
	}
	return res, nil
}

// pending appends the command tokens first and the global flags last.
type pending struct {
	r    runner.Runner
	opts model.Options
}

func (p *pending) Line(line string) *pending {
	p.r.Line(line)
	return p
}

func (p *pending) Args(args ...string) *pending {
	p.r.Args(args...)
	return p
}

func (p *pending) flags() runner.Runner {
	if v := strings.TrimSpace(p.opts.Subscription); v != "" {
		p.r.Arg("--subscription").Arg(v)
	}
	if v := strings.TrimSpace(p.opts.Output); v != "" {
		p.r.Arg("--output").Arg(v)
	}
	if strings.TrimSpace(p.opts.Query) != "" {
		p.r.Arg("--query").Args(p.opts.Query)
	}
	p.r.ArgWhen(func() bool { return p.opts.Debug }, "--debug")
	p.r.ArgWhen(func() bool { return p.opts.Verbose }, "--verbose")
	return p.r
}

func (p *pending) Exec() runner.ExecResult {
	return p.flags().Exec()
}

func (p *pending) ExecAsync(ctx context.Context) <-chan runner.ExecResult {
	return p.flags().ExecAsync(ctx)
}
