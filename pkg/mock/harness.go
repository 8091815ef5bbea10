package mock

import (
	"fmt"

	"azcli/pkg/cli"
	"azcli/pkg/diff"
	"azcli/pkg/log"
	"azcli/pkg/model"
	"azcli/pkg/runner"
)

// ResponseKind selects one of the canned responses.
type ResponseKind int

const (
	// Version is code 0 with the az version banner on stdout.
	Version ResponseKind = iota
	// JustReturnCode is code 0 with no output.
	JustReturnCode
	// FailCode is code 1 with a fixed error message on stderr.
	FailCode
)

// VersionBanner is the stdout of the Version response.
const VersionBanner = "azure-cli (2.0.0)\r\n\r\n"

// FailMessage is the stderr of the FailCode response.
const FailMessage = "mock error response"

func (k ResponseKind) String() string {
	switch k {
	case Version:
		return "version"
	case JustReturnCode:
		return "justReturnCode"
	case FailCode:
		return "failCode"
	default:
		return fmt.Sprintf("ResponseKind(%d)", int(k))
	}
}

// Response returns the canned result for kind. Unknown kinds yield ok == false.
func Response(kind ResponseKind) (runner.ExecResult, bool) {
	switch kind {
	case Version:
		return runner.ExecResult{Code: 0, Stdout: VersionBanner}, true
	case JustReturnCode:
		return runner.ExecResult{Code: 0}, true
	case FailCode:
		return runner.ExecResult{Code: 1, Stderr: FailMessage}, true
	default:
		return runner.ExecResult{}, false
	}
}

// Harness controls the mock side of a CLI built by NewHarness.
type Harness struct {
	cli   *cli.CLI
	scope *Scope
}

type harnessConfig struct {
	scope  *Scope
	logger log.Logger
}

// HarnessOption configures NewHarness.
type HarnessOption func(*harnessConfig)

// WithScope makes the harness share scope instead of creating its own.
func WithScope(scope *Scope) HarnessOption {
	return func(c *harnessConfig) {
		c.scope = scope
	}
}

// WithHarnessLogger sets the logger passed to the CLI.
func WithHarnessLogger(logger log.Logger) HarnessOption {
	return func(c *harnessConfig) {
		c.logger = logger
	}
}

// NewHarness builds a CLI bound to mock runners and returns it with its controls.
// The CLI probes the az version while it is constructed, so a Version response is
// queued first for that probe to consume.
func NewHarness(opts model.Options, hopts ...HarnessOption) (*cli.CLI, *Harness, error) {
	cfg := &harnessConfig{logger: log.NewNopLogger()}
	for _, opt := range hopts {
		opt(cfg)
	}
	if cfg.scope == nil {
		cfg.scope = NewScope()
	}

	h := &Harness{scope: cfg.scope}
	h.scope.Queue().Add(runner.ExecResult{Code: 0, Stdout: VersionBanner})

	c, err := cli.New(opts, h.scope.NewRunner, cfg.logger)
	if err != nil {
		return nil, nil, err
	}
	h.cli = c

	return c, h, nil
}

// AddResponse queues one result.
func (h *Harness) AddResponse(response runner.ExecResult) *cli.CLI {
	h.scope.Queue().Add(response)
	return h.cli
}

// ClearResponseList drops every queued result. Call it before each test that
// reuses a harness.
func (h *Harness) ClearResponseList() *cli.CLI {
	h.scope.Queue().Clear()
	return h.cli
}

// AddMockResponse queues one of the canned responses. Unknown kinds queue nothing.
func (h *Harness) AddMockResponse(kind ResponseKind) *cli.CLI {
	if res, ok := Response(kind); ok {
		h.scope.Queue().Add(res)
	}
	return h.cli
}

// GetMockShell returns the most recently constructed MockRunner.
func (h *Harness) GetMockShell() *MockRunner {
	return h.scope.Current()
}

// Scope returns the scope the harness queues into.
func (h *Harness) Scope() *Scope {
	return h.scope
}

// ExpectArgs compares want with the arguments of the most recent MockRunner and
// returns an error with a diff when they differ.
func (h *Harness) ExpectArgs(want ...string) error {
	shell := h.GetMockShell()
	if shell == nil {
		return fmt.Errorf("no mock runner has been constructed")
	}
	got := shell.Arguments()
	if diff.Equal(want, got) {
		return nil
	}
	return fmt.Errorf("unexpected arguments (-want +got):\n%s", diff.Args(want, got))
}
