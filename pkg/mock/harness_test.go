package mock

import (
	"errors"
	"testing"

	"azcli/pkg/cli"
	"azcli/pkg/model"
	"azcli/pkg/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHarness(t *testing.T, hopts ...HarnessOption) (*cli.CLI, *Harness) {
	t.Helper()
	c, h, err := NewHarness(model.Options{}, hopts...)
	require.NoError(t, err)
	return c, h
}

func TestNewHarness_VersionProbeConsumesPriming(t *testing.T) {
	c, h := newTestHarness(t)

	assert.Equal(t, "2.0.0", c.Version())
	assert.Equal(t, 0, h.Scope().Queue().Len())
	require.NotNil(t, h.GetMockShell())
	assert.Equal(t, []string{"--version"}, h.GetMockShell().Arguments())
}

func TestNewHarness_SharedScope(t *testing.T) {
	scope := NewScope()

	c, h := newTestHarness(t, WithScope(scope))
	assert.Same(t, scope, h.Scope())

	scope.Queue().Add(runner.ExecResult{Code: 0, Stdout: "from scope"})
	res, err := c.Exec("group list")
	require.NoError(t, err)
	assert.Equal(t, "from scope", res.Stdout)
	assert.Same(t, scope.Current(), h.GetMockShell())
}

func TestNewHarness_ProbeFailure(t *testing.T) {
	scope := NewScope()
	scope.Queue().Add(runner.ExecResult{Code: 1, Stderr: "az: not logged in"})

	c, h, err := NewHarness(model.Options{}, WithScope(scope))

	assert.Nil(t, c)
	assert.Nil(t, h)
	var execErr *cli.ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 1, execErr.Code)
}

func TestNewHarness_InvalidOptions(t *testing.T) {
	_, _, err := NewHarness(model.Options{Output: "xml"})

	var errs model.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, "output", errs[0].Field)
}

func TestHarness_EndToEnd(t *testing.T) {
	c, h := newTestHarness(t)

	h.ClearResponseList()
	h.AddMockResponse(Version)
	h.AddMockResponse(JustReturnCode)

	res, err := c.Exec("group list")
	require.NoError(t, err)
	assert.Equal(t, runner.ExecResult{
		Code:      0,
		Stdout:    "azure-cli (2.0.0)\r\n\r\n",
		Arguments: []string{"group", "list"},
	}, res)

	res, err = c.ExecArgs("account", "show")
	require.NoError(t, err)
	assert.Equal(t, runner.ExecResult{Code: 0, Arguments: []string{"account", "show"}}, res)

	res, err = c.Exec("vm list")
	assert.Equal(t, 100, res.Code)
	assert.Equal(t, "Mock ExecResults not set", res.Stderr)
	assert.Equal(t, []string{"vm", "list"}, res.Arguments)

	var execErr *cli.ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 100, execErr.Code)
}

func TestHarness_ControlsAreChainable(t *testing.T) {
	c, h := newTestHarness(t)

	assert.Same(t, c, h.AddResponse(runner.ExecResult{Code: 3}))
	assert.Same(t, c, h.AddMockResponse(FailCode))
	assert.Same(t, c, h.ClearResponseList())
	assert.Equal(t, 0, h.Scope().Queue().Len())
}

func TestHarness_AddMockResponse(t *testing.T) {
	tests := []struct {
		kind ResponseKind
		want runner.ExecResult
	}{
		{Version, runner.ExecResult{Code: 0, Stdout: "azure-cli (2.0.0)\r\n\r\n"}},
		{JustReturnCode, runner.ExecResult{Code: 0}},
		{FailCode, runner.ExecResult{Code: 1, Stderr: "mock error response"}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			_, h := newTestHarness(t)
			h.AddMockResponse(tt.kind)

			assert.Equal(t, tt.want, h.Scope().Queue().GetNext())
		})
	}

	t.Run("unknown kind queues nothing", func(t *testing.T) {
		_, h := newTestHarness(t)
		h.AddMockResponse(ResponseKind(42))
		assert.Equal(t, 0, h.Scope().Queue().Len())
		assert.Equal(t, "ResponseKind(42)", ResponseKind(42).String())
	})
}

func TestHarness_FailCodeSurfacesAsError(t *testing.T) {
	c, h := newTestHarness(t)
	h.AddMockResponse(FailCode)

	_, err := c.Exec("group delete --name rg")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mock error response")
	assert.Contains(t, err.Error(), "code 1")
}

func TestHarness_GetMockShell(t *testing.T) {
	c, h := newTestHarness(t)
	h.AddMockResponse(JustReturnCode)

	_, err := c.Subscription("sub-1").Exec("group list")
	require.NoError(t, err)

	shell := h.GetMockShell()
	assert.Equal(t, "az", shell.Path())
	assert.Equal(t, []string{"group", "list", "--subscription", "sub-1"}, shell.Arguments())
	require.Len(t, shell.Calls(), 1)
}

func TestHarness_ExpectArgs(t *testing.T) {
	c, h := newTestHarness(t)
	h.AddMockResponse(JustReturnCode)

	_, err := c.Exec(`group create --name "my group"`)
	require.NoError(t, err)

	assert.NoError(t, h.ExpectArgs("group", "create", "--name", "my group"))

	err = h.ExpectArgs("group", "create", "--name", "other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "- other\n")
	assert.Contains(t, err.Error(), "+ my group\n")
}

func TestHarness_ExpectArgsWithoutRunner(t *testing.T) {
	h := &Harness{scope: NewScope()}
	assert.EqualError(t, h.ExpectArgs("x"), "no mock runner has been constructed")
}
