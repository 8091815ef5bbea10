package mock

import (
	"fmt"
	"testing"

	"azcli/pkg/runner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notConfigured() runner.ExecResult {
	return runner.ExecResult{Code: 100, Stderr: "Mock ExecResults not set"}
}

func TestResponseQueue_FIFO(t *testing.T) {
	var q ResponseQueue

	var added []runner.ExecResult
	for i := 0; i < 5; i++ {
		r := runner.ExecResult{Code: i, Stdout: fmt.Sprintf("out-%d", i)}
		added = append(added, r)
		q.Add(r)
	}
	require.Equal(t, 5, q.Len())

	for _, want := range added {
		assert.Equal(t, want, q.GetNext())
	}
	assert.Equal(t, 0, q.Len())
}

func TestResponseQueue_AddIsChainable(t *testing.T) {
	var q ResponseQueue
	q.Add(runner.ExecResult{Code: 1}).Add(runner.ExecResult{Code: 2})

	assert.Equal(t, 1, q.GetNext().Code)
	assert.Equal(t, 2, q.GetNext().Code)
}

func TestResponseQueue_AcceptsAnyResult(t *testing.T) {
	var q ResponseQueue
	odd := runner.ExecResult{Code: -42, Stdout: "out", Stderr: "err"}
	q.Add(odd)

	assert.Equal(t, odd, q.GetNext())
}

func TestResponseQueue_EmptyReturnsSentinel(t *testing.T) {
	var q ResponseQueue

	for i := 0; i < 3; i++ {
		assert.NotPanics(t, func() {
			assert.Equal(t, notConfigured(), q.GetNext())
		})
	}
}

func TestResponseQueue_Clear(t *testing.T) {
	var q ResponseQueue
	q.Add(runner.ExecResult{Code: 0}).Add(runner.ExecResult{Code: 1})

	q.Clear()
	q.Clear()

	assert.Equal(t, 0, q.Len())
	assert.Equal(t, notConfigured(), q.GetNext())
}
