// Package mock provides a deterministic Runner for tests.
//
// A MockRunner never spawns a process. Exec pops the next result from the
// ResponseQueue of its Scope and stamps it with the arguments the runner built. The
// mock is response-driven: what was queued is what comes back, whatever command was
// built. Tests that care about the command inspect GetMockShell().Arguments() or use
// Harness.ExpectArgs.
//
// Each Scope owns one queue and one back-reference to the latest MockRunner. Tests
// that run in parallel create their own scope.
package mock

import "azcli/pkg/runner"

// NotConfiguredMessage is the Stderr of the result returned by an empty queue.
const NotConfiguredMessage = "Mock ExecResults not set"

// NotConfiguredCode is the Code of the result returned by an empty queue.
const NotConfiguredCode = 100

// ResponseQueue is a FIFO of canned execution results.
// It is not safe for concurrent use.
type ResponseQueue struct {
	responses []runner.ExecResult
}

// Add appends result to the tail of the queue.
func (q *ResponseQueue) Add(result runner.ExecResult) *ResponseQueue {
	q.responses = append(q.responses, result)
	return q
}

// GetNext removes and returns the head of the queue. An empty queue yields a
// result with NotConfiguredCode and NotConfiguredMessage instead.
func (q *ResponseQueue) GetNext() runner.ExecResult {
	if len(q.responses) == 0 {
		return runner.ExecResult{
			Code:   NotConfiguredCode,
			Stderr: NotConfiguredMessage,
		}
	}
	next := q.responses[0]
	q.responses[0] = runner.ExecResult{}
	q.responses = q.responses[1:]
	return next
}

// Clear drops every queued result.
func (q *ResponseQueue) Clear() {
	q.responses = nil
}

// Len returns the number of queued results.
func (q *ResponseQueue) Len() int {
	return len(q.responses)
}
