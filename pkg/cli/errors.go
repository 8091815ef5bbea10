package cli

import (
	"fmt"
	"strings"

	"azcli/pkg/runner"
)

// ExecError reports an az command that finished with a non-zero code.
type ExecError struct {
	// Command is the argument list passed to az.
	Command []string

	// Code is the status code of the execution.
	Code int

	Stdout string
	Stderr string
}

func newExecError(res runner.ExecResult) *ExecError {
	return &ExecError{
		Command: res.Arguments,
		Code:    res.Code,
		Stdout:  res.Stdout,
		Stderr:  res.Stderr,
	}
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg != "" {
		return fmt.Sprintf("az %v failed with code %d: %s", e.Command, e.Code, msg)
	}
	return fmt.Sprintf("az %v failed with code %d", e.Command, e.Code)
}
