package cli

import (
	"fmt"

	"github.com/raveheart1/relkit/internal/errors"
)

// Exit codes for the relkit CLI. These codes support programmatic
// composition and CI integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitRenderFailed indicates the graph or changelog could not be produced.
	ExitRenderFailed = 1

	// ExitInvalidArguments indicates invalid command arguments.
	ExitInvalidArguments = 3

	// ExitNotARepository indicates the working directory is not a git repository.
	ExitNotARepository = 4
)

// ExitError carries an explicit process exit code up to main.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// exitCodeFor maps an error returned by command execution to a process exit
// code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if exitErr, ok := err.(*ExitError); ok {
		return exitErr.Code
	}
	if cliErr := errors.AsCLIError(err); cliErr != nil && cliErr.Category == errors.Argument {
		return ExitInvalidArguments
	}
	return ExitRenderFailed
}
