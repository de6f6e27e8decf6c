package app

import (
	"errors"
	"fmt"

	"github.com/kannan/lingora/internal/config"
)

// ExitCode is a process exit status.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitExecutionError indicates the execution routine failed, or an
	// otherwise unclassified error.
	ExitExecutionError ExitCode = 1

	// ExitUsageError indicates malformed command-line input.
	ExitUsageError ExitCode = 2

	// ExitValidationError indicates the arguments parsed but describe an
	// invalid configuration.
	ExitValidationError ExitCode = 3

	// ExitIssuesFound indicates the run completed and reported findings.
	ExitIssuesFound ExitCode = 4
)

// ErrIssuesFound is returned by the CLI when the workspace has findings.
var ErrIssuesFound = errors.New("workspace issues detected")

// UsageError is malformed or unparseable command-line input. Usage holds the
// usage text to show alongside the message.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExecutionError is a failure of the execution routine itself.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// ExitCodeFor maps an error returned to an entry point onto an exit code.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	var validationErr *config.ValidationError
	switch {
	case errors.As(err, &usageErr):
		return ExitUsageError
	case errors.As(err, &validationErr):
		return ExitValidationError
	case errors.Is(err, ErrIssuesFound):
		return ExitIssuesFound
	default:
		return ExitExecutionError
	}
}
