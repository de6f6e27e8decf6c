package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kannan/lingora/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	verr := &config.ValidationError{}
	verr.Add("a canonical locale is required", config.FieldCanonical)

	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{name: "success", err: nil, want: ExitSuccess},
		{name: "usage", err: &UsageError{Err: errors.New("unknown flag: --bogus")}, want: ExitUsageError},
		{name: "validation", err: verr, want: ExitValidationError},
		{name: "wrapped validation", err: fmt.Errorf("startup: %w", verr), want: ExitValidationError},
		{name: "execution", err: &ExecutionError{Err: errors.New("boom")}, want: ExitExecutionError},
		{name: "issues found", err: ErrIssuesFound, want: ExitIssuesFound},
		{name: "unclassified", err: errors.New("boom"), want: ExitExecutionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	codes := []ExitCode{ExitSuccess, ExitExecutionError, ExitUsageError, ExitValidationError, ExitIssuesFound}
	seen := make(map[ExitCode]bool)
	for _, c := range codes {
		assert.False(t, seen[c], "exit code %d used twice", c)
		seen[c] = true
	}
}

func TestExecutionErrorUnwraps(t *testing.T) {
	err := &ExecutionError{Err: fmt.Errorf("scan: %w", context.Canceled)}

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "execution failed: scan: context canceled", err.Error())
}
