package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	verr := &ValidationError{}
	assert.False(t, verr.HasViolations())

	verr.Add("a canonical locale is required", FieldCanonical)
	verr.Addf([]string{FieldCanonical, FieldPrimaries}, "locale %s cannot be both canonical and primary", "en")
	verr.Add("jobs must be positive", FieldJobs)

	assert.True(t, verr.HasViolations())
	assert.Equal(t, []string{FieldCanonical, FieldPrimaries, FieldJobs}, verr.Fields())
	assert.True(t, verr.HasField(FieldPrimaries))
	assert.False(t, verr.HasField(FieldFluentSources))

	assert.Equal(t,
		"configuration validation failed: canonical: a canonical locale is required; "+
			"canonical, primaries: locale en cannot be both canonical and primary; "+
			"jobs: jobs must be positive",
		verr.Error())
	assert.Equal(t,
		"Configuration has errors:\n"+
			"  ✗ canonical: a canonical locale is required\n"+
			"  ✗ canonical, primaries: locale en cannot be both canonical and primary\n"+
			"  ✗ jobs: jobs must be positive\n",
		verr.String())
}

func TestNilValidationErrorHasNoViolations(t *testing.T) {
	var verr *ValidationError
	assert.False(t, verr.HasViolations())
}
