package helper

import (
	"testing"

	"github.com/LerianStudio/lib-license-verify/model"
	"github.com/stretchr/testify/assert"
)

// AssertValidationResult checks validity and, for invalid results, the exact reasons in order.
func AssertValidationResult(t *testing.T, result model.ValidationResult, expectedValid bool, expectedReasons ...string) {
	t.Helper()
	assert.Equal(t, expectedValid, result.Valid, "validation result validity mismatch")

	if expectedValid {
		assert.Empty(t, result.Reasons, "valid result carries reasons")
		return
	}

	assert.Equal(t, expectedReasons, result.Reasons, "validation reasons mismatch")
}
