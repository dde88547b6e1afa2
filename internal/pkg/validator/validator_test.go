package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	_, ok := IsValidDate("2025-08-04")
	assert.True(t, ok)

	_, ok = IsValidDate("04-08-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-02-30")
	assert.False(t, ok)
}

func TestIsValidClock(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidClock("08:00:00"))
	assert.True(t, IsValidClock("23:59:59"))
	assert.False(t, IsValidClock("24:00:00"))
	assert.False(t, IsValidClock("08:00"))
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		{Field: "year", Message: "is required"},
		{Field: "month", Message: "must be between 1 and 12"},
	}

	assert.Equal(t, "year: is required; month: must be between 1 and 12", errs.Error())
	assert.Equal(t, map[string]string{
		"year":  "is required",
		"month": "must be between 1 and 12",
	}, errs.ToMap())
}
