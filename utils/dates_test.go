package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndFormatDate(t *testing.T) {
	date, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", FormatDate(date))

	_, err = ParseDate("15-01-2024")
	assert.Error(t, err)
}

func TestBeginningAndEndOfDay(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 45, 12345, time.UTC)

	start := BeginningOfDay(now)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), start)

	end := EndOfDay(now)
	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 23, end.Hour())
}

func TestValidateMobile(t *testing.T) {
	assert.True(t, ValidateMobile("+911234567890"))
	assert.True(t, ValidateMobile("9876543210"))
	assert.True(t, ValidateMobile("98765 43210"))
	assert.False(t, ValidateMobile("12"))
	assert.False(t, ValidateMobile("abc123"))
	assert.False(t, ValidateMobile("0123456789"))
}
