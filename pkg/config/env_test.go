package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TLDR_TEST_STRING", "  value  ")
	assert.Equal(t, "value", GetEnvString("TLDR_TEST_STRING", "default"))

	t.Setenv("TLDR_TEST_STRING", "   ")
	assert.Equal(t, "default", GetEnvString("TLDR_TEST_STRING", "default"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{"", 10},
		{"25", 25},
		{"-3", -3},
		{"20abc", 10},
		{"ten", 10},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TLDR_TEST_INT", tt.value)
			assert.Equal(t, tt.expected, GetEnvInt("TLDR_TEST_INT", 10))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TLDR_TEST_FLOAT", "0.25")
	assert.InDelta(t, 0.25, GetEnvFloat("TLDR_TEST_FLOAT", 0.7), 1e-9)

	t.Setenv("TLDR_TEST_FLOAT", "warm")
	assert.InDelta(t, 0.7, GetEnvFloat("TLDR_TEST_FLOAT", 0.7), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"false", false},
		{"0", false},
		{"TRUE", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TLDR_TEST_BOOL", tt.value)
			assert.Equal(t, tt.expected, GetEnvBool("TLDR_TEST_BOOL", true))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TLDR_TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("TLDR_TEST_DURATION", time.Hour))

	t.Setenv("TLDR_TEST_DURATION", "3600")
	assert.Equal(t, time.Hour, GetEnvDuration("TLDR_TEST_DURATION", time.Hour))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TLDR_TEST_LIST", " openai, ,anthropic ,")
	assert.Equal(t, []string{"openai", "anthropic"}, GetEnvStringList("TLDR_TEST_LIST", nil))

	t.Setenv("TLDR_TEST_LIST", " , ")
	assert.Equal(t, []string{"echo"}, GetEnvStringList("TLDR_TEST_LIST", []string{"echo"}))
}

func TestValidateRange(t *testing.T) {
	assert.NoError(t, ValidateRange(0.7, 0.0, 2.0))
	assert.Error(t, ValidateRange(2.5, 0.0, 2.0))
	assert.Error(t, ValidateRange(-1, 0, 10))
	assert.Error(t, ValidateRange(5, 10, 0))
}

func TestValidateDurations(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.NoError(t, ValidateNonNegativeDuration(0))
	assert.Error(t, ValidateNonNegativeDuration(-time.Second))
}
