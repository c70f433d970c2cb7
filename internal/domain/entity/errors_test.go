package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "simple validation error",
			field:    "url",
			message:  "URL is required",
			expected: "validation error on field 'url': URL is required",
		},
		{
			name:     "empty field name",
			field:    "",
			message:  "test message",
			expected: "validation error on field '': test message",
		},
		{
			name:     "empty message",
			field:    "slug",
			message:  "",
			expected: "validation error on field 'slug': ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &ValidationError{Field: tt.field, Message: tt.message}
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestValidationError_InErrorChain(t *testing.T) {
	base := &ValidationError{Field: "content", Message: "content is required"}
	wrapped := fmt.Errorf("summarize: %w", base)

	var ve *ValidationError
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "content", ve.Field)
	assert.True(t, errors.Is(wrapped, ErrValidationFailed))
	assert.False(t, errors.Is(wrapped, ErrProviderUnavailable))
}

func TestSentinelErrors_Uniqueness(t *testing.T) {
	assert.NotEqual(t, ErrProviderUnavailable, ErrInvalidInput)
	assert.NotEqual(t, ErrInvalidInput, ErrValidationFailed)
	assert.NotEqual(t, ErrProviderUnavailable, ErrValidationFailed)
}
