package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorStatusCodes(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeValidationFailed, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeRecipeNotFound, http.StatusNotFound},
		{CodeNothingRecognized, http.StatusUnprocessableEntity},
		{CodeInternal, http.StatusInternalServerError},
		{CodeDatabaseError, http.StatusInternalServerError},
		{CodeIndexNotLoaded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := New(tt.code, "message", "")
			assert.Equal(t, tt.expected, err.StatusCode())
		})
	}
}

func TestNothingRecognizedCarriesInputLength(t *testing.T) {
	err := NewNothingRecognizedError("some meal text")
	assert.Equal(t, CodeNothingRecognized, err.Code)
	require.NotNil(t, err.Metadata)
	assert.Equal(t, len("some meal text"), err.Metadata["input_length"])
}

func TestIsMatchesWrappedErrors(t *testing.T) {
	base := NewRecipeNotFoundError("phantom dish")
	wrapped := fmt.Errorf("lookup failed: %w", base)

	assert.True(t, Is(wrapped, CodeRecipeNotFound))
	assert.False(t, Is(wrapped, CodeNotFound))
	assert.False(t, Is(errors.New("plain"), CodeRecipeNotFound))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewDatabaseError("insert", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeDatabaseError, GetCode(err))
}

func TestGetCodeDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, GetCode(errors.New("plain")))
}
