package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctorew/pocket-morties/pkg/apperrors"
)

func TestError_Error(t *testing.T) {
	err := &Error{
		Type:       ErrorTypeEndpoint,
		Message:    "server error",
		StatusCode: 503,
		Provider:   ProviderOpenAI,
		Model:      "gpt-3.5-turbo",
		Endpoint:   "https://api.openai.com/v1",
	}

	result := err.Error()
	assert.Contains(t, result, "HTTP 503")
	assert.Contains(t, result, "provider=openai")
	assert.Contains(t, result, "model=gpt-3.5-turbo")
	assert.Contains(t, result, "endpoint=api.openai.com")
	assert.NotContains(t, result, "/v1", "endpoint should be redacted to host only")
	assert.Contains(t, result, "server error")
}

func TestError_UnwrapsToUpstreamAndCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("freeform: %w", NewError(ErrorTypeEndpoint, "connection failed", cause))

	assert.ErrorIs(t, err, apperrors.ErrUpstreamFetch)
	assert.ErrorIs(t, err, cause)

	withoutCause := NewError(ErrorTypeUnknown, "odd", nil)
	assert.ErrorIs(t, withoutCause, apperrors.ErrUpstreamFetch)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantType   ErrorType
		wantStatus int
	}{
		{"unauthorized", errors.New("error, status code: 401, message: Incorrect API key"), ErrorTypeAuth, 401},
		{"anthropic auth", errors.New("anthropic api error type: authentication_error, message: invalid x-api-key"), ErrorTypeAuth, 0},
		{"model missing", errors.New("The model `gpt-9` does not exist"), ErrorTypeModel, 0},
		{"endpoint 404", errors.New("error, status code: 404"), ErrorTypeEndpoint, 404},
		{"connection refused", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), ErrorTypeEndpoint, 0},
		{"deadline", context.DeadlineExceeded, ErrorTypeEndpoint, 0},
		{"rate limited", errors.New("error, status code: 429, message: Rate limit reached"), ErrorTypeRateLimit, 429},
		{"overloaded", errors.New("error, status code: 529, message: Overloaded"), ErrorTypeEndpoint, 529},
		{"server error", errors.New("error, status code: 502"), ErrorTypeEndpoint, 502},
		{"unknown", errors.New("something odd"), ErrorTypeUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassifyError_Passthrough(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))

	original := NewError(ErrorTypeModel, "model not found", nil)
	wrapped := fmt.Errorf("context: %w", original)
	assert.Same(t, original, ClassifyError(wrapped))
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, ErrorTypeAuth, GetErrorType(NewError(ErrorTypeAuth, "x", nil)))
	assert.Equal(t, ErrorTypeUnknown, GetErrorType(errors.New("plain")))
}
