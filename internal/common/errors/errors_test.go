package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_DistinctCodes(t *testing.T) {
	cause := stderrors.New("boom")
	errs := []*LoadError{
		NewRequestConstructionError(cause),
		NewTransportError(cause),
		NewHTTPStatusError(404),
		NewEmptyBodyError(200),
		NewDecodeError(cause),
	}

	seen := map[ErrorCode]bool{}
	for _, e := range errs {
		assert.NotEmpty(t, e.Error())
		assert.False(t, seen[e.Code], "duplicate code %s", e.Code)
		seen[e.Code] = true
	}
	assert.Len(t, seen, 5)
}

func TestNewHTTPStatusError(t *testing.T) {
	notFound := NewHTTPStatusError(404)
	assert.Contains(t, notFound.Error(), "404")
	assert.Equal(t, 404, notFound.StatusCode)
	assert.False(t, notFound.Retryable)

	unavailable := NewHTTPStatusError(503)
	assert.True(t, unavailable.Retryable)
}

func TestLoadError_UnwrapAndHelpers(t *testing.T) {
	cause := stderrors.New("connection reset by peer")
	err := fmt.Errorf("wrapped: %w", NewTransportError(cause))

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, HasCode(err, ErrCodeTransportFailed))
	assert.False(t, HasCode(err, ErrCodeDecodeFailed))
	assert.True(t, IsRetryable(err))
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	le := NewEmptyBodyError(204)
	assert.Same(t, le, Normalize(le))

	other := Normalize(stderrors.New("mystery"))
	require.NotNil(t, other)
	assert.Equal(t, ErrCodeInternal, other.Code)
	assert.Equal(t, "mystery", other.Details)
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeRequestConstructionFailed: "REQUEST",
		ErrCodeTransportFailed:           "NETWORK",
		ErrCodeHTTPStatus:                "SERVER",
		ErrCodeEmptyBody:                 "PAYLOAD",
		ErrCodeDecodeFailed:              "PAYLOAD",
		ErrCodeInternal:                  "UNKNOWN",
	}
	for code, want := range tests {
		t.Run(string(code), func(t *testing.T) {
			assert.Equal(t, want, GetErrorCategory(code))
		})
	}
}
