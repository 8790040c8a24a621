package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  NewError(PRECONDITION_FAILED, "instance cannot be nil"),
			want: "[PRECONDITION_FAILED] instance cannot be nil",
		},
		{
			name: "with cause",
			err:  WrapError(ENGINE_QUERY_FAILED, "query failed", errors.New("connection reset")),
			want: "[ENGINE_QUERY_FAILED] query failed: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("bolt handshake failed")
	err := WrapError(GRAPH_CONNECTION_FAILED, "connect failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestError_Is_MatchesByCode(t *testing.T) {
	err := WrapError(OPERATION_CANCELLED, "cancelled before dispatch", errors.New("context canceled"))

	assert.True(t, err.Is(NewError(OPERATION_CANCELLED, "other message")))
	assert.False(t, err.Is(NewError(ENGINE_QUERY_FAILED, "other message")))
	assert.False(t, err.Is(errors.New("plain error")))
}

func TestHasCode(t *testing.T) {
	inner := NewError(MATERIALIZATION_FAILED, "cannot coerce")
	wrapped := fmt.Errorf("reading user: %w", inner)

	assert.True(t, HasCode(wrapped, MATERIALIZATION_FAILED))
	assert.False(t, HasCode(wrapped, OPERATION_CANCELLED))
	assert.False(t, HasCode(errors.New("plain"), MATERIALIZATION_FAILED))
}

func TestNewRetryableError(t *testing.T) {
	err := NewRetryableError(GRAPH_CONNECTION_FAILED, "transient")
	assert.True(t, err.Retryable)
	assert.False(t, NewError(GRAPH_CONNECTION_FAILED, "fatal").Retryable)
}
