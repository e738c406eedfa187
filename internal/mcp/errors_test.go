package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/takashabe/habitica-mcp/internal/habitica"
)

type emptyError struct{}

func (emptyError) Error() string { return "" }

func TestErrorMessagePriority(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "remote message wins",
			err:  fmt.Errorf("POST /tasks: %w", &habitica.APIError{Status: "400 Bad Request", RemoteMessage: "X"}),
			want: "X",
		},
		{
			name: "generic message without remote message",
			err:  &habitica.APIError{Status: "500 Internal Server Error"},
			want: "habitica: 500 Internal Server Error",
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: "connection refused",
		},
		{
			name: "empty message falls back",
			err:  emptyError{},
			want: "Unknown error",
		},
		{
			name: "nil falls back",
			err:  nil,
			want: "Unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestWrapKinds(t *testing.T) {
	assert.Nil(t, Wrap(nil))

	upstream := Wrap(&habitica.APIError{Status: "404 Not Found", RemoteMessage: "Task not found."})
	assert.Equal(t, KindUpstream, upstream.Kind)
	assert.Equal(t, "Task not found.", upstream.Message)
	assert.Equal(t, CodeInternalError, upstream.Kind.Code())

	malformed := Wrap(fmt.Errorf("%w: missing %q", habitica.ErrMalformedResponse, "data.id"))
	assert.Equal(t, KindMalformed, malformed.Kind)
	assert.ErrorIs(t, malformed, habitica.ErrMalformedResponse)

	internal := Wrap(errors.New("boom"))
	assert.Equal(t, KindInternal, internal.Kind)
	assert.Equal(t, "boom", internal.Message)
}

func TestWrapDoesNotDoubleWrap(t *testing.T) {
	orig := NotFound("does_not_exist")
	wrapped := Wrap(fmt.Errorf("outer: %w", orig))

	assert.Same(t, orig, wrapped)
	assert.Equal(t, CodeMethodNotFound, wrapped.Kind.Code())
}
