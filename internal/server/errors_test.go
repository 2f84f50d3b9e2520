package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/voice-agent/internal/posts"
	"github.com/jonathan/voice-agent/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "profile not found",
			err:  &ErrProfileNotFound{Handle: "someone"},
			want: http.StatusNotFound,
		},
		{
			name: "research not found",
			err:  &ErrResearchNotFound{ID: "abc"},
			want: http.StatusNotFound,
		},
		{
			name: "history entry not found",
			err:  &ErrEntryNotFound{ID: "abc"},
			want: http.StatusNotFound,
		},
		{
			name: "upstream user not found",
			err:  &posts.NotFoundError{Handle: "ghost"},
			want: http.StatusNotFound,
		},
		{
			name: "validation failure",
			err:  &ErrValidation{Field: "username", Message: "required"},
			want: http.StatusBadRequest,
		},
		{
			name: "invalid content type",
			err:  &types.InvalidContentTypeError{Value: "essay"},
			want: http.StatusBadRequest,
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("loading profile: %w", &ErrProfileNotFound{Handle: "someone"}),
			want: http.StatusNotFound,
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrProfileNotFound_Message(t *testing.T) {
	err := &ErrProfileNotFound{Handle: "someone"}
	assert.Contains(t, err.Error(), "@someone")
	assert.Contains(t, err.Error(), "run analyze first")
}
