package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsCarryStatusAndKind(t *testing.T) {
	tests := []struct {
		err    *APIError
		status int
		kind   Kind
	}{
		{NewFormat("bad date"), http.StatusNotAcceptable, KindFormat},
		{NewOrder("start after end"), http.StatusNotAcceptable, KindOrder},
		{NewConflict("overlap"), http.StatusConflict, KindConflict},
		{NewNotFound("missing"), http.StatusNotFound, KindNotFound},
		{NewInput("bad id"), http.StatusBadRequest, KindInput},
		{NewInternal(errors.New("db down")), http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.Status)
		assert.Equal(t, tt.kind, tt.err.Kind)
	}
}

func TestFrom(t *testing.T) {
	t.Run("passes through an APIError", func(t *testing.T) {
		orig := NewConflict("overlap")
		assert.Same(t, orig, From(orig))
	})

	t.Run("unwraps a wrapped APIError", func(t *testing.T) {
		wrapped := fmt.Errorf("while scheduling: %w", NewNotFound("missing"))
		got := From(wrapped)
		assert.Equal(t, KindNotFound, got.Kind)
	})

	t.Run("wraps unknown errors as internal", func(t *testing.T) {
		cause := errors.New("connection refused")
		got := From(cause)
		assert.Equal(t, KindInternal, got.Kind)
		assert.Equal(t, "internal server error", got.Message)
		assert.ErrorIs(t, got, cause)
	})
}

func TestIsKind(t *testing.T) {
	err := NewOrder("start after end")
	assert.True(t, IsKind(err, KindOrder))
	assert.False(t, IsKind(err, KindFormat))
	assert.False(t, IsKind(errors.New("plain"), KindOrder))
	assert.True(t, IsKind(fmt.Errorf("wrap: %w", err), KindOrder))
}
