package apperr

import (
	"io"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindAndStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		kind   Kind
		status int
	}{
		{BadRequest("bad"), KindBadRequest, http.StatusBadRequest},
		{NotFound("missing"), KindNotFound, http.StatusNotFound},
		{Forbidden("no"), KindForbidden, http.StatusForbidden},
		{Conflict("taken"), KindConflict, http.StatusConflict},
		{Internal("boom"), KindInternal, http.StatusInternalServerError},
		{io.EOF, KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, KindOf(tc.err))
		assert.Equal(t, tc.status, StatusOf(tc.err))
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := errors.Wrap(NotFound("user not found"), "listing conversations")
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "user not found", MessageOf(err))
}

func TestWrapKeepsCauseOffTheWire(t *testing.T) {
	err := Wrap(KindInternal, "Internal server error", io.ErrUnexpectedEOF)
	assert.Equal(t, "Internal server error", MessageOf(err))
	assert.Contains(t, err.Error(), "unexpected EOF")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
