package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, "bad", ErrBadRequest)
	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "bad", err.Message)
	assert.Equal(t, ErrBadRequest.Error(), err.Error())

	notFound := NotFound("missing")
	assert.Equal(t, http.StatusNotFound, notFound.Code)
	assert.ErrorIs(t, notFound, ErrNotFound)

	badReq := BadRequest("bad request")
	assert.Equal(t, http.StatusBadRequest, badReq.Code)
	assert.ErrorIs(t, badReq, ErrInvalidInput)

	conflict := Conflict("already rewarded", ErrAlreadyRewarded)
	assert.Equal(t, http.StatusConflict, conflict.Code)
	assert.ErrorIs(t, conflict, ErrAlreadyRewarded)

	unavailable := Unavailable("store down")
	assert.Equal(t, http.StatusServiceUnavailable, unavailable.Code)
	assert.ErrorIs(t, unavailable, ErrUnavailable)

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Code)
	assert.Equal(t, "db down", internal.Error())
}

func TestAppError_MessageFallback(t *testing.T) {
	err := &AppError{Code: http.StatusTeapot, Message: "just a message"}
	assert.Equal(t, "just a message", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestAppError_Unwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := NewAppError(http.StatusConflict, "outer", inner)
	assert.ErrorIs(t, err, inner)
}
