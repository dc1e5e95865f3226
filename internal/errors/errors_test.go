package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorString(t *testing.T) {
	err := Upstream(503, "tenant enumeration failed")
	assert.Equal(t, "tenant enumeration failed", err.Error())

	wrapped := Internal("aggregation failed", errors.New("boom"))
	assert.Equal(t, "aggregation failed: boom", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := BadGateway("malformed payload", cause)

	assert.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, CodeOf(NotFound("ticket not found")))
	assert.Equal(t, ErrCodeValidation, CodeOf(Validation("name", "name is required")))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))

	wrapped := fmt.Errorf("context: %w", Upstream(502, "bad upstream"))
	assert.Equal(t, ErrCodeUpstream, CodeOf(wrapped))
}

func TestMapDBError(t *testing.T) {
	assert.Nil(t, MapDBError(nil))

	err := MapDBError(pgx.ErrNoRows)
	assert.True(t, IsNotFound(err))

	err = MapDBError(context.DeadlineExceeded)
	assert.Equal(t, ErrCodeTimeout, CodeOf(err))

	err = MapDBError(errors.New("some db failure"))
	assert.Equal(t, ErrCodeInternal, CodeOf(err))
}
