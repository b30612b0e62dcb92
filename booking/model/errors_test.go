package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsFailureUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("while creating: %w", NewNotFound("abc"))

	failure, ok := AsFailure(wrapped)
	require.True(t, ok)
	assert.Equal(t, NOT_FOUND, failure.Kind)
	assert.Equal(t, "Booking with id 'abc' not found", failure.Message)

	_, ok = AsFailure(errors.New("boom"))
	assert.False(t, ok)
}

func TestFailureMessages(t *testing.T) {
	assert.Equal(t, "Too many rooms requested: 21 (max 20).", NewTooManyRooms(21, 20).Message)
	assert.Equal(t, "Guest count (4) must exactly match room capacity (3).", NewCapacityMismatch(4, 3).Message)
	assert.Equal(t, "CAPACITY_MISMATCH", NewCapacityMismatch(4, 3).Code)
	assert.Equal(t, "MISSING_ID", NewMissingIdentifier().Code)
	assert.Equal(t, "BAD_REQUEST", NewInvalidPayload(NewFieldErrors()).Code)
}

func TestFieldErrorsCount(t *testing.T) {
	fieldErrors := NewFieldErrors()
	fieldErrors.AddFieldError("guests", "Required")
	fieldErrors.AddFieldError("guests", "Number must be greater than 0")
	fieldErrors.AddFormError("malformed JSON body")

	assert.Equal(t, 2, fieldErrors.Count())
	assert.Len(t, fieldErrors.FieldErrors["guests"], 2)
}
