package failure_test

import (
	"errors"
	"fmt"
	"hotelbook/shared/failure"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusConflict,
		Message: "room 101 is already booked",
	}

	assert.Equal(t, "room 101 is already booked", f.Error())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		kind    failure.Kind
		message string
	}{
		{
			name:    "bad request",
			err:     failure.BadRequestFromString("check_in is required"),
			code:    http.StatusBadRequest,
			message: "check_in is required",
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			message: "token expired",
		},
		{
			name:    "forbidden",
			err:     failure.Forbidden("booking belongs to another customer"),
			code:    http.StatusForbidden,
			message: "booking belongs to another customer",
		},
		{
			name:    "conflict",
			err:     failure.Conflict("room number already exists"),
			code:    http.StatusConflict,
			message: "room number already exists",
		},
		{
			name:    "not found",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			kind:    failure.KindNotFound,
			message: "booking not found",
		},
		{
			name:    "room unavailable",
			err:     failure.RoomUnavailable("room is booked for the requested dates"),
			code:    http.StatusConflict,
			kind:    failure.KindRoomUnavailable,
			message: "room is booked for the requested dates",
		},
		{
			name:    "room not found",
			err:     failure.RoomNotFound("room not found"),
			code:    http.StatusNotFound,
			kind:    failure.KindRoomNotFound,
			message: "room not found",
		},
		{
			name:    "invalid date range",
			err:     failure.InvalidDateRange("check_out must be after check_in"),
			code:    http.StatusBadRequest,
			kind:    failure.KindInvalidDateRange,
			message: "check_out must be after check_in",
		},
		{
			name:    "customer not found",
			err:     failure.CustomerNotFound("customer not found"),
			code:    http.StatusNotFound,
			kind:    failure.KindCustomerNotFound,
			message: "customer not found",
		},
		{
			name:    "invalid transition",
			err:     failure.InvalidTransition("cannot cancel a checked_out booking"),
			code:    http.StatusConflict,
			kind:    failure.KindInvalidTransition,
			message: "cannot cancel a checked_out booking",
		},
		{
			name:    "persistence failure",
			err:     failure.PersistenceFailure(errors.New("connection reset")),
			code:    http.StatusInternalServerError,
			kind:    failure.KindPersistenceFailure,
			message: "failed to persist changes: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure

			assert.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, tt.kind, f.Kind)
			assert.Equal(t, tt.message, f.Message)
		})
	}
}

func TestNilWrappers(t *testing.T) {
	assert.Nil(t, failure.BadRequest(nil))
	assert.Nil(t, failure.InternalError(nil))
	assert.Nil(t, failure.PersistenceFailure(nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    failure.RoomUnavailable("taken"),
			expected: http.StatusConflict,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to create booking: %w", failure.InvalidDateRange("bad dates")),
			expected: http.StatusBadRequest,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.input))
		})
	}
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("failed to check in: %w", failure.RoomNotFound("room 404 not found"))

	assert.True(t, failure.IsKind(wrapped, failure.KindRoomNotFound))
	assert.False(t, failure.IsKind(wrapped, failure.KindRoomUnavailable))
	assert.False(t, failure.IsKind(nil, failure.KindRoomNotFound))
	assert.False(t, failure.IsKind(errors.New("plain"), failure.KindNotFound))
	assert.Equal(t, failure.Kind(""), failure.GetKind(failure.Conflict("dup")))
}
