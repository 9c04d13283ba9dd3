package statuscode_test

import (
	"errors"
	"hotelbook/shared/failure"
	"hotelbook/shared/statuscode"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Code(t *testing.T) {
	tests := []struct {
		name   string
		result statuscode.Result
		code   int64
	}{
		{name: "success carries the id", result: statuscode.Success(42), code: 42},
		{name: "room not found", result: statuscode.Result{Outcome: statuscode.OutcomeRoomNotFound}, code: -1},
		{name: "room occupied", result: statuscode.Result{Outcome: statuscode.OutcomeRoomOccupied}, code: -2},
		{name: "invalid dates", result: statuscode.Result{Outcome: statuscode.OutcomeInvalidDates}, code: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.result.Code())

			parsed, err := statuscode.FromCode(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.result, parsed)
		})
	}
}

func TestFromCode_Unknown(t *testing.T) {
	for _, code := range []int64{0, -4, -100} {
		_, err := statuscode.FromCode(code)
		assert.ErrorIs(t, err, statuscode.ErrUnknownCode)
	}
}

func TestFromError(t *testing.T) {
	persistence := failure.PersistenceFailure(errors.New("commit failed"))

	tests := []struct {
		name    string
		id      int64
		err     error
		want    statuscode.Result
		wantErr error
	}{
		{name: "success", id: 7, want: statuscode.Success(7)},
		{name: "room not found", err: failure.RoomNotFound("no room"), want: statuscode.Result{Outcome: statuscode.OutcomeRoomNotFound}},
		{name: "room unavailable", err: failure.RoomUnavailable("taken"), want: statuscode.Result{Outcome: statuscode.OutcomeRoomOccupied}},
		{name: "invalid dates", err: failure.InvalidDateRange("bad"), want: statuscode.Result{Outcome: statuscode.OutcomeInvalidDates}},
		{name: "other errors pass through", err: persistence, wantErr: persistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := statuscode.FromError(tt.id, tt.err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResult_Err(t *testing.T) {
	assert.NoError(t, statuscode.Success(1).Err())
	assert.True(t, failure.IsKind(statuscode.Result{Outcome: statuscode.OutcomeRoomOccupied}.Err(), failure.KindRoomUnavailable))
	assert.Equal(t, "invalid_dates", statuscode.OutcomeInvalidDates.String())
	assert.True(t, statuscode.Success(3).OK())

	for _, outcome := range []statuscode.Outcome{
		statuscode.OutcomeRoomNotFound,
		statuscode.OutcomeRoomOccupied,
		statuscode.OutcomeInvalidDates,
	} {
		t.Run(outcome.String(), func(t *testing.T) {
			rejected := statuscode.Result{Outcome: outcome}

			err := rejected.Err()
			require.Error(t, err)
			assert.NotZero(t, failure.GetKind(err))

			back, err := statuscode.FromError(0, err)
			require.NoError(t, err)
			assert.Equal(t, rejected, back)
		})
	}
}
