// Package statuscode translates check-in outcomes to and from the signed integer
// protocol used by legacy callers: a positive occupancy id on success, -1 when the
// room does not exist, -2 when it is occupied and -3 when the dates are invalid.
package statuscode

import (
	"errors"
	"fmt"
	"hotelbook/shared/failure"
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRoomNotFound
	OutcomeRoomOccupied
	OutcomeInvalidDates
)

const (
	CodeRoomNotFound int64 = -1
	CodeRoomOccupied int64 = -2
	CodeInvalidDates int64 = -3
)

var ErrUnknownCode = errors.New("unknown status code")

var outcomeNames = map[Outcome]string{
	OutcomeSuccess:      "success",
	OutcomeRoomNotFound: "room_not_found",
	OutcomeRoomOccupied: "room_occupied",
	OutcomeInvalidDates: "invalid_dates",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}

	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is the discriminated outcome of a check-in. ID is set only on success.
type Result struct {
	Outcome Outcome `json:"outcome"`
	ID      int64   `json:"id,omitempty"`
}

func Success(id int64) Result {
	return Result{Outcome: OutcomeSuccess, ID: id}
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Code renders the legacy integer.
func (r Result) Code() int64 {
	switch r.Outcome {
	case OutcomeSuccess:
		return r.ID
	case OutcomeRoomNotFound:
		return CodeRoomNotFound
	case OutcomeRoomOccupied:
		return CodeRoomOccupied
	case OutcomeInvalidDates:
		return CodeInvalidDates
	default:
		return 0
	}
}

// FromCode parses a legacy integer. Zero and unknown negatives are rejected.
func FromCode(code int64) (Result, error) {
	switch {
	case code > 0:
		return Success(code), nil
	case code == CodeRoomNotFound:
		return Result{Outcome: OutcomeRoomNotFound}, nil
	case code == CodeRoomOccupied:
		return Result{Outcome: OutcomeRoomOccupied}, nil
	case code == CodeInvalidDates:
		return Result{Outcome: OutcomeInvalidDates}, nil
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownCode, code)
	}
}

// FromError folds an engine error into a Result. Errors outside the protocol
// vocabulary are returned unchanged so callers still see persistence failures.
func FromError(id int64, err error) (Result, error) {
	if err == nil {
		return Success(id), nil
	}

	switch failure.GetKind(err) {
	case failure.KindRoomNotFound:
		return Result{Outcome: OutcomeRoomNotFound}, nil
	case failure.KindRoomUnavailable:
		return Result{Outcome: OutcomeRoomOccupied}, nil
	case failure.KindInvalidDateRange:
		return Result{Outcome: OutcomeInvalidDates}, nil
	default:
		return Result{}, err
	}
}

// Err is the inverse of FromError for non-success outcomes.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeRoomNotFound:
		return failure.RoomNotFound("room not found")
	case OutcomeRoomOccupied:
		return failure.RoomUnavailable("room is occupied")
	case OutcomeInvalidDates:
		return failure.InvalidDateRange("check_out must be after check_in")
	default:
		return nil
	}
}
