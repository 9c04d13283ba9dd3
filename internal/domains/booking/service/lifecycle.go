package service

import (
	"context"
	"fmt"
	"hotelbook/internal/domains/booking/model"
	"hotelbook/internal/domains/booking/model/dto"
	customerDto "hotelbook/internal/domains/customer/model/dto"
	paymentDto "hotelbook/internal/domains/payment/model/dto"
	roomModel "hotelbook/internal/domains/room/model"
	"hotelbook/permissions"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	gModel "hotelbook/shared/model"
	"hotelbook/shared/money"
	"hotelbook/shared/statuscode"
	"hotelbook/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

// CreateBooking books a stay. With a room the booking is Confirmed against the locked room and
// priced at the class rate; without one it is a hotel-level Pending booking.
func (s *serviceImpl) CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	defer func(start time.Time) { s.observe(opCreateBooking, start, err) }(time.Now())

	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	if req.RoomID == nil && !req.PaymentAmount.IsPositive() {
		return res, failure.BadRequestFromString("payment_amount must be greater than 0 for a booking without a room") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	profile := customerDto.ResolveRequest{Name: req.Name, Email: req.Email, Mobile: req.Mobile}

	if restricted(ctx, permissions.CapBookingOperate) {
		// customers always book for themselves
		profile.Email = shared.CallerEmail(ctx)
		profile.AccountRef = user
	}

	hotel, err := s.hotels.Get(ctx, req.HotelID)
	if err != nil {
		log.Error().Err(err).Int64("hotel_id", req.HotelID).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == 0 {
		return res, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	now := timezone.Now()
	booking := model.Booking{
		HotelID:     req.HotelID,
		BookDate:    timezone.Today(),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		BookingType: bookingType(req.BookingType),
		Status:      model.StatusPending,
		Description: req.Description,
		Metadata:    gModel.NewMetadata(user, now),
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		customerID, err := s.customers.Resolve(ctx, profile)
		if err != nil {
			return err //nolint:wrapcheck
		}

		booking.CustomerID = customerID
		amount := req.PaymentAmount

		if req.RoomID != nil {
			room, err := s.lockRoom(ctx, *req.RoomID)
			if err != nil {
				return err
			}

			if room.HotelID != req.HotelID {
				return failure.RoomNotFound(fmt.Sprintf("room %d not found in hotel %d", room.ID, req.HotelID)) // nolint:wrapcheck
			}

			if err = s.ensureFree(ctx, room, checkIn, checkOut, 0); err != nil {
				return err
			}

			if room.NightlyRate.IsPositive() {
				amount = room.NightlyRate.Mul(timezone.Nights(checkIn, checkOut))
			}

			if !amount.IsPositive() {
				return failure.BadRequestFromString(fmt.Sprintf("room %s has no nightly rate, payment_amount is required", room.RoomNumber)) // nolint:wrapcheck
			}

			booking.RoomID = &room.ID
			booking.Status = model.StatusConfirmed
		}

		id, err := s.repo.Insert(ctx, booking)
		if err != nil {
			log.Error().Err(err).Msg("failed to insert booking")

			return failure.PersistenceFailure(fmt.Errorf("failed to insert booking: %w", err))
		}

		booking.ID = id

		return s.recordPayment(ctx, id, amount, req.PaymentMethod)
	})
	if err != nil {
		log.Error().Err(err).Int64("hotel_id", req.HotelID).Msg("failed to create booking")

		return res, err //nolint:wrapcheck
	}

	log.Info().Int64("booking_id", booking.ID).Str("status", string(booking.Status)).Msg("booking created")

	s.afterCommit(ctx, model.EventBookingCreated, booking)

	return dto.CreateBookingResponse{ID: booking.ID, Status: string(booking.Status)}, nil
}

// CheckIn is the legacy walk-in: it books and occupies a room in one step and answers with a
// status code rather than an error for the protocol outcomes.
func (s *serviceImpl) CheckIn(ctx context.Context, req dto.WalkInRequest) (res statuscode.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	defer func(start time.Time) {
		outcome := res.Outcome.String()
		if err != nil {
			outcome = string(failure.GetKind(err))
		}

		s.metrics.ObserveOperation(opCheckIn, outcome, time.Since(start))
	}(time.Now())

	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return statuscode.Result{Outcome: statuscode.OutcomeInvalidDates}, nil
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var booking model.Booking

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		found, err := s.rooms.FindByNumber(ctx, req.HotelID, req.RoomNumber)
		if err != nil {
			return fmt.Errorf("failed to find room: %w", err)
		}

		if found.ID == 0 {
			return failure.RoomNotFound(fmt.Sprintf("room %s not found", req.RoomNumber)) // nolint:wrapcheck
		}

		room, err := s.lockRoom(ctx, found.ID)
		if err != nil {
			return err
		}

		if room.Status != roomModel.StatusAvailable {
			return failure.RoomUnavailable(fmt.Sprintf("room %s is %s", room.RoomNumber, room.Status)) // nolint:wrapcheck
		}

		if err = s.ensureFree(ctx, room, checkIn, checkOut, 0); err != nil {
			return err
		}

		customerID, err := s.customers.CreateWalkIn(ctx, customerDto.WalkInRequest{Name: req.Name, Proof: req.Proof})
		if err != nil {
			return err //nolint:wrapcheck
		}

		booking = model.Booking{
			CustomerID:  customerID,
			HotelID:     room.HotelID,
			RoomID:      &room.ID,
			BookDate:    timezone.Today(),
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			BookingType: bookingType(req.BookingType),
			Status:      model.StatusCheckedIn,
			Metadata:    gModel.NewMetadata(user, timezone.Now()),
		}

		booking.ID, err = s.repo.Insert(ctx, booking)
		if err != nil {
			return failure.PersistenceFailure(fmt.Errorf("failed to insert booking: %w", err))
		}

		return s.setRoomStatus(ctx, room.ID, roomModel.StatusOccupied, user)
	})

	res, err = statuscode.FromError(booking.ID, err)
	if err != nil {
		log.Error().Err(err).Str("room_number", req.RoomNumber).Msg("failed to check in")

		return res, err //nolint:wrapcheck
	}

	if res.OK() {
		log.Info().Int64("booking_id", booking.ID).Str("room_number", req.RoomNumber).Msg("walk-in checked in")
		s.afterCommit(ctx, model.EventWalkInCheckedIn, booking)
	}

	return res, nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	defer func(start time.Time) { s.observe(opCheckOut, start, err) }(time.Now())

	return s.transition(ctx, id, model.StatusCheckedOut, model.EventBookingCheckedOut, func(ctx context.Context, booking *model.Booking, user string) error {
		if booking.RoomID == nil {
			return nil
		}

		if _, err := s.lockRoom(ctx, *booking.RoomID); err != nil {
			return err
		}

		return s.setRoomStatus(ctx, *booking.RoomID, roomModel.StatusAvailable, user)
	})
}

// Cancel drops a Pending or Confirmed booking. A hold placed by AssignRoom is released; payments
// are kept.
func (s *serviceImpl) Cancel(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	defer func(start time.Time) { s.observe(opCancel, start, err) }(time.Now())

	return s.transition(ctx, id, model.StatusCancelled, model.EventBookingCancelled, func(ctx context.Context, booking *model.Booking, user string) error {
		if booking.Status != model.StatusPending || booking.RoomID == nil {
			return nil
		}

		return s.releaseHold(ctx, *booking.RoomID, user)
	})
}

// AssignRoom places a provisional hold for a Pending booking: the room becomes Reserved.
func (s *serviceImpl) AssignRoom(ctx context.Context, id int64, req dto.AssignRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	defer func(start time.Time) { s.observe(opAssignRoom, start, err) }(time.Now())

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var booking model.Booking

	err = s.tx.WithinTx(ctx, func(ctx context.Context) (err error) {
		booking, err = s.lockBooking(ctx, id)
		if err != nil {
			return err
		}

		if booking.Status != model.StatusPending {
			return failure.InvalidTransition(fmt.Sprintf("cannot assign a room to a %s booking", booking.Status)) // nolint:wrapcheck
		}

		room, err := s.lockRoom(ctx, req.RoomID)
		if err != nil {
			return err
		}

		if room.HotelID != booking.HotelID {
			return failure.RoomNotFound(fmt.Sprintf("room %d not found in hotel %d", room.ID, booking.HotelID)) // nolint:wrapcheck
		}

		if booking.OnRoom(room.ID) && room.Status == roomModel.StatusReserved {
			return nil
		}

		if room.Status != roomModel.StatusAvailable {
			return failure.RoomUnavailable(fmt.Sprintf("room %s is %s", room.RoomNumber, room.Status)) // nolint:wrapcheck
		}

		if err = s.ensureFree(ctx, room, booking.CheckIn, booking.CheckOut, booking.ID); err != nil {
			return err
		}

		if booking.RoomID != nil {
			if err = s.releaseHold(ctx, *booking.RoomID, user); err != nil {
				return err
			}
		}

		if err = s.assign(ctx, &booking, room.ID, user); err != nil {
			return err
		}

		return s.setRoomStatus(ctx, room.ID, roomModel.StatusReserved, user)
	})
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to assign room")

		return err //nolint:wrapcheck
	}

	s.afterCommit(ctx, model.EventBookingAssigned, booking)

	return nil
}

// ConfirmBooking moves a Pending booking to Confirmed on its held room, or on req.RoomID. The hold
// is released: a confirmed stay blocks the room through its dates, not its status.
func (s *serviceImpl) ConfirmBooking(ctx context.Context, id int64, req dto.ConfirmRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	defer func(start time.Time) { s.observe(opConfirmBooking, start, err) }(time.Now())

	return s.transition(ctx, id, model.StatusConfirmed, model.EventBookingConfirmed, func(ctx context.Context, booking *model.Booking, user string) error {
		roomID := booking.RoomID
		if req.RoomID != nil {
			roomID = req.RoomID
		}

		if roomID == nil {
			return failure.BadRequestFromString("a room is required to confirm a booking") // nolint:wrapcheck
		}

		room, err := s.lockRoom(ctx, *roomID)
		if err != nil {
			return err
		}

		if room.HotelID != booking.HotelID {
			return failure.RoomNotFound(fmt.Sprintf("room %d not found in hotel %d", room.ID, booking.HotelID)) // nolint:wrapcheck
		}

		if err = s.ensureFree(ctx, room, booking.CheckIn, booking.CheckOut, booking.ID); err != nil {
			return err
		}

		if booking.RoomID != nil {
			if err = s.releaseHold(ctx, *booking.RoomID, user); err != nil {
				return err
			}
		}

		if booking.OnRoom(room.ID) {
			return nil
		}

		return s.assign(ctx, booking, room.ID, user)
	})
}

// CheckInBooking occupies the room of a Confirmed booking.
func (s *serviceImpl) CheckInBooking(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckInBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	defer func(start time.Time) { s.observe(opCheckInBooking, start, err) }(time.Now())

	return s.transition(ctx, id, model.StatusCheckedIn, model.EventBookingCheckedIn, func(ctx context.Context, booking *model.Booking, user string) error {
		if booking.RoomID == nil {
			return failure.BadRequestFromString("booking has no room") // nolint:wrapcheck
		}

		room, err := s.lockRoom(ctx, *booking.RoomID)
		if err != nil {
			return err
		}

		if room.Status == roomModel.StatusOccupied || room.Status == roomModel.StatusMaintenance {
			return failure.RoomUnavailable(fmt.Sprintf("room %s is %s", room.RoomNumber, room.Status)) // nolint:wrapcheck
		}

		return s.setRoomStatus(ctx, room.ID, roomModel.StatusOccupied, user)
	})
}

// transition locks the booking, checks the state machine and ownership, runs the room side
// effects and persists the new status, all in one unit of work.
func (s *serviceImpl) transition(
	ctx context.Context,
	id int64,
	next model.Status,
	event model.EventType,
	effects func(ctx context.Context, booking *model.Booking, user string) error,
) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var booking model.Booking

	err := s.tx.WithinTx(ctx, func(ctx context.Context) (err error) {
		booking, err = s.lockBooking(ctx, id)
		if err != nil {
			return err
		}

		if next == model.StatusCancelled && restricted(ctx, permissions.CapBookingCancelAny) && !ownedBy(ctx, booking.CustomerEmail) {
			return failure.Forbidden("you can only cancel your own bookings") // nolint:wrapcheck
		}

		if err = booking.Status.Transition(next); err != nil {
			return failure.InvalidTransition(err.Error()) // nolint:wrapcheck
		}

		if err = effects(ctx, &booking, user); err != nil {
			return err
		}

		if err = s.setBookingStatus(ctx, booking.ID, next, user); err != nil {
			return err
		}

		booking.Status = next

		return nil
	})
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Str("to", string(next)).Msg("failed to transition booking")

		return err //nolint:wrapcheck
	}

	log.Info().Int64("booking_id", id).Str("status", string(next)).Msg("booking transitioned")

	s.afterCommit(ctx, event, booking)

	return nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, id int64) (model.Booking, error) {
	booking, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) lockRoom(ctx context.Context, id int64) (roomModel.Room, error) {
	room, err := s.rooms.GetForUpdate(ctx, id)
	if err != nil {
		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == 0 {
		return room, failure.RoomNotFound(fmt.Sprintf("room %d not found", id)) // nolint:wrapcheck
	}

	return room, nil
}

// ensureFree rejects rooms under maintenance and rooms with an active stay intersecting
// [checkIn, checkOut). The room must already be locked.
func (s *serviceImpl) ensureFree(ctx context.Context, room roomModel.Room, checkIn, checkOut time.Time, excludeID int64) error {
	if !room.Status.Bookable() {
		return failure.RoomUnavailable(fmt.Sprintf("room %s is under maintenance", room.RoomNumber)) // nolint:wrapcheck
	}

	overlap, err := s.repo.HasOverlap(ctx, model.OverlapQuery{
		RoomID:    room.ID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		ExcludeID: excludeID,
	})
	if err != nil {
		return fmt.Errorf("failed to check overlapping bookings: %w", err)
	}

	if overlap {
		return failure.RoomUnavailable(fmt.Sprintf("room %s is booked for the requested dates", room.RoomNumber)) // nolint:wrapcheck
	}

	return nil
}

// releaseHold frees a Reserved room. Rooms in any other status are left alone.
func (s *serviceImpl) releaseHold(ctx context.Context, roomID int64, user string) error {
	room, err := s.lockRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if room.Status != roomModel.StatusReserved {
		return nil
	}

	return s.setRoomStatus(ctx, roomID, roomModel.StatusAvailable, user)
}

func (s *serviceImpl) assign(ctx context.Context, booking *model.Booking, roomID int64, user string) error {
	ok, err := s.repo.AssignRoom(ctx, booking.ID, roomID, user)
	if err != nil {
		return failure.PersistenceFailure(fmt.Errorf("failed to assign room: %w", err))
	}

	if !ok {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	booking.RoomID = &roomID

	return nil
}

func (s *serviceImpl) setBookingStatus(ctx context.Context, id int64, status model.Status, user string) error {
	ok, err := s.repo.UpdateStatus(ctx, id, status, user)
	if err != nil {
		return failure.PersistenceFailure(fmt.Errorf("failed to update booking status: %w", err))
	}

	if !ok {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) setRoomStatus(ctx context.Context, id int64, status roomModel.Status, user string) error {
	ok, err := s.rooms.UpdateStatus(ctx, id, status, user)
	if err != nil {
		return failure.PersistenceFailure(fmt.Errorf("failed to update room status: %w", err))
	}

	if !ok {
		return failure.RoomNotFound(fmt.Sprintf("room %d not found", id)) // nolint:wrapcheck
	}

	return nil
}

// recordPayment writes the payment linked to a new booking. Every booking carries one.
func (s *serviceImpl) recordPayment(ctx context.Context, bookingID int64, amount money.Amount, method string) error {
	if method == "" {
		method = s.cfg.App.Booking.DefaultPaymentMethod
	}

	_, err := s.ledger.RecordPayment(ctx, paymentDto.RecordPaymentRequest{
		BookingID:   bookingID,
		Amount:      amount,
		Method:      method,
		Description: fmt.Sprintf("payment for booking %d", bookingID),
	})
	if err != nil {
		if failure.GetKind(err) != "" {
			return err //nolint:wrapcheck
		}

		return failure.PersistenceFailure(err)
	}

	return nil
}

// parseStay reads two calendar dates and requires checkOut to fall after checkIn.
func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	start, err := timezone.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, failure.InvalidDateRange("check_in must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	end, err := timezone.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, failure.InvalidDateRange("check_out must be a date in YYYY-MM-DD format") // nolint:wrapcheck
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, failure.InvalidDateRange("check_out must be after check_in") // nolint:wrapcheck
	}

	return start, end, nil
}

func bookingType(value string) model.BookingType {
	if value == "" {
		return model.BookingTypeSingle
	}

	return model.BookingType(value)
}
