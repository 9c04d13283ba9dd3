package booking

import (
	"context"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/booking/model"
	"hotelbook/internal/domains/booking/model/dto"
	"hotelbook/internal/domains/booking/service"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryCustomerID = "customer_id"
	queryRoomID     = "room_id"
	queryStatus     = "status"
)

type Handler struct {
	engine service.Engine
	otel   otel.Otel
}

func New(engine service.Engine, otel otel.Otel) Handler {
	return Handler{
		engine: engine,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/bookings", handler.CreateBooking)
	router.Get("/bookings", handler.GetBookings)
	router.Get("/bookings/mybookings", handler.GetMyBookings)
	router.Get("/bookings/{id}", handler.GetBookingByID)
	router.Post("/bookings/{id}/assign", handler.AssignRoom)
	router.Post("/bookings/{id}/confirm", handler.ConfirmBooking)
	router.Post("/bookings/{id}/check-in", handler.CheckInBooking)
	router.Post("/bookings/{id}/check-out", handler.CheckOut)
	router.Post("/bookings/{id}/cancel", handler.Cancel)
	router.Post("/check-ins", handler.WalkIn)
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Book a room (Confirmed) or a hotel without a room (Pending) and record its payment.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Room unavailable"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.engine.CreateBooking(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve bookings filtered by customer, hotel, room and status.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param customer_id query int false "Filter by customer ID"
// @Param hotel_id query int false "Filter by hotel ID"
// @Param room_id query int false "Filter by room ID"
// @Param status query string false "Filter by status (pending, confirmed, checked_in, checked_out, cancelled)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter, err := filterFromRequest(request)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	bookings, err := handler.engine.ListBookings(ctx, filter, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetMyBookings retrieves the bookings of the authenticated caller.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	if email == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.engine.MyBookings(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("User bookings retrieved successfully for " + email)

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "booking")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	booking, err := handler.engine.GetBooking(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// AssignRoom places a provisional hold for a pending booking.
// @Summary Assign a room to a pending booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.AssignRoomRequest true "Room to hold"
// @Success 200 {object} response.Message
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/assign [post]
// @Security BearerAuth
func (handler *Handler) AssignRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignRoom")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "booking")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.AssignRoomRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err = handler.engine.AssignRoom(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to assign room")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Room assigned successfully")
}

// ConfirmBooking moves a pending booking to confirmed. The body is optional.
// @Summary Confirm a pending booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.ConfirmRequest false "Room to confirm on"
// @Success 200 {object} response.Message
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "booking")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.ConfirmRequest{}
	if request.ContentLength != 0 {
		if err = validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	}

	if err = handler.engine.ConfirmBooking(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to confirm booking")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking confirmed successfully")
}

// CheckInBooking checks in the guest of a confirmed booking.
// @Summary Check in a confirmed booking
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/check-in [post]
// @Security BearerAuth
func (handler *Handler) CheckInBooking(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "CheckInBooking", handler.engine.CheckInBooking, "Booking checked in successfully")
}

// CheckOut closes a stay and frees the room.
// @Summary Check out a booking
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/check-out [post]
// @Security BearerAuth
func (handler *Handler) CheckOut(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "CheckOut", handler.engine.CheckOut, "Booking checked out successfully")
}

// Cancel cancels a pending or confirmed booking.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) Cancel(writer http.ResponseWriter, request *http.Request) {
	handler.transition(writer, request, "Cancel", handler.engine.Cancel, "Booking cancelled successfully")
}

// WalkIn is the legacy check-in. Every protocol outcome is answered with 200 and
// {"code": n}; only errors outside the protocol use the error envelope.
// @Summary Walk-in check-in
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.WalkInRequest true "Walk-in guest and stay"
// @Success 200 {object} dto.CodeResponse "booking id, or -1 room not found, -2 room occupied, -3 invalid dates"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/check-ins [post]
// @Security BearerAuth
func (handler *Handler) WalkIn(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".WalkIn")
	defer scope.End()

	req := dto.WalkInRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	result, err := handler.engine.CheckIn(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in walk-in guest")

		response.WithError(writer, err)

		return
	}

	if !result.OK() {
		scope.AddEvent("Walk-in rejected: " + result.Outcome.String())
		log.Warn().Err(result.Err()).Str("room_number", req.RoomNumber).Int64("code", result.Code()).Msg("walk-in rejected")
	}

	response.WithPayload(writer, http.StatusOK, dto.CodeResponse{Code: result.Code()})
}

func (handler *Handler) transition(
	writer http.ResponseWriter,
	request *http.Request,
	operation string,
	apply func(ctx context.Context, id int64) error,
	message string,
) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+operation)
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "booking")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err = apply(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", id).Str("operation", operation).Msg("failed to update booking")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, message)
}

func filterFromRequest(request *http.Request) (model.Filter, error) {
	query := request.URL.Query()
	filter := model.Filter{}

	var err error

	if filter.CustomerID, err = shared.ParseOptionalID(query.Get(queryCustomerID), "customer"); err != nil {
		return filter, err
	}

	if filter.HotelID, err = shared.ParseOptionalID(query.Get(constant.RequestParamHotelID), "hotel"); err != nil {
		return filter, err
	}

	if filter.RoomID, err = shared.ParseOptionalID(query.Get(queryRoomID), "room"); err != nil {
		return filter, err
	}

	if value := query.Get(queryStatus); value != "" {
		status := model.Status(value)
		if !status.Valid() {
			return filter, failure.BadRequestFromString("unknown booking status " + value)
		}

		filter.Status = &status
	}

	return filter, nil
}
