package room

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/room/model"
	"hotelbook/internal/domains/room/model/dto"
	"hotelbook/internal/domains/room/service"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/timezone"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/hotels/{id}/rooms", handler.CreateRoom)
	router.Get("/hotels/{id}/rooms", handler.GetRooms)
	router.Get("/hotels/{id}/rooms/available", handler.GetAvailableRooms)
	router.Get("/rooms/occupancy", handler.GetOccupancy)
	router.Get("/rooms/{id}", handler.GetRoomByID)
	router.Patch("/rooms/{id}/status", handler.UpdateStatus)
}

// CreateRoom adds a room to a hotel.
// @Summary Create a new room
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "Hotel ID"
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[int64] "Room ID"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Room number already used in this hotel"
// @Router /v1/hotels/{id}/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	hotelID, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "hotel")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreateRoomRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.CreateRoom(ctx, hotelID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("hotel_id", hotelID).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, id)
}

// GetRooms lists the rooms of a hotel.
// @Summary Get rooms of a hotel
// @Tags Room
// @Produce json
// @Param id path int true "Hotel ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetRoomsResponse]
// @Router /v1/hotels/{id}/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	hotelID, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "hotel")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	rooms, err := handler.service.ListRooms(ctx, hotelID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("hotel_id", hotelID).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, rooms)
}

// GetAvailableRooms lists rooms free for the whole stay.
// @Summary Get available rooms
// @Tags Room
// @Produce json
// @Param id path int true "Hotel ID"
// @Param class_id query int false "Room class ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD), exclusive"
// @Success 200 {object} response.Data[[]dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Router /v1/hotels/{id}/rooms/available [get]
// @Security BearerAuth
func (handler *Handler) GetAvailableRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	query, err := availabilityFromRequest(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	rooms, err := handler.service.ListAvailableRooms(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("hotel_id", query.HotelID).Msg("failed to get available rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "room")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	room, err := handler.service.GetRoom(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", id).Msg("failed to get room by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, room)
}

// UpdateStatus overrides the room status.
// @Summary Update room status
// @Tags Room
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param request body dto.UpdateRoomStatusRequest true "New status"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomStatus")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "room")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateRoomStatusRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err = handler.service.UpdateStatus(ctx, id, model.Status(req.Status)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", id).Msg("failed to update room status")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Room status updated by user " + user)

	response.WithMessage(writer, http.StatusOK, "Room status updated successfully")
}

// GetOccupancy reports occupied rooms over all rooms, optionally for one hotel.
// @Summary Occupancy report
// @Tags Room
// @Produce json
// @Param hotel_id query int false "Hotel ID"
// @Success 200 {object} response.Data[dto.OccupancyResponse]
// @Router /v1/rooms/occupancy [get]
// @Security BearerAuth
func (handler *Handler) GetOccupancy(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOccupancy")
	defer scope.End()

	hotelID, err := shared.ParseOptionalID(request.URL.Query().Get(constant.RequestParamHotelID), "hotel")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	occupancy, err := handler.service.Occupancy(ctx, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get occupancy")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, occupancy)
}

func availabilityFromRequest(request *http.Request) (model.AvailabilityQuery, error) {
	query := model.AvailabilityQuery{}

	hotelID, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "hotel")
	if err != nil {
		return query, err
	}

	query.HotelID = hotelID

	values := request.URL.Query()

	if query.ClassID, err = shared.ParseOptionalID(values.Get(constant.RequestParamClassID), "class"); err != nil {
		return query, err
	}

	checkIn, err := timezone.ParseDate(values.Get(constant.RequestParamCheckIn))
	if err != nil {
		return query, failure.BadRequestFromString("check_in must be a date in YYYY-MM-DD format")
	}

	checkOut, err := timezone.ParseDate(values.Get(constant.RequestParamCheckOut))
	if err != nil {
		return query, failure.BadRequestFromString("check_out must be a date in YYYY-MM-DD format")
	}

	query.CheckIn = checkIn
	query.CheckOut = checkOut

	return query, nil
}
