package hotel

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/hotel/model/dto"
	"hotelbook/internal/domains/hotel/service"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Hotel
	otel    otel.Otel
}

func New(service service.Hotel, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/hotels", handler.CreateHotel)
	router.Get("/hotels", handler.GetHotels)
	router.Get("/hotels/{id}", handler.GetHotelByID)
	router.Patch("/hotels/{id}", handler.UpdateHotel)
	router.Post("/hotels/{id}/classes", handler.CreateRoomClass)
	router.Get("/hotels/{id}/classes", handler.GetRoomClasses)
}

// CreateHotel registers a hotel.
// @Summary Create a new hotel
// @Tags Hotel
// @Accept json
// @Produce json
// @Param request body dto.CreateHotelRequest true "Create Hotel Request"
// @Success 201 {object} response.Data[int64] "Hotel ID"
// @Failure 400 {object} response.Error
// @Router /v1/hotels [post]
// @Security BearerAuth
func (handler *Handler) CreateHotel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHotel")
	defer scope.End()

	req := dto.CreateHotelRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.CreateHotel(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hotel")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, id)
}

// @Summary Get all hotels
// @Tags Hotel
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetHotelsResponse]
// @Router /v1/hotels [get]
// @Security BearerAuth
func (handler *Handler) GetHotels(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotels")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	hotels, err := handler.service.ListHotels(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotels")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, hotels)
}

// @Summary Get a hotel by ID
// @Tags Hotel
// @Produce json
// @Param id path int true "Hotel ID"
// @Success 200 {object} response.Data[dto.HotelResponse]
// @Failure 404 {object} response.Error
// @Router /v1/hotels/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetHotelByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "hotel")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	hotel, err := handler.service.GetHotel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("hotel_id", id).Msg("failed to get hotel by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, hotel)
}

// UpdateHotel edits the hotel's name, type or description.
// @Summary Update a hotel
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path int true "Hotel ID"
// @Param request body dto.UpdateHotelRequest true "Fields to change"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/hotels/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHotel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHotel")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "hotel")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateHotelRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err = handler.service.UpdateHotel(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("hotel_id", id).Msg("failed to update hotel")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Hotel updated successfully")
}

// @Summary Create a room class
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path int true "Hotel ID"
// @Param request body dto.CreateRoomClassRequest true "Create Room Class Request"
// @Success 201 {object} response.Data[int64] "Room class ID"
// @Failure 404 {object} response.Error
// @Router /v1/hotels/{id}/classes [post]
// @Security BearerAuth
func (handler *Handler) CreateRoomClass(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoomClass")
	defer scope.End()

	hotelID, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "hotel")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.CreateRoomClassRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.CreateRoomClass(ctx, hotelID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("hotel_id", hotelID).Msg("failed to create room class")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, id)
}

// @Summary Get room classes of a hotel
// @Tags Hotel
// @Produce json
// @Param id path int true "Hotel ID"
// @Success 200 {object} response.Data[[]dto.RoomClassResponse]
// @Router /v1/hotels/{id}/classes [get]
// @Security BearerAuth
func (handler *Handler) GetRoomClasses(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomClasses")
	defer scope.End()

	hotelID, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID), "hotel")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	classes, err := handler.service.ListRoomClasses(ctx, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("hotel_id", hotelID).Msg("failed to get room classes")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, classes)
}
