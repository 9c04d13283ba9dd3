package payment

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/payment/model"
	"hotelbook/internal/domains/payment/model/dto"
	"hotelbook/internal/domains/payment/service"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryBookingID = "booking_id"

type Handler struct {
	ledger service.Ledger
	otel   otel.Otel
}

func New(ledger service.Ledger, otel otel.Otel) Handler {
	return Handler{
		ledger: ledger,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/payments", handler.RecordPayment)
	router.Get("/payments", handler.GetPayments)
	router.Get("/reports/revenue", handler.GetRevenue)
	router.Get("/reports/revenue/hotels", handler.GetRevenueByHotel)
	router.Get("/reports/revenue/monthly", handler.GetRevenueByMonth)
}

// RecordPayment adds a payment to an existing booking.
// @Summary Record a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.RecordPaymentRequest true "Record Payment Request"
// @Success 201 {object} response.Data[int64] "Payment ID"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payments [post]
// @Security BearerAuth
func (handler *Handler) RecordPayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecordPayment")
	defer scope.End()

	req := dto.RecordPaymentRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.ledger.RecordPayment(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", req.BookingID).Msg("failed to record payment")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, id)
}

// @Summary Get payments of a booking
// @Tags Payment
// @Produce json
// @Param booking_id query int true "Booking ID"
// @Success 200 {object} response.Data[[]dto.PaymentResponse]
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	bookingID, err := shared.ParseID(request.URL.Query().Get(queryBookingID), "booking")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	payments, err := handler.ledger.ListPayments(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", bookingID).Msg("failed to get payments")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, payments)
}

// GetRevenue totals payments, optionally for one hotel and a [from, to) window on paid_on.
// @Summary Total revenue
// @Tags Report
// @Produce json
// @Param hotel_id query int false "Hotel ID"
// @Param from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param to query string false "Exclusive end date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.RevenueResponse]
// @Failure 400 {object} response.Error
// @Router /v1/reports/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	query, err := revenueQueryFromRequest(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	revenue, err := handler.ledger.AggregateRevenue(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to aggregate revenue")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, revenue)
}

// @Summary Revenue per hotel
// @Tags Report
// @Produce json
// @Success 200 {object} response.Data[[]dto.HotelRevenueResponse]
// @Router /v1/reports/revenue/hotels [get]
// @Security BearerAuth
func (handler *Handler) GetRevenueByHotel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenueByHotel")
	defer scope.End()

	revenues, err := handler.ledger.RevenueByHotel(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue by hotel")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, revenues)
}

// @Summary Revenue per month
// @Tags Report
// @Produce json
// @Param months query int false "Number of months, default 12"
// @Success 200 {object} response.Data[[]dto.MonthlyRevenueResponse]
// @Failure 400 {object} response.Error
// @Router /v1/reports/revenue/monthly [get]
// @Security BearerAuth
func (handler *Handler) GetRevenueByMonth(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenueByMonth")
	defer scope.End()

	months := 0

	if value := request.URL.Query().Get(constant.RequestParamMonths); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			err = failure.BadRequestFromString("months must be a number")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		months = parsed
	}

	revenues, err := handler.ledger.RevenueByMonth(ctx, months)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int("months", months).Msg("failed to get revenue by month")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, revenues)
}

func revenueQueryFromRequest(request *http.Request) (model.RevenueQuery, error) {
	values := request.URL.Query()
	query := model.RevenueQuery{}

	var err error

	if query.HotelID, err = shared.ParseOptionalID(values.Get(constant.RequestParamHotelID), "hotel"); err != nil {
		return query, err
	}

	if query.From, err = shared.ParseOptionalDate(values.Get(constant.RequestParamFrom), constant.RequestParamFrom); err != nil {
		return query, err
	}

	if query.To, err = shared.ParseOptionalDate(values.Get(constant.RequestParamTo), constant.RequestParamTo); err != nil {
		return query, err
	}

	return query, nil
}
