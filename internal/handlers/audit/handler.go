package audit

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/audit/model"
	"hotelbook/internal/domains/audit/service"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryEventType = "event_type"
	queryBookingID = "booking_id"
)

type Handler struct {
	service service.Audit
	otel    otel.Otel
}

func New(service service.Audit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/audit-logs", handler.GetAuditLogs)
}

// GetAuditLogs lists booking lifecycle events recorded by the auditor.
// @Summary Get audit logs
// @Tags Audit
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param event_type query string false "Filter by event type"
// @Param booking_id query int false "Filter by booking ID"
// @Success 200 {object} response.Data[dto.GetAuditLogsResponse]
// @Router /v1/audit-logs [get]
// @Security BearerAuth
func (handler *Handler) GetAuditLogs(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAuditLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := model.Filter{}

	if eventType := request.URL.Query().Get(queryEventType); eventType != "" {
		filter.EventType = &eventType
	}

	bookingID, err := shared.ParseOptionalID(request.URL.Query().Get(queryBookingID), "booking")
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	filter.BookingID = bookingID

	logs, err := handler.service.List(ctx, filter, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get audit logs")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, logs)
}
