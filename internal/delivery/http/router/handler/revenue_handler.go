package handler

import (
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RevenueHandlerParams holds dependencies for RevenueHandler, injected by Fx.
type RevenueHandlerParams struct {
	fx.In

	RevenueUC usecase.RevenueUsecase
	Logger    *slog.Logger
}

// RevenueHandler holds dependencies for revenue report handlers
type RevenueHandler struct {
	revenueUC usecase.RevenueUsecase
	logger    *slog.Logger
}

// NewRevenueHandler is the constructor for RevenueHandler
func NewRevenueHandler(params RevenueHandlerParams) *RevenueHandler {
	return &RevenueHandler{
		revenueUC: params.RevenueUC,
		logger:    params.Logger,
	}
}

// GetReport handles retrieving the report bucket containing a given instant.
// The "at" query parameter is RFC 3339 and defaults to now.
func (h *RevenueHandler) GetReport(c echo.Context) error {
	reportType := entity.ReportType(c.Param("reportType"))

	at := time.Now().UTC()
	if raw := c.QueryParam("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid at timestamp")
		}
		at = parsed
	}

	report, err := h.revenueUC.GetReport(c.Request().Context(), reportType, at)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "Revenue report retrieved successfully")
}

// ListReports handles retrieving report buckets within a date range.
// The "from" and "to" query parameters are RFC 3339 and both required.
func (h *RevenueHandler) ListReports(c echo.Context) error {
	reportType := entity.ReportType(c.Param("reportType"))

	from, err := time.Parse(time.RFC3339, c.QueryParam("from"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid from timestamp")
	}

	to, err := time.Parse(time.RFC3339, c.QueryParam("to"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid to timestamp")
	}

	reports, err := h.revenueUC.ListReports(c.Request().Context(), reportType, from, to)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, reports, "Revenue reports retrieved successfully")
}
