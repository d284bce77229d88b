package handler

import (
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nannytime/nannytime-api/internal/core/domain"
	"github.com/nannytime/nannytime-api/internal/core/ports"
)

// PayStubHandler handles the earnings view.
type PayStubHandler struct {
	service ports.PayrollService
}

func NewPayStubHandler(service ports.PayrollService) *PayStubHandler {
	return &PayStubHandler{service: service}
}

type payStubResponse struct {
	Period         string  `json:"period"`
	Hours          float64 `json:"hours"`
	Earnings       float64 `json:"earnings"`
	ShiftCount     int     `json:"shift_count"`
	HourlyRate     float64 `json:"hourly_rate"`
	Currency       string  `json:"currency"`
	TargetHours    float64 `json:"target_hours"`
	RemainingHours float64 `json:"remaining_hours"`
	Summary        string  `json:"summary"`
}

// Get handles GET /v1/paystub?period=week|month.
//
// @Summary      Get hours and earnings for the current week or month
// @Tags         paystub
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     string  false  "week (default) or month"
// @Success      200     {object}  payStubResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /v1/paystub [get]
func (h *PayStubHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	raw := c.QueryParam("period")
	if raw == "" {
		raw = string(domain.PeriodWeek)
	}
	period, err := domain.ParsePeriod(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "period must be week or month")
	}

	stub, err := h.service.GetPayStub(c.Request().Context(), userID, period, time.Now().UTC())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payStubResponse{
		Period:         string(stub.Period),
		Hours:          round2(stub.Hours),
		Earnings:       round2(stub.Earnings),
		ShiftCount:     stub.ShiftCount,
		HourlyRate:     stub.HourlyRate,
		Currency:       stub.Currency,
		TargetHours:    stub.TargetHours,
		RemainingHours: round2(stub.RemainingHours),
		Summary:        stub.Summary,
	})
}

// round2 applies display rounding; the service keeps full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
