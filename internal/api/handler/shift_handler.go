package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nannytime/nannytime-api/internal/core/ports"
)

// ShiftHandler handles HTTP requests for the shift lifecycle.
type ShiftHandler struct {
	service ports.ShiftService
}

func NewShiftHandler(service ports.ShiftService) *ShiftHandler {
	return &ShiftHandler{service: service}
}

// ClockIn handles POST /v1/shifts/clock-in.
//
// @Summary      Clock in (open a new shift now)
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  shiftStateResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/shifts/clock-in [post]
func (h *ShiftHandler) ClockIn(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	state, err := h.service.ClockIn(c.Request().Context(), userID, time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toShiftStateResponse(state))
}

// ClockOut handles POST /v1/shifts/:id/clock-out.
//
// @Summary      Clock out of an open shift
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shift ID"
// @Success      200  {object}  shiftStateResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/shifts/{id}/clock-out [post]
func (h *ShiftHandler) ClockOut(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	state, err := h.service.ClockOut(c.Request().Context(), userID, c.Param("id"), time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShiftStateResponse(state))
}

// Create handles POST /v1/shifts: manual add of a zero-duration shift
// meant to be edited right away.
//
// @Summary      Manually add a shift
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  shiftStateResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/shifts [post]
func (h *ShiftHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	state, err := h.service.ManualAdd(c.Request().Context(), userID, time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toShiftStateResponse(state))
}

// Update handles PUT /v1/shifts/:id with a full replace of start/end/notes.
//
// @Summary      Edit a shift
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Shift ID"
// @Param        body  body      editShiftRequest  true  "Replacement fields"
// @Success      200   {object}  shiftStateResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/shifts/{id} [put]
func (h *ShiftHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req editShiftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.service.EditShift(c.Request().Context(), userID, ports.EditShiftInput{
		ShiftID:   c.Param("id"),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShiftStateResponse(state))
}

// Delete handles DELETE /v1/shifts/:id. The confirmation prompt lives in the
// client; this endpoint deletes unconditionally.
//
// @Summary      Delete a shift
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shift ID"
// @Success      200  {object}  shiftStateResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/shifts/{id} [delete]
func (h *ShiftHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	state, err := h.service.DeleteShift(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toShiftStateResponse(state))
}

// List handles GET /v1/shifts?range=week|month|all.
//
// @Summary      List shift history, newest first
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Param        range  query     string  false  "week, month, or all (default all)"
// @Success      200    {object}  listShiftsResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/shifts [get]
func (h *ShiftHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	rng := ports.ListRange(c.QueryParam("range"))
	switch rng {
	case ports.RangeWeek, ports.RangeMonth, ports.RangeAll:
	case "":
		rng = ports.RangeAll
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "range must be week, month, or all")
	}

	shifts, err := h.service.ListShifts(c.Request().Context(), userID, rng, time.Now().UTC())
	if err != nil {
		return err
	}

	resp := listShiftsResponse{Data: make([]shiftResponse, 0, len(shifts))}
	for i := range shifts {
		resp.Data = append(resp.Data, *toShiftResponse(&shifts[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Active handles GET /v1/shifts/active: the open shift with elapsed
// minutes computed server-side, polled by clients for the ticking display.
//
// @Summary      Get the active shift, if any
// @Tags         shifts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  activeShiftResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/shifts/active [get]
func (h *ShiftHandler) Active(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	view, err := h.service.ActiveShift(c.Request().Context(), userID, time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activeShiftResponse{
		Shift:          toShiftResponse(view.Shift),
		ElapsedMinutes: view.ElapsedMinutes,
	})
}
