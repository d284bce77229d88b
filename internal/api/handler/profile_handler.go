package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nannytime/nannytime-api/internal/core/domain"
	"github.com/nannytime/nannytime-api/internal/core/ports"
)

// ProfileHandler handles HTTP requests for the caregiver profile.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	Name       string  `json:"name"        validate:"required"`
	HourlyRate float64 `json:"hourly_rate" validate:"gte=0"`
	Currency   string  `json:"currency"    validate:"required,oneof=USD EUR GBP CAD AUD"`
}

type profileResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourly_rate"`
	Currency   string  `json:"currency"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		ID:         p.ID,
		Name:       p.Name,
		HourlyRate: p.HourlyRate,
		Currency:   p.Currency,
	}
}

// Get handles GET /v1/profile. A user without a profile gets the default
// one, created on the spot.
//
// @Summary      Get the profile (created with defaults when absent)
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Update handles PUT /v1/profile. It is a full replace, not a patch.
//
// @Summary      Update the profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Replacement profile"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.Update(c.Request().Context(), userID, domain.Profile{
		Name:       req.Name,
		HourlyRate: req.HourlyRate,
		Currency:   req.Currency,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}
