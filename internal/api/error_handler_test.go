package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nannytime/nannytime-api/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized, "not authenticated"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"unknown user looks like bad password", domain.ErrUserNotFound, http.StatusUnauthorized, "invalid credentials"},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"missing shift", domain.ErrShiftNotFound, http.StatusNotFound, "shift not found"},
		{"missing profile", domain.ErrProfileNotFound, http.StatusNotFound, "profile not found"},
		{"second open shift", domain.ErrShiftAlreadyActive, http.StatusUnprocessableEntity, domain.ErrShiftAlreadyActive.Error()},
		{"double clock-out", domain.ErrShiftAlreadyClosed, http.StatusUnprocessableEntity, domain.ErrShiftAlreadyClosed.Error()},
		{"end before start", domain.ErrInvalidTimeRange, http.StatusUnprocessableEntity, domain.ErrInvalidTimeRange.Error()},
		{"bad currency", domain.ErrInvalidCurrency, http.StatusUnprocessableEntity, domain.ErrInvalidCurrency.Error()},
		{"negative rate", domain.ErrNegativeRate, http.StatusUnprocessableEntity, domain.ErrNegativeRate.Error()},
		{"bad period", domain.ErrInvalidPeriod, http.StatusBadRequest, domain.ErrInvalidPeriod.Error()},
	}

	handler := NewHTTPErrorHandler(zerolog.New(io.Discard))
	e := echo.New()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["error"] != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, resp["error"])
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.New(io.Discard))
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/v1/shifts/clock-in", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.Join(errors.New("refresh failed"), domain.ErrShiftAlreadyActive), c)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoHTTPErrorPassesThrough(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.New(io.Discard))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/shifts?range=year", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(echo.NewHTTPError(http.StatusBadRequest, "range must be week, month, or all"), c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "range must be week, month, or all" {
		t.Fatalf("unexpected message: %q", resp["error"])
	}
}

func TestHTTPErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.New(io.Discard))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(errors.New("mongo: connection reset"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "internal server error" {
		t.Fatalf("internal details leaked: %q", resp["error"])
	}
}
