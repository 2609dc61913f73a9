package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StatusCode maps an application error to its HTTP status.
func StatusCode(err error) int {
	var ve *ValidationError
	var gs *GateSkip
	var he *echo.HTTPError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &gs):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &he):
		return he.Code
	default:
		return http.StatusInternalServerError
	}
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message, "title": "validation error"})
			return
		}

		var gs *GateSkip
		if errors.As(err, &gs) {
			_ = c.JSON(http.StatusTooManyRequests, map[string]string{"status": "skipped", "message": gs.Message})
			return
		}

		if errors.Is(err, ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		var pe *ProviderError
		if errors.As(err, &pe) {
			slog.Error("Provider error", "provider", pe.Provider, "error", pe.Err)
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch articles from the provider."})
			return
		}

		var se *StorageError
		if errors.As(err, &se) {
			slog.Error("Storage error", "op", se.Op, "error", se.Err)
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "An error occurred while accessing storage."})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
