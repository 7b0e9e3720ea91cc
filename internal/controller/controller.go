// Package controller holds what the HTTP handler packages share: mapping workflow errors to responses.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"standards-board-backend/internal/intake"
	"standards-board-backend/internal/utilities"
)

// StatusFor maps a workflow error to its HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, intake.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, intake.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, intake.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, intake.ErrInvalidInput), intake.IsConflict(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an ErrorResponse. Internal errors are logged and
// answered with fallback so no store or transport detail reaches the client.
func RespondError(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)

	if status == http.StatusInternalServerError {
		slog.Error(fallback,
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		c.JSON(status, utilities.ErrorResponse{Error: fallback})
		return
	}

	var verr *intake.ValidationError
	if errors.As(err, &verr) {
		c.JSON(status, utilities.ErrorResponse{Error: verr.Message, Fields: verr.Fields})
		return
	}

	msg := err.Error()
	switch {
	case errors.Is(err, intake.ErrForbidden):
		msg = "User doesn't have permission to access"
	case errors.Is(err, intake.ErrUnauthenticated):
		msg = "Unauthorized"
	case errors.Is(err, intake.ErrNotFound):
		msg = "Application not found"
	case errors.Is(err, intake.ErrInvalidStatus):
		msg = "Invalid status"
	}
	c.JSON(status, utilities.ErrorResponse{Error: msg})
}
