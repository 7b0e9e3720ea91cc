// Package application provides the HTTP handler for submitting a board application.
package application

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"standards-board-backend/internal/controller"
	"standards-board-backend/internal/intake"
	"standards-board-backend/internal/utilities"
)

// ApplicationController handles application submission
type ApplicationController struct {
	Service *intake.Service
}

// NewApplicationController creates a new instance of ApplicationController backed by the intake service.
func NewApplicationController(service *intake.Service) *ApplicationController {
	return &ApplicationController{
		Service: service,
	}
}

// SubmitResponse is returned after a successful submission. EmailSent reports the
// confirmation email independently of the submission itself.
type SubmitResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"applicationId"`
	Message       string `json:"message"`
	EmailSent     bool   `json:"emailSent"`
}

// SubmitHandler stores the caller's application and sends the confirmation email.
// @Summary Submit board application
// @Description One application per account and per registration number
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param application body intake.SubmitInput true "Profile and selected positions"
// @Success 200 {object} SubmitResponse "Application stored"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields, failed validation or duplicate submission"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/submit [post]
func (ac *ApplicationController) SubmitHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var input intake.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{Error: "Entity too large"})
			return
		}
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := ac.Service.Submit(c.Request.Context(), user, input)
	if err != nil {
		controller.RespondError(c, err, "Failed to submit application")
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{
		Success:       true,
		ApplicationID: result.ApplicationID,
		Message:       "Application submitted successfully",
		EmailSent:     result.EmailSent,
	})
}
