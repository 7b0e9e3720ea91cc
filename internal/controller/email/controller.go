// Package email provides the HTTP handlers that send and re-send confirmation emails.
package email

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"standards-board-backend/internal/controller"
	"standards-board-backend/internal/intake"
	"standards-board-backend/internal/mailer"
	"standards-board-backend/internal/utilities"
)

// EmailController handles confirmation email endpoints
type EmailController struct {
	Service *intake.Service
	Mailer  intake.ConfirmationSender
}

// NewEmailController creates a new instance of EmailController.
// sender is used by the direct send endpoint, which bypasses the workflow.
func NewEmailController(service *intake.Service, sender intake.ConfirmationSender) *EmailController {
	return &EmailController{
		Service: service,
		Mailer:  sender,
	}
}

// ConfirmationRequest is the body of a direct confirmation send
type ConfirmationRequest struct {
	To            string     `json:"to"`
	Name          string     `json:"name"`
	Positions     []string   `json:"positions"`
	ApplicationID string     `json:"applicationId"`
	SubmittedAt   *time.Time `json:"submittedAt"`
}

type retryRequest struct {
	ApplicationID string `json:"applicationId"`
}

// ConfirmationHandler sends one confirmation email without touching any application record.
// @Summary Send confirmation email
// @Description Internal callers only. The internal API key is passed as Bearer token
// @Tags Email
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert the internal API key" default(Bearer <internal key>)
// @Param email body ConfirmationRequest true "Recipient and application summary"
// @Success 200 {object} mailer.Result
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields"
// @Failure 401 {object} utilities.ErrorResponse "Invalid internal key"
// @Failure 500 {object} mailer.Result "Email transport failed"
// @Router /email/confirmation [post]
func (ec *EmailController) ConfirmationHandler(c *gin.Context) {
	var req ConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.To) == "" {
		fields["to"] = "Recipient is required"
	}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "Name is required"
	}
	if len(req.Positions) == 0 {
		fields["positions"] = "At least one position is required"
	}
	if strings.TrimSpace(req.ApplicationID) == "" {
		fields["applicationId"] = "Application ID is required"
	}
	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Missing required fields", Fields: fields})
		return
	}

	submittedAt := time.Now()
	if req.SubmittedAt != nil {
		submittedAt = *req.SubmittedAt
	}

	res := ec.Mailer.SendConfirmation(c.Request.Context(), mailer.ConfirmationParams{
		To:            strings.TrimSpace(req.To),
		Name:          strings.TrimSpace(req.Name),
		Positions:     req.Positions,
		ApplicationID: strings.TrimSpace(req.ApplicationID),
		SubmittedAt:   submittedAt,
	})
	if !res.Success {
		slog.Warn("direct confirmation email failed", slog.String("application_id", req.ApplicationID), slog.String("error", res.Error))
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RetryHandler re-sends the confirmation email of the caller's own application.
// @Summary Retry confirmation email
// @Description Only the owner of the application may retry, up to the attempt ceiling
// @Tags Email
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param body body retryRequest true "Application to re-send for"
// @Success 200 {object} utilities.SuccessResponse
// @Failure 400 {object} utilities.ErrorResponse "Missing id, already sent or limit reached"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Email transport or database failure"
// @Router /email/retry [post]
func (ec *EmailController) RetryHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req retryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if _, err := ec.Service.RetryEmail(c.Request.Context(), user, req.ApplicationID); err != nil {
		if errors.Is(err, intake.ErrEmailDelivery) {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to send email"})
			return
		}
		controller.RespondError(c, err, "Failed to retry email")
		return
	}

	c.JSON(http.StatusOK, utilities.SuccessResponse{
		Success: true,
		Message: "Confirmation email sent successfully",
	})
}
