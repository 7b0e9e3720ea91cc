// Package admin provides the HTTP handlers of the review dashboard.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"standards-board-backend/internal/controller"
	"standards-board-backend/internal/intake"
	"standards-board-backend/internal/utilities"
)

// AdminController handles the admin review endpoints
type AdminController struct {
	Service *intake.Service
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(service *intake.Service) *AdminController {
	return &AdminController{
		Service: service,
	}
}

// ListApplications returns a page of applications with per-status counts.
// @Summary List applications
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page start" default(0)
// @Param position query string false "Only applications for this position id"
// @Param status query string false "pending, reviewed, shortlisted, rejected or all" default(all)
// @Success 200 {object} intake.ListResult
// @Failure 400 {object} utilities.ErrorResponse "Invalid query parameter"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applications [get]
func (ac *AdminController) ListApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	q, err := intake.ParseListQuery(c.Query("limit"), c.Query("offset"), c.Query("position"), c.Query("status"))
	if err != nil {
		controller.RespondError(c, err, "Failed to fetch applications")
		return
	}

	result, err := ac.Service.ListApplications(c.Request.Context(), user, q)
	if err != nil {
		controller.RespondError(c, err, "Failed to fetch applications")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetApplication returns one application with its review history.
// @Summary Get application
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application id (normalized registration number)"
// @Success 200 {object} intake.ApplicationDetail
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applications/{id} [get]
func (ac *AdminController) GetApplication(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	detail, err := ac.Service.GetApplication(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		controller.RespondError(c, err, "Failed to fetch application")
		return
	}

	c.JSON(http.StatusOK, gin.H{"application": detail})
}

// UpdateApplication changes the status and/or admin notes of an application.
// An omitted field is left unchanged and an empty adminNotes clears the notes.
// @Summary Update application status or notes
// @Description Only admin can access this endpoint
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application id (normalized registration number)"
// @Param update body intake.StatusUpdate true "Fields to change"
// @Success 200 {object} utilities.SuccessResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid status or body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applications/{id} [patch]
func (ac *AdminController) UpdateApplication(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var upd intake.StatusUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if _, err := ac.Service.UpdateStatus(c.Request.Context(), user, c.Param("id"), upd); err != nil {
		controller.RespondError(c, err, "Failed to update application")
		return
	}

	c.JSON(http.StatusOK, utilities.SuccessResponse{
		Success: true,
		Message: "Application updated successfully",
	})
}
