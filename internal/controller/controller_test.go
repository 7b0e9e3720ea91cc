package controller

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standards-board-backend/internal/intake"
	"standards-board-backend/internal/utilities"
)

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{intake.ErrUnauthenticated, http.StatusUnauthorized},
		{intake.ErrForbidden, http.StatusForbidden},
		{intake.ErrNotFound, http.StatusNotFound},
		{intake.ErrInvalidStatus, http.StatusBadRequest},
		{&intake.ValidationError{Message: "bad"}, http.StatusBadRequest},
		{intake.ErrDuplicateRegistration, http.StatusBadRequest},
		{intake.ErrDuplicateSubmission, http.StatusBadRequest},
		{intake.ErrAlreadySent, http.StatusBadRequest},
		{intake.ErrRetryLimitExceeded, http.StatusBadRequest},
		{intake.ErrRetryInProgress, http.StatusBadRequest},
		{fmt.Errorf("%w: smtp down", intake.ErrEmailDelivery), http.StatusInternalServerError},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.status, StatusFor(tc.err))
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	respond := func(err error) (int, map[string]interface{}) {
		rec, resp, rerr := utilities.SimulateAPICall(func(c *gin.Context) {
			RespondError(c, err, "Failed to do the thing")
		}, "/", http.MethodGet, nil)
		require.NoError(t, rerr)
		return rec.Code, resp
	}

	code, resp := respond(errors.New("pq: relation does not exist"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to do the thing", resp["error"])

	code, resp = respond(&intake.ValidationError{
		Message: "Validation failed",
		Fields:  map[string]string{"email": "Please enter a valid email address"},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", resp["error"])
	assert.Equal(t, map[string]interface{}{"email": "Please enter a valid email address"}, resp["fields"])

	code, resp = respond(intake.ErrDuplicateRegistration)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, intake.ErrDuplicateRegistration.Error(), resp["error"])
	assert.NotContains(t, resp, "fields")

	code, resp = respond(intake.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Application not found", resp["error"])
}
