package email

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standards-board-backend/internal/auth"
	"standards-board-backend/internal/database"
	"standards-board-backend/internal/intake"
	"standards-board-backend/internal/middleware"
	"standards-board-backend/internal/model"
	"standards-board-backend/internal/testutil"
)

const internalKey = "internal-test-key"

var testTokens = auth.NewJWTManager("email-secret", "standards-board", time.Hour)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fixture struct {
	router  *gin.Engine
	db      *database.DBinstanceStruct
	sender  *testutil.TestSender
	service *intake.Service
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := database.NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sender := &testutil.TestSender{}
	dispatcher := testutil.NewTestDispatcher(sender)
	svc := intake.NewService(db, dispatcher, testutil.TestCatalog(t), intake.DefaultRetryPolicy, nil)
	ec := NewEmailController(svc, dispatcher)

	r := gin.New()
	r.POST("/email/confirmation", middleware.InternalKey(internalKey), ec.ConfirmationHandler)
	r.POST("/email/retry", middleware.RequireAuth(db, testTokens), ec.RetryHandler)
	return fixture{router: r, db: db, sender: sender, service: svc}
}

// submitWithFailingEmail stores an application for TestApplicant1 whose confirmation failed
func submitWithFailingEmail(t *testing.T, f fixture) string {
	t.Helper()
	f.sender.Fail.Store(true)
	defer f.sender.Fail.Store(false)

	var in intake.SubmitInput
	in.Profile = &model.ProfileData{
		FullName:  "Asha Raman",
		RegNumber: "21bce1234",
		Email:     "asha@example.com",
		Phone:     "9876543210",
		Branch:    "CSE",
		Year:      "3rd Year",
	}
	in.Positions = []model.PositionApplication{{
		PositionID: "lead",
		Answers: []model.PositionAnswer{
			{Answer: testutil.Words(60)},
			{Answer: testutil.Words(60)},
		},
	}}
	res, err := f.service.Submit(context.Background(), database.TestApplicant1, in)
	require.NoError(t, err)
	require.False(t, res.EmailSent)
	return res.ApplicationID
}

func TestConfirmationHandler(t *testing.T) {
	f := setup(t)

	body := gin.H{
		"to":            "asha@example.com",
		"name":          "Asha Raman",
		"positions":     []string{"Lead"},
		"applicationId": "21BCE1234",
		"submittedAt":   "2025-01-15T04:30:00Z",
	}

	rec, resp := testutil.MakeJSONRequest(body, internalKey, f.router, "/email/confirmation", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, 1, f.sender.Calls())

	// no application record is touched
	var count int64
	require.NoError(t, f.db.Model(&model.Application{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConfirmationHandler_Errors(t *testing.T) {
	f := setup(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{"to": "asha@example.com"}, internalKey, f.router, "/email/confirmation", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields", resp["error"])
	fields := resp["fields"].(map[string]interface{})
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "positions")
	assert.Contains(t, fields, "applicationId")
	assert.NotContains(t, fields, "to")

	rec, _ = testutil.MakeJSONRequest(gin.H{}, "wrong-key", f.router, "/email/confirmation", http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	f.sender.Fail.Store(true)
	body := gin.H{"to": "a@example.com", "name": "A", "positions": []string{"Lead"}, "applicationId": "X"}
	rec, resp = testutil.MakeJSONRequest(body, internalKey, f.router, "/email/confirmation", http.MethodPost)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "connection refused")
	assert.Equal(t, 3, f.sender.Calls())
}

func TestRetryHandler_Success(t *testing.T) {
	f := setup(t)
	id := submitWithFailingEmail(t, f)
	token := auth.GetAccessToken(t, testTokens, database.TestApplicant1)

	rec, resp := testutil.MakeJSONRequest(gin.H{"applicationId": id}, token, f.router, "/email/retry", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Confirmation email sent successfully", resp["message"])

	var app model.Application
	require.NoError(t, f.db.First(&app, "id = ?", id).Error)
	assert.True(t, app.EmailStatus.Sent)
	assert.Equal(t, 2, app.EmailStatus.Attempts)
	assert.Nil(t, app.EmailStatus.Error)

	// once sent, further retries are rejected and not counted
	rec, resp = testutil.MakeJSONRequest(gin.H{"applicationId": id}, token, f.router, "/email/retry", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, intake.ErrAlreadySent.Error(), resp["error"])

	require.NoError(t, f.db.First(&app, "id = ?", id).Error)
	assert.Equal(t, 2, app.EmailStatus.Attempts)
}

func TestRetryHandler_LimitReached(t *testing.T) {
	f := setup(t)
	id := submitWithFailingEmail(t, f)
	token := auth.GetAccessToken(t, testTokens, database.TestApplicant1)
	f.sender.Fail.Store(true)

	for i := 2; i <= intake.DefaultRetryPolicy.MaxAttempts; i++ {
		rec, resp := testutil.MakeJSONRequest(gin.H{"applicationId": id}, token, f.router, "/email/retry", http.MethodPost)
		require.Equal(t, http.StatusInternalServerError, rec.Code, "attempt %d", i)
		assert.Equal(t, "Failed to send email", resp["error"])
	}

	rec, resp := testutil.MakeJSONRequest(gin.H{"applicationId": id}, token, f.router, "/email/retry", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, intake.ErrRetryLimitExceeded.Error(), resp["error"])

	var app model.Application
	require.NoError(t, f.db.First(&app, "id = ?", id).Error)
	assert.Equal(t, intake.DefaultRetryPolicy.MaxAttempts, app.EmailStatus.Attempts)
}

func TestRetryHandler_Errors(t *testing.T) {
	f := setup(t)
	id := submitWithFailingEmail(t, f)

	other := auth.GetAccessToken(t, testTokens, database.TestApplicant2)
	rec, _ := testutil.MakeJSONRequest(gin.H{"applicationId": id}, other, f.router, "/email/retry", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	owner := auth.GetAccessToken(t, testTokens, database.TestApplicant1)
	rec, resp := testutil.MakeJSONRequest(gin.H{"applicationId": "99XYZ0000"}, owner, f.router, "/email/retry", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Application not found", resp["error"])

	rec, _ = testutil.MakeJSONRequest(gin.H{}, owner, f.router, "/email/retry", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{"applicationId": id}, "", f.router, "/email/retry", http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
