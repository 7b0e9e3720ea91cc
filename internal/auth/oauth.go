// Package auth contains handlers for signing in with Google, signing out and issuing session tokens
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"standards-board-backend/internal/database"
	"standards-board-backend/internal/model"
	"standards-board-backend/internal/utilities"
)

// OauthLoginHandler struct holds the database connection and OAuth2 configuration for handling OAuth login.
type OauthLoginHandler struct {
	DB               *database.DBinstanceStruct
	OauthConfig      *oauth2.Config
	UserInfoEndpoint string
	Tokens           *JWTManager
}

type code struct {
	Code string `json:"code" binding:"required"`
}

// NewGoogleOauthConfig builds the OAuth2 client config for Google sign-in
func NewGoogleOauthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"openid",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: redirectURL,
	}
}

// NewOauthLoginHandler creates a new instance of OauthLoginHandler with the provided database connection and OAuth2 configuration.
func NewOauthLoginHandler(db *database.DBinstanceStruct, oauthConfig *oauth2.Config, userInfoEndpoint string, tokens *JWTManager) *OauthLoginHandler {
	return &OauthLoginHandler{
		DB:               db,
		OauthConfig:      oauthConfig,
		UserInfoEndpoint: userInfoEndpoint,
		Tokens:           tokens,
	}
}

func (h *OauthLoginHandler) getUserInfo(c *gin.Context) (model.GoogleUserInfo, error) {

	var code code
	var uInfo model.GoogleUserInfo

	// check does body has code
	if err := c.ShouldBindJSON(&code); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "No authorization code provided",
		})
		return uInfo, err
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// Exchange code with google and get userinfo
	token, err := h.OauthConfig.Exchange(ctx, code.Code)
	if err != nil {
		LogAuthAttempt(slog.LevelWarn, "Google", "Fail", "", "code exchange failed: "+err.Error())
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Failed to receive token",
		})
		return uInfo, err
	}

	client := h.OauthConfig.Client(ctx, token)
	resp, err := client.Get(h.UserInfoEndpoint)
	if err != nil {
		LogAuthAttempt(slog.LevelWarn, "Google", "Fail", "", "userinfo request failed: "+err.Error())
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Failed to fetch user information",
		})
		return uInfo, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		LogAuthAttempt(slog.LevelWarn, "Google", "Fail", "",
			fmt.Sprintf("userinfo endpoint returned status=%d body=%s", resp.StatusCode, string(bodyBytes)))
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Failed to fetch user information",
		})
		// return a clear error so caller doesn't continue with empty user info
		return uInfo, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&uInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Failed to decode user info",
		})
		return uInfo, err
	}
	if uInfo.GID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Google account has no identifier",
		})
		return uInfo, errors.New("empty google id")
	}
	return uInfo, nil
}

// loginOrRegisterUser creates the user on first sign-in or refreshes the Google profile fields.
// Role and hasApplied are never taken from the identity provider.
func (h *OauthLoginHandler) loginOrRegisterUser(uinfo model.GoogleUserInfo, c *gin.Context) {
	var user model.User
	respStatus := http.StatusOK

	err := h.DB.WithContext(c.Request.Context()).Where("id = ?", uinfo.GID).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):

		user = model.User{
			ID:   uinfo.GID,
			Role: model.RoleUser,
		}
		user.FillGoogleInfo(uinfo)

		if err := h.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
			slog.Error("failed to create user", slog.String("user_id", uinfo.GID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to create user",
			})
			return
		}

		respStatus = http.StatusCreated
	case err == nil:

		user.FillGoogleInfo(uinfo)
		if err := h.DB.WithContext(c.Request.Context()).Model(&user).
			Select("email", "display_name", "photo_url").
			Updates(&user).Error; err != nil {
			slog.Error("failed to refresh user", slog.String("user_id", user.ID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to retrieve user data",
			})
			return
		}
	default:
		slog.Error("failed to look up user", slog.String("user_id", uinfo.GID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Database error",
		})
		return
	}

	accessToken, _, err := h.Tokens.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to generate access token",
		})
		return
	}

	LogAuthAttempt(slog.LevelInfo, "Google", "Success", user.ID, "")
	c.JSON(respStatus, model.LoginResponse{
		User:        user,
		AccessToken: accessToken,
	})
}

// GoogleLoginHandler exchanges a Google authorization code for user info, creates or refreshes
// the user and returns it with an access token.
// @Summary Sign in with Google
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body code true "Authentication code from google"
// @Success 200 {object} model.LoginResponse "Login success"
// @Success 201 {object} model.LoginResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Fail to receive token or fetch user info"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google [post]
func (h *OauthLoginHandler) GoogleLoginHandler(c *gin.Context) {

	uInfo, err := h.getUserInfo(c)
	if err != nil {
		return
	}

	h.loginOrRegisterUser(uInfo, c)
}

// Callback function in Go retrieves a query parameter named "code" from the request and returns it
// in a JSON response.
// @Summary Retrieves a query parameter named "code" from the request and returns it in a JSON response
// @Tags Auth
// @Produce json
// @Param Code query string false "Authentication code from google"
// @Success 200 {object} code
// @Router /auth/google/callback [get]
func (h *OauthLoginHandler) Callback(c *gin.Context) {
	aCode := c.Query("code")
	c.JSON(http.StatusOK, code{
		Code: aCode,
	})
}

// MeHandler returns the signed-in user.
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} utilities.ErrorResponse
// @Router /auth/me [get]
func MeHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
