// Package middleware contain utilities middleware code
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"standards-board-backend/internal/auth"
	"standards-board-backend/internal/database"
	"standards-board-backend/internal/model"
	"standards-board-backend/internal/utilities"
)

func abortUnauthorized(ctx *gin.Context, msg string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: msg})
}

// tokenError maps a validation failure to the message returned to the client
func tokenError(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "Access token expired"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "Invalid token issuer"
	default:
		return "Invalid access token"
	}
}

// RequireAuth validates the Bearer token in the Authorization header, loads the user
// it was issued for and stores both the user and the token claims on the context.
func RequireAuth(db *database.DBinstanceStruct, tokens *auth.JWTManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			abortUnauthorized(ctx, err.Error())
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(ctx, tokenError(err))
			return
		}

		var user model.User
		err = db.WithContext(ctx.Request.Context()).Where("id = ?", claims.Subject).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			abortUnauthorized(ctx, "User not exist")
			return
		case err != nil:
			slog.Error("failed to load user for token", slog.String("user_id", claims.Subject), slog.String("error", err.Error()))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to retrieve user data",
			})
			return
		}

		ctx.Set(utilities.ClaimsKey, claims)
		ctx.Set(utilities.UserKey, user)
		ctx.Next()
	}
}
