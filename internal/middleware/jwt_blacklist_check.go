package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"standards-board-backend/internal/auth"
	"standards-board-backend/internal/utilities"
)

// JwtBlacklistCheck rejects tokens revoked by logout. It must run after RequireAuth.
func JwtBlacklistCheck(bl auth.JwtBlacklistStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, err := auth.ExtractClaims(ctx)
		if err != nil {
			abortUnauthorized(ctx, err.Error())
			return
		}

		revoked, err := bl.IsBlacklisted(ctx.Request.Context(), claims.ID)
		if err != nil {
			slog.Error("blacklist lookup failed", slog.String("error", err.Error()))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to validate token",
			})
			return
		}

		if revoked {
			abortUnauthorized(ctx, "Token has been revoked")
			return
		}

		ctx.Next()
	}
}
