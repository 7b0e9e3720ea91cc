package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"standards-board-backend/internal/utilities"
)

// InternalKey guards endpoints meant for trusted callers, which present apiKey as a Bearer token.
// An empty apiKey disables the endpoint entirely.
func InternalKey(apiKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if apiKey == "" {
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, utilities.ErrorResponse{
				Error: "Endpoint is not configured",
			})
			return
		}

		given, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		if subtle.ConstantTimeCompare([]byte(given), []byte(apiKey)) != 1 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Unauthorized",
			})
			return
		}

		ctx.Next()
	}
}
