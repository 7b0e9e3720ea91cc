package utilities

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrNoBearerToken is returned when the Authorization header carries no bearer token
var ErrNoBearerToken = errors.New("Unauthorized - No token provided")

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>" header
func ExtractBearerToken(c *gin.Context) (string, error) {

	const BearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")

	if !strings.HasPrefix(authHeader, BearerSchema) {
		return "", ErrNoBearerToken
	}

	token := strings.TrimSpace(authHeader[len(BearerSchema):])
	if token == "" {
		return "", ErrNoBearerToken
	}
	return token, nil
}
