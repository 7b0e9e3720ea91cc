package utilities

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standards-board-backend/internal/model"
)

func newContext(header string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	return c
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken(newContext("Bearer abc.def.ghi"))
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer ", "Bearer    ", "Basic abc", "bearer abc"} {
		_, err := ExtractBearerToken(newContext(header))
		assert.ErrorIs(t, err, ErrNoBearerToken, header)
	}
}

func TestExtractUser(t *testing.T) {
	c := newContext("")
	_, err := ExtractUser(c)
	assert.Error(t, err)

	c.Set(UserKey, "not a user")
	_, err = ExtractUser(c)
	assert.Error(t, err)

	c.Set(UserKey, model.User{ID: "u1"})
	user, err := ExtractUser(c)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}
