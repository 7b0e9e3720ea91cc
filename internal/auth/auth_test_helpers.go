package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"standards-board-backend/internal/model"
)

// MockOAuth2Server imitates the Google token and userinfo endpoints for tests
type MockOAuth2Server struct {
	*httptest.Server
	Config           *oauth2.Config
	MockInfoEndpoint string

	mu        sync.Mutex
	users     map[string]model.GoogleUserInfo
	codes     map[string]string
	tokens    map[string]string
	exchanged map[string]bool
}

// NewMockOAuth2Server starts a server knowing the given users
func NewMockOAuth2Server(users []model.GoogleUserInfo) *MockOAuth2Server {
	m := &MockOAuth2Server{
		users:     make(map[string]model.GoogleUserInfo, len(users)),
		codes:     map[string]string{},
		tokens:    map[string]string{},
		exchanged: map[string]bool{},
	}
	for _, u := range users {
		m.users[u.GID] = u
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", m.handleToken)
	mux.HandleFunc("/userinfo", m.handleUserInfo)
	m.Server = httptest.NewServer(mux)

	m.MockInfoEndpoint = m.URL + "/userinfo"
	m.Config = &oauth2.Config{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		RedirectURL:  "http://localhost/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:   m.URL + "/auth",
			TokenURL:  m.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return m
}

// GetAuthCode returns a one-time authorization code for the user
func (m *MockOAuth2Server) GetAuthCode(gid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[gid]; !ok {
		return "", fmt.Errorf("unknown user %s", gid)
	}
	c := uuid.NewString()
	m.codes[c] = gid
	return c, nil
}

// IsUserTokenExchanged reports whether a code of the user was exchanged
func (m *MockOAuth2Server) IsUserTokenExchanged(gid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exchanged[gid]
}

func (m *MockOAuth2Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	gid, ok := m.codes[r.PostForm.Get("code")]
	if ok {
		delete(m.codes, r.PostForm.Get("code"))
		m.exchanged[gid] = true
	}
	token := uuid.NewString()
	if ok {
		m.tokens[token] = gid
	}
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (m *MockOAuth2Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	m.mu.Lock()
	gid, ok := m.tokens[token]
	user := m.users[gid]
	m.mu.Unlock()

	if !ok {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}

// GetAccessToken issues a token for user, failing the test on error
func GetAccessToken(t *testing.T, tokens *JWTManager, user model.User) string {
	t.Helper()
	token, _, err := tokens.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}
