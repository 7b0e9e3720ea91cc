package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// JWTManager issues and validates HS256 access tokens
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManager returns a manager signing with secret. A non-positive ttl means one hour.
func NewJWTManager(secret string, issuer string, ttl time.Duration) *JWTManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTManager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Issuer returns the iss claim written into every token
func (m *JWTManager) Issuer() string {
	return m.issuer
}

// GenerateToken signs an access token for userID. Each token gets a unique jti for revocation.
func (m *JWTManager) GenerateToken(userID string) (string, *jwt.RegisteredClaims, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    m.issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	generatedAccessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := generatedAccessToken.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("Failed to sign token: %s", err)
	}

	return signedToken, claims, nil
}

// ValidateToken parses encodeToken and checks signature, expiry and issuer
func (m *JWTManager) ValidateToken(encodeToken string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(encodeToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, isvalid := token.Method.(*jwt.SigningMethodHMAC); !isvalid {
			return nil, fmt.Errorf("Invalid token")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, errors.New("Invalid access token")
	}
	if !claims.VerifyIssuer(m.issuer, true) {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	if claims.Subject == "" {
		return nil, errors.New("Invalid access token")
	}
	return claims, nil
}
