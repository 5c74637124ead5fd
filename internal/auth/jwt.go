package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/VictorWong123/shopnsplit/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

const tokenIssuer = "shopnsplit"

// JWTManager issues and validates the bearer tokens that protect saved
// receipts. HS256 with a single shared secret; there is no refresh flow,
// an expired token just means logging in again.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// Claims is the token payload for a logged-in account. The user ID rides
// in the registered subject claim; email and display name are carried so
// the client can render the account header without a round trip.
type Claims struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the account ID the token was issued to.
func (c *Claims) UserID() string {
	return c.Subject
}

// NewJWTManager creates a new JWT manager. secretKey should be a strong
// random string; tokenDuration is how long tokens remain valid.
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

// Issue signs a fresh token for the given account.
func (m *JWTManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:       user.Email,
		DisplayName: user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns its claims. Anything not signed by
// this manager with HS256, not issued by this app, or outside its validity
// window comes back as ErrInvalidToken.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(*jwt.Token) (any, error) { return m.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
