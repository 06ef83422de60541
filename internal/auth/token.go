package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenManager handles issuing and verifying JWT bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. The secret and TTL come from startup
// configuration and never change for the process lifetime.
func NewTokenManager(secret string, ttlSeconds int) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlSeconds) * time.Second}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the user. It fails when the manager was
// constructed without a secret or a positive lifetime.
func (tm *TokenManager) Issue(userID, email string) (string, time.Time, error) {
	if len(tm.secret) == 0 {
		return "", time.Time{}, errors.New("token signing secret not configured")
	}
	if tm.ttl <= 0 {
		return "", time.Time{}, errors.New("token lifetime not configured")
	}

	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify checks signature and expiry together and returns the decoded claims,
// or nil on any failure. Malformed input, a bad signature and expiry all
// collapse to the same negative answer; callers needing the reason use the
// StatusClassifier instead.
func (tm *TokenManager) Verify(tokenStr string) *Claims {
	claims, err := tm.parse(tokenStr)
	if err != nil {
		return nil
	}
	return claims
}

func (tm *TokenManager) parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
