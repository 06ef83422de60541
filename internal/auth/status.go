package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/algo-tracker/internal/domain"
)

// StatusResult is the structured outcome of classifying a token. Claims and
// SecondsRemaining are populated only when Status is valid.
type StatusResult struct {
	Status           domain.TokenStatus
	SecondsRemaining int64
	Claims           *Claims
}

// StatusClassifier runs the same signature and expiry checks as Verify but
// preserves the failure reason, producing the tri-state status exposed on the
// validate-token endpoint.
type StatusClassifier struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewStatusClassifier builds a classifier over the given manager.
func NewStatusClassifier(tokens *TokenManager, logger *zap.Logger) *StatusClassifier {
	return &StatusClassifier{tokens: tokens, logger: logger}
}

// Classify never fails; every input maps to one of valid, expired or invalid.
func (c *StatusClassifier) Classify(tokenStr string) StatusResult {
	if tokenStr == "" {
		return StatusResult{Status: domain.TokenStatusInvalid}
	}

	if len(c.tokens.secret) == 0 {
		// Operator error reported to the client as an invalid token; the
		// dedicated log line keeps it distinguishable from hostile input.
		c.logger.Error("token classification with unset signing secret")
		return StatusResult{Status: domain.TokenStatusInvalid}
	}

	claims, err := c.tokens.parse(tokenStr)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return StatusResult{Status: domain.TokenStatusExpired}
		}
		return StatusResult{Status: domain.TokenStatusInvalid}
	}

	var remaining int64
	if claims.ExpiresAt != nil {
		remaining = int64(time.Until(claims.ExpiresAt.Time).Seconds())
		if remaining < 0 {
			remaining = 0
		}
	}
	return StatusResult{
		Status:           domain.TokenStatusValid,
		SecondsRemaining: remaining,
		Claims:           claims,
	}
}
