package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func TestTokenManager_IssueAndVerify(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testSecret, 3600)

	token, exp, err := tm.Issue("user-123", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 2*time.Second)

	claims := tm.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

func TestTokenManager_IssueRequiresConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		ttlSeconds int
	}{
		{name: "missing secret", secret: "", ttlSeconds: 3600},
		{name: "missing lifetime", secret: testSecret, ttlSeconds: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tm := NewTokenManager(tt.secret, tt.ttlSeconds)
			_, _, err := tm.Issue("user-123", "user@example.com")
			require.Error(t, err)
		})
	}
}

func TestTokenManager_VerifyCollapsesAllFailures(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testSecret, 3600)
	token, _, err := tm.Issue("user-123", "user@example.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "tampered signature", token: token[:len(token)-4] + "AAAA"},
		{name: "wrong secret", token: signWithSecret(t, "other-secret", time.Now().Add(time.Hour))},
		{name: "expired", token: signWithSecret(t, testSecret, time.Now().Add(-time.Minute))},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Nil(t, tm.Verify(tt.token))
		})
	}
}

func TestTokenManager_VerifyRejectsWrongAlgorithm(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testSecret, 3600)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-123"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(token, "."))

	assert.Nil(t, tm.Verify(token))
}

// signWithSecret mints a token outside the manager so tests can control the
// secret and expiry.
func signWithSecret(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()

	claims := &Claims{
		UserID: "user-123",
		Email:  "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
