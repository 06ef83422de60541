package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/algo-tracker/pkg/util"
)

// newGateApp wires the middleware in front of a handler that echoes the
// decoded identity, with the same error-to-status mapping the real boundary
// applies.
func newGateApp(tm *TokenManager) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			domainErr := apperrors.ToDomainError(err)
			c.Status(domainErr.HTTPStatus)
			return c.JSON(fiber.Map{"message": domainErr.Message})
		}
		return nil
	})

	gate := NewAuthMiddleware(tm)
	app.Get("/protected", gate.Handle, func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.SendString(claims.UserID + ":" + claims.Email)
	})
	return app
}

func TestAuthMiddleware_ValidTokenForwardsIdentity(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testSecret, 3600)
	app := newGateApp(tm)

	token, _, err := tm.Issue("user-123", "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "user-123:user@example.com", string(body))
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testSecret, 3600)
	app := newGateApp(tm)

	expired := signWithSecret(t, testSecret, time.Now().Add(-time.Minute))

	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "missing header", authHeader: ""},
		{name: "non-bearer scheme", authHeader: "Basic dXNlcjpwYXNz"},
		{name: "bearer without token", authHeader: "Bearer"},
		{name: "garbage token", authHeader: "Bearer not.a.jwt"},
		{name: "expired token", authHeader: "Bearer " + expired},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}
