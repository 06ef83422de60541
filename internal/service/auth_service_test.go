package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/algo-tracker/internal/config"
	domainmodel "github.com/spec-kit/algo-tracker/internal/domain"
	"github.com/spec-kit/algo-tracker/internal/events"
	"github.com/spec-kit/algo-tracker/internal/repository"
	apperrors "github.com/spec-kit/algo-tracker/pkg/util"
)

type fakeUserRepo struct {
	users     map[string]*domainmodel.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domainmodel.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domainmodel.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domainmodel.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domainmodel.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmailOrUsername(_ context.Context, email, username string) (*domainmodel.User, error) {
	for _, user := range f.users {
		if user.Email == email || user.Username == username {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-signing-secret",
			TokenTTLSeconds: 3600,
			BcryptCost:      bcrypt.MinCost,
		},
	}
}

func newTestAuthService(repo repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return NewAuthService(testAuthConfig(), AuthDependencies{
		UserRepo:   repo,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
}

func domainErrCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestAuthService_Register_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)

	user, token, _, err := svc.Register(context.Background(), "alice_1", "alice@example.com", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEmpty(t, user.ID)
	require.NotEmpty(t, token)

	assert.NotEqual(t, "hunter22", user.PasswordHash)

	result := svc.TokenStatus(token)
	assert.Equal(t, domainmodel.TokenStatusValid, result.Status)
	require.NotNil(t, result.Claims)
	assert.Equal(t, user.ID, result.Claims.UserID)
	assert.InDelta(t, 3600, result.SecondsRemaining, 2)
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "empty username", username: "", email: "a@example.com", password: "hunter22"},
		{name: "empty email", username: "alice_1", email: "", password: "hunter22"},
		{name: "empty password", username: "alice_1", email: "a@example.com", password: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, _, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
		})
	}
}

func TestAuthService_Register_DuplicateEmailIsConflict(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "alice_1", "alice@example.com", "hunter22")
	require.NoError(t, err)

	// Same email, different username: conflict, not validation or internal.
	_, _, _, err = svc.Register(ctx, "alice_2", "alice@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainErrCode(t, err))
}

func TestAuthService_Register_StorageRaceIsConflict(t *testing.T) {
	t.Parallel()

	// The pre-insert lookup misses but the unique constraint still fires, as
	// it would when two registrations race.
	repo := newFakeUserRepo()
	repo.createErr = repository.ErrDuplicate
	svc := newTestAuthService(repo, nil)

	_, _, _, err := svc.Register(context.Background(), "alice_1", "alice@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainErrCode(t, err))
}

func TestAuthService_Register_StorageOutageIsInternal(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	repo.createErr = errors.New("connection refused")
	svc := newTestAuthService(repo, nil)

	_, _, _, err := svc.Register(context.Background(), "alice_1", "alice@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, "INTERNAL_ERROR", domainErrCode(t, err))
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "alice_1", "alice@example.com", "hunter22")
	require.NoError(t, err)

	user, token, _, err := svc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice_1", user.Username)

	result := svc.TokenStatus(token)
	assert.Equal(t, domainmodel.TokenStatusValid, result.Status)
	assert.InDelta(t, 3600, result.SecondsRemaining, 2)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, nil)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "alice_1", "alice@example.com", "hunter22")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "wrong-pass")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", domainErrCode(t, err))
}

func TestAuthService_Login_UnknownEmailIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserRepo(), nil)

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestAuthService_ForgotPassword_GenericMessageEitherWay(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	dispatcher := events.NewInMemoryDispatcher()

	var resets []events.Event
	dispatcher.Subscribe(events.EventPasswordResetRequested, func(_ context.Context, event events.Event) error {
		resets = append(resets, event)
		return nil
	})

	svc := newTestAuthService(repo, dispatcher)
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "alice_1", "alice@example.com", "hunter22")
	require.NoError(t, err)

	knownMsg, err := svc.ForgotPassword(ctx, "alice@example.com")
	require.NoError(t, err)

	unknownMsg, err := svc.ForgotPassword(ctx, "nobody@example.com")
	require.NoError(t, err)

	// No observable difference between known and unknown accounts.
	assert.Equal(t, knownMsg, unknownMsg)

	// The reset token only exists for the real account and honors the
	// standard verification path.
	require.Len(t, resets, 1)
	payload, ok := resets[0].Payload.(events.PasswordResetRequestedPayload)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", payload.Email)

	result := svc.TokenStatus(payload.Token)
	assert.Equal(t, domainmodel.TokenStatusValid, result.Status)
}

func TestAuthService_ForgotPassword_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserRepo(), nil)

	_, err := svc.ForgotPassword(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
}
