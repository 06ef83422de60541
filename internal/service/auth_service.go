package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/algo-tracker/internal/auth"
	"github.com/spec-kit/algo-tracker/internal/config"
	"github.com/spec-kit/algo-tracker/internal/domain"
	"github.com/spec-kit/algo-tracker/internal/events"
	"github.com/spec-kit/algo-tracker/internal/repository"
	apperrors "github.com/spec-kit/algo-tracker/pkg/util"
)

// ForgotPasswordMessage is returned for every forgot-password request, whether
// or not the account exists.
const ForgotPasswordMessage = "If an account with that email exists, a password reset link has been sent"

// AuthService coordinates registration, login and token-status flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	classifier *auth.StatusClassifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLSeconds)
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     tokens,
		classifier: auth.NewStatusClassifier(tokens, deps.Logger),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, time.Time, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("username, email, and password are required", nil)
	}

	if _, err := s.users.GetByEmailOrUsername(ctx, email, username); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("user with this email or username already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A racing registration loses to the unique constraint, not to a
		// pre-insert lookup; that race is still a conflict to the caller.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", time.Time{}, apperrors.NewConflict("user with this email or username already exists", nil)
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Username: user.Username,
		Email:    user.Email,
	})
	return user, token, exp, nil
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewNotFound("user", nil)
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid password")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, exp, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// ForgotPassword issues a reset token for existing accounts and hands it to
// the notification stub. The response is identical either way so the endpoint
// cannot be used to probe for registered emails.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", apperrors.NewValidationError("email is required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("password reset requested for unknown email")
			return ForgotPasswordMessage, nil
		}
		return "", apperrors.NewInternalError(err)
	}

	token, _, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventPasswordResetRequested, user.ID, events.PasswordResetRequestedPayload{
		Email: user.Email,
		Token: token,
	})
	return ForgotPasswordMessage, nil
}

// TokenStatus classifies a presented token.
func (s *AuthService) TokenStatus(tokenStr string) auth.StatusResult {
	return s.classifier.Classify(tokenStr)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
