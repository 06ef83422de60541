package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/algo-tracker/internal/config"
	"github.com/spec-kit/algo-tracker/internal/events"
)

// NotificationService handles emitting notifications for domain events. Real
// delivery is stubbed; handlers log what a mailer or webhook sender would do.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
	n.dispatcher.Subscribe(events.EventProblemCreated, n.handleProblemChanged)
	n.dispatcher.Subscribe(events.EventProblemUpdated, n.handleProblemChanged)
	n.dispatcher.Subscribe(events.EventProblemDeleted, n.handleProblemChanged)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.UserID))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

// handlePasswordResetRequested stands in for email delivery: the reset token
// is logged instead of sent.
func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("PasswordResetRequested",
		zap.String("user_id", event.UserID),
		zap.String("email", payload.Email),
		zap.String("reset_token", payload.Token))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleProblemChanged(ctx context.Context, event events.Event) error {
	n.logger.Debug("ProblemChanged",
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("user_id", event.UserID),
		zap.String("event_type", string(event.Type)))
}
