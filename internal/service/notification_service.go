package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/skill-swap-service/internal/config"
	"github.com/spec-kit/skill-swap-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
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
	n.dispatcher.Subscribe(events.EventSwapSubmitted, n.handleSwapSubmitted)
	n.dispatcher.Subscribe(events.EventSwapResolved, n.handleSwapResolved)
	n.dispatcher.Subscribe(events.EventUserBanned, n.handleUserBanned)
	n.dispatcher.Subscribe(events.EventAnnouncementPosted, n.handleAnnouncementPosted)
}

func (n *NotificationService) handleSwapSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("SwapSubmitted", zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSwapResolved(ctx context.Context, event events.Event) error {
	n.logger.Info("SwapResolved", zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleUserBanned(ctx context.Context, event events.Event) error {
	n.logger.Info("UserBanned", zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAnnouncementPosted(ctx context.Context, event events.Event) error {
	n.logger.Info("AnnouncementPosted", zap.String("actor_id", event.ActorID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
