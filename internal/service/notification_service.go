package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/guild-support-bot/internal/config"
	"github.com/spec-kit/guild-support-bot/internal/events"
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
	n.dispatcher.Subscribe(events.EventTicketOpened, n.handleEvent("TicketOpened"))
	n.dispatcher.Subscribe(events.EventConversationRouted, n.handleEvent("ConversationRouted"))
	n.dispatcher.Subscribe(events.EventTicketCloseScheduled, n.handleEvent("TicketCloseScheduled"))
	n.dispatcher.Subscribe(events.EventAliasSaved, n.handleEvent("AliasSaved"))
	n.dispatcher.Subscribe(events.EventEmergencyDetected, n.handleEvent("EmergencyDetected"))
}

func (n *NotificationService) handleEvent(name string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		n.logger.Info(name,
			zap.Int64("channel_id", event.ChannelID),
			zap.Int64("user_id", event.UserID),
			zap.Any("payload", event.Payload))
		n.sendWebhookNotificationStub(ctx, event)
		return nil
	}
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
