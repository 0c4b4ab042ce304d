package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/fernwave/chat-service/internal/domain"
	"github.com/fernwave/chat-service/internal/events"
)

// AuditService records auth and chat activity from domain events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handle)
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.handle)
	a.dispatcher.Subscribe(events.EventGuestSessionIssued, a.handle)
	a.dispatcher.Subscribe(events.EventChatCreated, a.handle)
	a.dispatcher.Subscribe(events.EventMessageAdded, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.String("subject", event.Subject),
		zap.Bool("guest", domain.IsGuestEmail(event.Subject)),
		zap.Any("payload", event.Payload))
	return nil
}
