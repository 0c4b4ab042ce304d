package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fernwave/chat-service/internal/ai"
	"github.com/fernwave/chat-service/internal/domain"
	"github.com/fernwave/chat-service/internal/events"
	"github.com/fernwave/chat-service/internal/repository"
	apperrors "github.com/fernwave/chat-service/pkg/util"
)

const (
	historyCachePrefix = "chat:history:"
	historyCacheTTL    = 60 * time.Second
	historyLimit       = 50
	titleMaxLen        = 80
)

// ChatService owns conversation threads and model replies.
type ChatService struct {
	chats      repository.ChatRepository
	messages   repository.MessageRepository
	provider   ai.Provider
	cache      *redis.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewChatService builds the service. cache may be nil.
func NewChatService(
	chats repository.ChatRepository,
	messages repository.MessageRepository,
	provider ai.Provider,
	cache *redis.Client,
	dispatcher events.Dispatcher,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		chats:      chats,
		messages:   messages,
		provider:   provider,
		cache:      cache,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// SendMessage appends a user message to a chat (creating the chat when
// chatID is empty), asks the model provider for a reply, and stores it.
func (s *ChatService) SendMessage(ctx context.Context, ownerEmail, chatID, body string) (*domain.Chat, *domain.Message, error) {
	var chat *domain.Chat
	if chatID == "" {
		chat = &domain.Chat{OwnerEmail: ownerEmail, Title: chatTitle(body)}
		if err := s.chats.Create(ctx, chat); err != nil {
			return nil, nil, apperrors.MapError(err)
		}
		s.publish(ctx, events.EventChatCreated, ownerEmail, events.ChatCreatedPayload{ChatID: chat.ID, Title: chat.Title})
	} else {
		existing, err := s.loadOwned(ctx, ownerEmail, chatID)
		if err != nil {
			return nil, nil, err
		}
		chat = existing
	}

	userMsg := &domain.Message{ChatID: chat.ID, Role: domain.RoleUser, Body: body}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	history, err := s.messages.ListByChat(ctx, chat.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	replyBody, err := s.provider.Generate(ctx, history)
	if err != nil {
		s.logger.Warn("model generation failed", zap.String("provider", s.provider.Name()), zap.Error(err))
		return nil, nil, apperrors.NewInternalError(err)
	}

	reply := &domain.Message{ChatID: chat.ID, Role: domain.RoleAssistant, Body: replyBody}
	if err := s.messages.Create(ctx, reply); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMessageAdded, ownerEmail, events.MessageAddedPayload{
		ChatID:      chat.ID,
		MessageID:   reply.ID,
		Role:        string(reply.Role),
		BodyPreview: chatTitle(replyBody),
	})
	s.invalidateHistory(ctx, ownerEmail)
	return chat, reply, nil
}

// History lists the owner's most recent chats, served from the redis cache
// when warm.
func (s *ChatService) History(ctx context.Context, ownerEmail string) ([]domain.Chat, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, historyCachePrefix+ownerEmail).Bytes(); err == nil {
			var cached []domain.Chat
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	chats, err := s.chats.ListByOwner(ctx, ownerEmail, historyLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(chats); err == nil {
			s.cache.Set(ctx, historyCachePrefix+ownerEmail, raw, historyCacheTTL)
		}
	}
	return chats, nil
}

// GetChat returns a chat and its messages after an ownership check.
func (s *ChatService) GetChat(ctx context.Context, ownerEmail, chatID string) (*domain.Chat, []domain.Message, error) {
	chat, err := s.loadOwned(ctx, ownerEmail, chatID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.messages.ListByChat(ctx, chatID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return chat, messages, nil
}

// DeleteChat removes a chat after an ownership check.
func (s *ChatService) DeleteChat(ctx context.Context, ownerEmail, chatID string) error {
	if _, err := s.loadOwned(ctx, ownerEmail, chatID); err != nil {
		return err
	}
	if err := s.chats.Delete(ctx, chatID); err != nil {
		return apperrors.MapError(err)
	}
	s.invalidateHistory(ctx, ownerEmail)
	return nil
}

func (s *ChatService) loadOwned(ctx context.Context, ownerEmail, chatID string) (*domain.Chat, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("chat", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if chat.OwnerEmail != ownerEmail {
		return nil, apperrors.NewForbidden("chat belongs to another identity")
	}
	return chat, nil
}

func (s *ChatService) invalidateHistory(ctx context.Context, ownerEmail string) {
	if s.cache != nil {
		s.cache.Del(ctx, historyCachePrefix+ownerEmail)
	}
}

func (s *ChatService) publish(ctx context.Context, eventType events.EventType, subject string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func chatTitle(body string) string {
	if len(body) > titleMaxLen {
		return body[:titleMaxLen]
	}
	return body
}
