package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fernwave/chat-service/internal/domain"
)

// MessageRepository persists chat messages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByChat(ctx context.Context, chatID string) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository returns a Postgres-backed implementation.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	const query = `
        INSERT INTO messages (chat_id, role, body)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		message.ChatID,
		message.Role,
		message.Body,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *messageRepository) ListByChat(ctx context.Context, chatID string) ([]domain.Message, error) {
	const query = `
        SELECT id, chat_id, role, body, created_at
        FROM messages WHERE chat_id=$1
        ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.ChatID,
			&message.Role,
			&message.Body,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
