package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fernwave/chat-service/internal/domain"
)

// ChatRepository persists conversation threads.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) error
	GetByID(ctx context.Context, id string) (*domain.Chat, error)
	ListByOwner(ctx context.Context, ownerEmail string, limit int) ([]domain.Chat, error)
	Delete(ctx context.Context, id string) error
}

type chatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository returns a Postgres-backed implementation.
func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &chatRepository{pool: pool}
}

func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	const query = `
        INSERT INTO chats (owner_email, title)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		chat.OwnerEmail,
		chat.Title,
	).Scan(&chat.ID, &chat.CreatedAt, &chat.UpdatedAt)
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*domain.Chat, error) {
	const query = `
        SELECT id, owner_email, title, created_at, updated_at
        FROM chats WHERE id=$1`

	var chat domain.Chat
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&chat.ID,
		&chat.OwnerEmail,
		&chat.Title,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) ListByOwner(ctx context.Context, ownerEmail string, limit int) ([]domain.Chat, error) {
	const query = `
        SELECT id, owner_email, title, created_at, updated_at
        FROM chats WHERE owner_email=$1
        ORDER BY updated_at DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, ownerEmail, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var chat domain.Chat
		if err := rows.Scan(
			&chat.ID,
			&chat.OwnerEmail,
			&chat.Title,
			&chat.CreatedAt,
			&chat.UpdatedAt,
		); err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

func (r *chatRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM chats WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
