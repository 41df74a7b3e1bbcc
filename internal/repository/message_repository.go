package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blockbuddy/lead-console/internal/domain"
)

// MessageRepository manages a request's ordered message sub-list.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) error
	// ListByRequest returns messages ordered by server timestamp ascending.
	ListByRequest(ctx context.Context, requestID string) ([]domain.ChatMessage, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository builds repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (request_id, sender, text)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		msg.RequestID,
		msg.Sender,
		msg.Text,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *messageRepository) ListByRequest(ctx context.Context, requestID string) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, request_id, sender, text, created_at
        FROM chat_messages WHERE request_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.RequestID,
			&msg.Sender,
			&msg.Text,
			&msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
