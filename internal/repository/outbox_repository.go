package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutboxEntry is one queued notification, consumable by an external mailer.
type OutboxEntry struct {
	ID        string
	RequestID string
	Subject   string
	Body      string
	Recipient string
	SentAt    *time.Time
	CreatedAt time.Time
}

// OutboxRepository persists notification outbox entries.
type OutboxRepository interface {
	Create(ctx context.Context, entry *OutboxEntry) error
	MarkSent(ctx context.Context, id string) error
}

type outboxRepository struct {
	pool *pgxpool.Pool
}

// NewOutboxRepository instantiates repository.
func NewOutboxRepository(pool *pgxpool.Pool) OutboxRepository {
	return &outboxRepository{pool: pool}
}

func (r *outboxRepository) Create(ctx context.Context, entry *OutboxEntry) error {
	const query = `
        INSERT INTO notification_outbox (request_id, subject, body, recipient)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.RequestID,
		entry.Subject,
		entry.Body,
		entry.Recipient,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	const query = `UPDATE notification_outbox SET sent_at=NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
