package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blockbuddy/lead-console/internal/domain"
)

// RequestRepository encapsulates support-request persistence.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.SupportRequest) error
	// UpsertSession writes a chat-session request under a caller-derived id.
	// A colliding id overwrites the existing open session.
	UpsertSession(ctx context.Context, req *domain.SupportRequest) error
	GetByID(ctx context.Context, id string) (*domain.SupportRequest, error)
	// List returns every request, newest first by creation timestamp.
	List(ctx context.Context) ([]domain.SupportRequest, error)
	// UpdateStatus sets the status and bumps the version counter, returning
	// the new version.
	UpdateStatus(ctx context.Context, id string, status domain.Status) (int64, error)
	// UpdateNotes sets the admin notes and bumps the version counter.
	UpdateNotes(ctx context.Context, id string, notes string) (int64, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

const requestColumns = `id, name, email, kind, message, status,
       protocol, other_protocol, network_type, other_network_type,
       node_type, other_node_type, notes, version, created_at, updated_at`

func (r *requestRepository) Create(ctx context.Context, req *domain.SupportRequest) error {
	const query = `
        INSERT INTO requests (name, email, kind, message, status,
            protocol, other_protocol, network_type, other_network_type, node_type, other_node_type)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, version, created_at, updated_at`
	sub := req.Subscription
	if sub == nil {
		sub = &domain.SubscriptionDetails{}
	}
	return r.pool.QueryRow(ctx, query,
		req.Name,
		req.Email,
		req.Kind,
		req.Message,
		req.Status,
		sub.Protocol,
		sub.OtherProtocol,
		sub.NetworkType,
		sub.OtherNetworkType,
		sub.NodeType,
		sub.OtherNodeType,
	).Scan(&req.ID, &req.Version, &req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) UpsertSession(ctx context.Context, req *domain.SupportRequest) error {
	const query = `
        INSERT INTO requests (id, name, email, kind, message, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (id) DO UPDATE SET
            name=EXCLUDED.name, email=EXCLUDED.email, status=EXCLUDED.status,
            version=requests.version+1, updated_at=NOW()
        RETURNING version, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		req.ID,
		req.Name,
		req.Email,
		req.Kind,
		req.Message,
		req.Status,
	).Scan(&req.Version, &req.CreatedAt, &req.UpdatedAt)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.SupportRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanRequestRow(row)
}

func (r *requestRepository) List(ctx context.Context) ([]domain.SupportRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SupportRequest
	for rows.Next() {
		req, err := scanRequestRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	return result, rows.Err()
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (int64, error) {
	const query = `
        UPDATE requests SET status=$1, version=version+1, updated_at=NOW()
        WHERE id=$2
        RETURNING version`
	var version int64
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func (r *requestRepository) UpdateNotes(ctx context.Context, id string, notes string) (int64, error) {
	const query = `
        UPDATE requests SET notes=$1, version=version+1, updated_at=NOW()
        WHERE id=$2
        RETURNING version`
	var version int64
	if err := r.pool.QueryRow(ctx, query, notes, id).Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func scanRequestRow(row pgx.Row) (*domain.SupportRequest, error) {
	var req domain.SupportRequest
	var sub domain.SubscriptionDetails
	if err := row.Scan(
		&req.ID,
		&req.Name,
		&req.Email,
		&req.Kind,
		&req.Message,
		&req.Status,
		&sub.Protocol,
		&sub.OtherProtocol,
		&sub.NetworkType,
		&sub.OtherNetworkType,
		&sub.NodeType,
		&sub.OtherNodeType,
		&req.Notes,
		&req.Version,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if req.Kind == domain.KindSubscription {
		req.Subscription = &sub
	}
	return &req, nil
}
