package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blockbuddy/lead-console/internal/domain"
)

// AdminRepository stores operator accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository instantiates repository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (email, password_hash)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		admin.Email,
		admin.PasswordHash,
	).Scan(&admin.ID, &admin.CreatedAt)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const query = `SELECT id, email, password_hash, created_at FROM admins WHERE email=$1`
	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	const query = `SELECT id, email, password_hash, created_at FROM admins WHERE id=$1`
	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}
