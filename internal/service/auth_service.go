package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/blockbuddy/lead-console/internal/auth"
	"github.com/blockbuddy/lead-console/internal/config"
	"github.com/blockbuddy/lead-console/internal/domain"
	"github.com/blockbuddy/lead-console/internal/repository"
	apperrors "github.com/blockbuddy/lead-console/pkg/util"
)

// AuthService coordinates admin login and account seeding.
type AuthService struct {
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, admins repository.AdminRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		admins:     admins,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return "", time.Time{}, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.tokenMgr.GenerateToken(admin.ID, admin.Email)
}

// EnsureSeedAdmin creates the configured admin account when it is missing.
// Skipped when no seed password is configured.
func (s *AuthService) EnsureSeedAdmin(ctx context.Context, cfg config.AuthConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		s.logger.Warn("ADMIN_PASSWORD not set; skipping admin seed")
		return nil
	}

	if _, err := s.admins.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	admin := &domain.Admin{Email: cfg.AdminEmail, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return err
	}
	s.logger.Info("seeded admin account", zap.String("email", cfg.AdminEmail))
	return nil
}
