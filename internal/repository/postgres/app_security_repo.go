package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

type appSecurityRepo struct {
	db *sqlx.DB
}

// NewAppSecurityRepo creates a new PostgreSQL-backed AppSecurityRepository.
func NewAppSecurityRepo(db *sqlx.DB) port.AppSecurityRepository {
	return &appSecurityRepo{db: db}
}

func (r *appSecurityRepo) Get(ctx context.Context, tenantID uuid.UUID) (*domain.AppSecurity, error) {
	var s domain.AppSecurity
	err := r.db.GetContext(ctx, &s,
		"SELECT tenant_id, is_locked, message, updated_by, updated_at FROM app_settings WHERE tenant_id = $1",
		tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.AppSecurity{TenantID: tenantID}, nil
		}
		return nil, fmt.Errorf("appSecurityRepo.Get: %w", err)
	}
	return &s, nil
}

func (r *appSecurityRepo) Upsert(ctx context.Context, setting *domain.AppSecurity) error {
	setting.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_settings (tenant_id, is_locked, message, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tenant_id) DO UPDATE
		SET is_locked = EXCLUDED.is_locked, message = EXCLUDED.message,
			updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`,
		setting.TenantID, setting.IsLocked, setting.Message, setting.UpdatedBy, setting.UpdatedAt)
	if err != nil {
		return fmt.Errorf("appSecurityRepo.Upsert: %w", err)
	}
	return nil
}
