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

type riskRepo struct {
	db *sqlx.DB
}

// NewRiskRepo creates a new PostgreSQL-backed RiskRepository.
func NewRiskRepo(db *sqlx.DB) port.RiskRepository {
	return &riskRepo{db: db}
}

func (r *riskRepo) Create(ctx context.Context, risk *domain.Risk) error {
	risk.ID = uuid.New()
	now := time.Now().UTC()
	risk.CreatedAt = now
	risk.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO risks (id, tenant_id, building_id, title, description, likelihood, impact, rating,
		level, status, reported_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		risk.ID, risk.TenantID, risk.BuildingID, risk.Title, risk.Description, risk.Likelihood, risk.Impact,
		risk.Rating, risk.Level, risk.Status, risk.ReportedBy, risk.CreatedAt, risk.UpdatedAt)
	if err != nil {
		return fmt.Errorf("riskRepo.Create: %w", err)
	}
	return nil
}

func (r *riskRepo) GetByID(ctx context.Context, tenantID, riskID uuid.UUID) (*domain.Risk, error) {
	var risk domain.Risk
	err := r.db.GetContext(ctx, &risk, "SELECT * FROM risks WHERE id = $1 AND tenant_id = $2", riskID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("riskRepo.GetByID: %w", err)
	}
	return &risk, nil
}

func (r *riskRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.RiskFilter, offset, limit int) ([]domain.Risk, int, error) {
	w := newWhere("tenant_id = ?", tenantID)
	if filter.BuildingID != nil {
		w.and("building_id = ?", *filter.BuildingID)
	}
	if filter.Status != nil {
		w.and("status = ?", *filter.Status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM risks "+w.String(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("riskRepo.List count: %w", err)
	}

	pageClause, args := w.page(limit, offset)
	var risks []domain.Risk
	err := r.db.SelectContext(ctx, &risks,
		"SELECT * FROM risks "+w.String()+" ORDER BY rating DESC, created_at DESC"+pageClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("riskRepo.List: %w", err)
	}
	return risks, total, nil
}

func (r *riskRepo) UpdateStatus(ctx context.Context, tenantID, riskID uuid.UUID, status domain.RiskStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE risks SET status = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4",
		status, time.Now().UTC(), riskID, tenantID)
	if err != nil {
		return fmt.Errorf("riskRepo.UpdateStatus: %w", err)
	}
	return expectOne(result)
}

type maintenanceRepo struct {
	db *sqlx.DB
}

// NewMaintenanceRepo creates a new PostgreSQL-backed MaintenanceRepository.
func NewMaintenanceRepo(db *sqlx.DB) port.MaintenanceRepository {
	return &maintenanceRepo{db: db}
}

func (r *maintenanceRepo) Create(ctx context.Context, m *domain.MaintenanceLog) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now().UTC()
	if m.Status == "" {
		m.Status = domain.MaintenanceScheduled
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO maintenance_logs (id, tenant_id, building_id, risk_id, description, performed_by,
		performed_at, cost, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.TenantID, m.BuildingID, m.RiskID, m.Description, m.PerformedBy,
		m.PerformedAt, m.Cost, m.Status, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("maintenanceRepo.Create: %w", err)
	}
	return nil
}

func (r *maintenanceRepo) GetByID(ctx context.Context, tenantID, logID uuid.UUID) (*domain.MaintenanceLog, error) {
	var m domain.MaintenanceLog
	err := r.db.GetContext(ctx, &m, "SELECT * FROM maintenance_logs WHERE id = $1 AND tenant_id = $2", logID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("maintenanceRepo.GetByID: %w", err)
	}
	return &m, nil
}

func (r *maintenanceRepo) List(ctx context.Context, tenantID uuid.UUID, buildingID *uuid.UUID, offset, limit int) ([]domain.MaintenanceLog, int, error) {
	w := newWhere("tenant_id = ?", tenantID)
	if buildingID != nil {
		w.and("building_id = ?", *buildingID)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM maintenance_logs "+w.String(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("maintenanceRepo.List count: %w", err)
	}

	pageClause, args := w.page(limit, offset)
	var logs []domain.MaintenanceLog
	err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM maintenance_logs "+w.String()+" ORDER BY created_at DESC"+pageClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("maintenanceRepo.List: %w", err)
	}
	return logs, total, nil
}

func (r *maintenanceRepo) Complete(ctx context.Context, m *domain.MaintenanceLog) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE maintenance_logs SET status = $1, performed_at = $2, cost = $3
		WHERE id = $4 AND tenant_id = $5`,
		domain.MaintenanceCompleted, m.PerformedAt, m.Cost, m.ID, m.TenantID)
	if err != nil {
		return fmt.Errorf("maintenanceRepo.Complete: %w", err)
	}
	if err := expectOne(result); err != nil {
		return err
	}
	m.Status = domain.MaintenanceCompleted
	return nil
}
