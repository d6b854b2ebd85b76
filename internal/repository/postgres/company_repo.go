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

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, c *domain.Company) error {
	c.ID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, tenant_id, name, name_en, contract_number, contact_email,
		evaluation_interval_months, last_evaluated_at, score, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.TenantID, c.Name, c.NameEN, c.ContractNumber, c.ContactEmail,
		c.EvaluationIntervalMonths, c.LastEvaluatedAt, c.Score, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("companyRepo.Create: %w", err)
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*domain.Company, error) {
	var c domain.Company
	err := r.db.GetContext(ctx, &c,
		"SELECT * FROM companies WHERE id = $1 AND tenant_id = $2", companyID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *companyRepo) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.Company, int, error) {
	where := "WHERE tenant_id = $1"
	if activeOnly {
		where += " AND is_active = true"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM companies "+where, tenantID); err != nil {
		return nil, 0, fmt.Errorf("companyRepo.List count: %w", err)
	}

	var companies []domain.Company
	err := r.db.SelectContext(ctx, &companies,
		"SELECT * FROM companies "+where+" ORDER BY name LIMIT $2 OFFSET $3", tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("companyRepo.List: %w", err)
	}
	return companies, total, nil
}

func (r *companyRepo) ListActiveIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		"SELECT id FROM companies WHERE tenant_id = $1 AND is_active = true ORDER BY name", tenantID)
	if err != nil {
		return nil, fmt.Errorf("companyRepo.ListActiveIDs: %w", err)
	}
	return ids, nil
}

func (r *companyRepo) Update(ctx context.Context, c *domain.Company) error {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE companies SET name = $1, name_en = $2, contract_number = $3, contact_email = $4,
		evaluation_interval_months = $5, is_active = $6, updated_at = $7
		WHERE id = $8 AND tenant_id = $9`,
		c.Name, c.NameEN, c.ContractNumber, c.ContactEmail,
		c.EvaluationIntervalMonths, c.IsActive, c.UpdatedAt, c.ID, c.TenantID)
	if err != nil {
		return fmt.Errorf("companyRepo.Update: %w", err)
	}
	return expectOne(result)
}

func (r *companyRepo) Delete(ctx context.Context, tenantID, companyID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM companies WHERE id = $1 AND tenant_id = $2", companyID, tenantID)
	if err != nil {
		return fmt.Errorf("companyRepo.Delete: %w", err)
	}
	return expectOne(result)
}

// MarkEvaluated moves last_evaluated_at forward. An older timestamp never
// replaces a newer one.
func (r *companyRepo) MarkEvaluated(ctx context.Context, tenantID, companyID uuid.UUID, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE companies
		SET last_evaluated_at = GREATEST(COALESCE(last_evaluated_at, $1), $1), updated_at = NOW()
		WHERE id = $2 AND tenant_id = $3`,
		at, companyID, tenantID)
	if err != nil {
		return fmt.Errorf("companyRepo.MarkEvaluated: %w", err)
	}
	return expectOne(result)
}

func (r *companyRepo) UpdateScore(ctx context.Context, tenantID, companyID uuid.UUID, score float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE companies SET score = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`,
		score, companyID, tenantID)
	if err != nil {
		return fmt.Errorf("companyRepo.UpdateScore: %w", err)
	}
	return expectOne(result)
}
