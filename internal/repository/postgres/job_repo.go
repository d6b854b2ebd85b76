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

type jobRepo struct {
	db *sqlx.DB
}

// NewJobRepo creates a new PostgreSQL-backed JobRepository.
func NewJobRepo(db *sqlx.DB) port.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	job.ID = uuid.New()
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (id, tenant_id, title, name_ar, name_en, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		job.ID, job.TenantID, job.Title, job.NameAR, job.NameEN, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		if isDuplicate(err, "") {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("jobRepo.Create: %w", err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM jobs WHERE id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("jobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *jobRepo) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Job, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM jobs WHERE tenant_id = $1", tenantID); err != nil {
		return nil, 0, fmt.Errorf("jobRepo.List count: %w", err)
	}

	var jobs []domain.Job
	err := r.db.SelectContext(ctx, &jobs,
		"SELECT * FROM jobs WHERE tenant_id = $1 ORDER BY title LIMIT $2 OFFSET $3", tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("jobRepo.List: %w", err)
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	job.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET title = $1, name_ar = $2, name_en = $3, updated_at = $4
		WHERE id = $5 AND tenant_id = $6`,
		job.Title, job.NameAR, job.NameEN, job.UpdatedAt, job.ID, job.TenantID)
	if err != nil {
		if isDuplicate(err, "") {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("jobRepo.Update: %w", err)
	}
	return expectOne(result)
}

func (r *jobRepo) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		return fmt.Errorf("jobRepo.Delete: %w", err)
	}
	return expectOne(result)
}
