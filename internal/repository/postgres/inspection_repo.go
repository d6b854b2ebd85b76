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

type inspectionRepo struct {
	db *sqlx.DB
}

// NewInspectionRepo creates a new PostgreSQL-backed InspectionRepository.
func NewInspectionRepo(db *sqlx.DB) port.InspectionRepository {
	return &inspectionRepo{db: db}
}

func (r *inspectionRepo) Create(ctx context.Context, in *domain.Inspection) error {
	in.ID = uuid.New()
	in.CreatedAt = time.Now().UTC()
	if in.InspectedAt.IsZero() {
		in.InspectedAt = in.CreatedAt
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inspections (id, tenant_id, inspector_id, building_id, subbuilding_id, inspected_at,
		checklist, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		in.ID, in.TenantID, in.InspectorID, in.BuildingID, in.SubbuildingID, in.InspectedAt,
		in.Checklist, in.Status, in.Notes, in.CreatedAt)
	if err != nil {
		return fmt.Errorf("inspectionRepo.Create: %w", err)
	}
	return nil
}

func (r *inspectionRepo) GetByID(ctx context.Context, tenantID, inspectionID uuid.UUID) (*domain.Inspection, error) {
	var in domain.Inspection
	err := r.db.GetContext(ctx, &in,
		"SELECT * FROM inspections WHERE id = $1 AND tenant_id = $2", inspectionID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("inspectionRepo.GetByID: %w", err)
	}
	return &in, nil
}

func (r *inspectionRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.InspectionFilter, offset, limit int) ([]domain.Inspection, int, error) {
	w := newWhere("tenant_id = ?", tenantID)
	if filter.BuildingID != nil {
		w.and("building_id = ?", *filter.BuildingID)
	}
	if filter.InspectorID != nil {
		w.and("inspector_id = ?", *filter.InspectorID)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM inspections "+w.String(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("inspectionRepo.List count: %w", err)
	}

	pageClause, args := w.page(limit, offset)
	var inspections []domain.Inspection
	err := r.db.SelectContext(ctx, &inspections,
		"SELECT * FROM inspections "+w.String()+" ORDER BY inspected_at DESC"+pageClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("inspectionRepo.List: %w", err)
	}
	return inspections, total, nil
}
