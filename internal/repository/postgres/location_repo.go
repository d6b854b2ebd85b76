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

type locationRepo struct {
	db *sqlx.DB
}

// NewLocationRepo creates a new PostgreSQL-backed LocationRepository.
func NewLocationRepo(db *sqlx.DB) port.LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) CreateSector(ctx context.Context, s *domain.Sector) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sectors (id, tenant_id, name_ar, name_en, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.TenantID, s.NameAR, s.NameEN, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("locationRepo.CreateSector: %w", err)
	}
	return nil
}

func (r *locationRepo) ListSectors(ctx context.Context, tenantID uuid.UUID) ([]domain.Sector, error) {
	sectors := []domain.Sector{}
	if err := r.db.SelectContext(ctx, &sectors,
		"SELECT * FROM sectors WHERE tenant_id = $1 ORDER BY name_en", tenantID); err != nil {
		return nil, fmt.Errorf("locationRepo.ListSectors: %w", err)
	}
	return sectors, nil
}

func (r *locationRepo) DeleteSector(ctx context.Context, tenantID, sectorID uuid.UUID) error {
	return r.deleteFrom(ctx, "sectors", tenantID, sectorID)
}

func (r *locationRepo) CreateBuilding(ctx context.Context, b *domain.Building) error {
	b.ID = uuid.New()
	b.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO buildings (id, tenant_id, sector_id, code, name, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.TenantID, b.SectorID, b.Code, b.Name, b.CreatedAt)
	if err != nil {
		if isDuplicate(err, "") {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("locationRepo.CreateBuilding: %w", err)
	}
	return nil
}

func (r *locationRepo) GetBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) (*domain.Building, error) {
	var b domain.Building
	err := r.db.GetContext(ctx, &b, "SELECT * FROM buildings WHERE id = $1 AND tenant_id = $2", buildingID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("locationRepo.GetBuilding: %w", err)
	}
	return &b, nil
}

func (r *locationRepo) ListBuildings(ctx context.Context, tenantID uuid.UUID, sectorID *uuid.UUID) ([]domain.Building, error) {
	w := newWhere("tenant_id = ?", tenantID)
	if sectorID != nil {
		w.and("sector_id = ?", *sectorID)
	}
	buildings := []domain.Building{}
	if err := r.db.SelectContext(ctx, &buildings,
		"SELECT * FROM buildings "+w.String()+" ORDER BY code", w.args...); err != nil {
		return nil, fmt.Errorf("locationRepo.ListBuildings: %w", err)
	}
	return buildings, nil
}

func (r *locationRepo) DeleteBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) error {
	return r.deleteFrom(ctx, "buildings", tenantID, buildingID)
}

func (r *locationRepo) CreateSubbuilding(ctx context.Context, s *domain.Subbuilding) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subbuildings (id, tenant_id, building_id, name, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.TenantID, s.BuildingID, s.Name, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("locationRepo.CreateSubbuilding: %w", err)
	}
	return nil
}

func (r *locationRepo) GetSubbuilding(ctx context.Context, tenantID, subbuildingID uuid.UUID) (*domain.Subbuilding, error) {
	var s domain.Subbuilding
	err := r.db.GetContext(ctx, &s, "SELECT * FROM subbuildings WHERE id = $1 AND tenant_id = $2", subbuildingID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("locationRepo.GetSubbuilding: %w", err)
	}
	return &s, nil
}

func (r *locationRepo) ListSubbuildings(ctx context.Context, tenantID, buildingID uuid.UUID) ([]domain.Subbuilding, error) {
	subs := []domain.Subbuilding{}
	if err := r.db.SelectContext(ctx, &subs,
		"SELECT * FROM subbuildings WHERE tenant_id = $1 AND building_id = $2 ORDER BY name",
		tenantID, buildingID); err != nil {
		return nil, fmt.Errorf("locationRepo.ListSubbuildings: %w", err)
	}
	return subs, nil
}

func (r *locationRepo) DeleteSubbuilding(ctx context.Context, tenantID, subbuildingID uuid.UUID) error {
	return r.deleteFrom(ctx, "subbuildings", tenantID, subbuildingID)
}

func (r *locationRepo) deleteFrom(ctx context.Context, table string, tenantID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return fmt.Errorf("locationRepo.delete %s: %w", table, err)
	}
	return expectOne(result)
}

type distributionRepo struct {
	db *sqlx.DB
}

// NewDistributionRepo creates a new PostgreSQL-backed DistributionRepository.
func NewDistributionRepo(db *sqlx.DB) port.DistributionRepository {
	return &distributionRepo{db: db}
}

func (r *distributionRepo) Create(ctx context.Context, d *domain.Distribution) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO distribution (id, tenant_id, inspector_id, sector_id, building_id, subbuilding_id, assigned_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.TenantID, d.InspectorID, d.SectorID, d.BuildingID, d.SubbuildingID, d.AssignedBy, d.CreatedAt)
	if err != nil {
		if isDuplicate(err, "") {
			return domain.ErrDuplicateAssignment
		}
		return fmt.Errorf("distributionRepo.Create: %w", err)
	}
	return nil
}

func (r *distributionRepo) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Distribution, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM distribution WHERE tenant_id = $1", tenantID); err != nil {
		return nil, 0, fmt.Errorf("distributionRepo.List count: %w", err)
	}
	var rows []domain.Distribution
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM distribution WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("distributionRepo.List: %w", err)
	}
	return rows, total, nil
}

func (r *distributionRepo) ListByInspector(ctx context.Context, tenantID, inspectorID uuid.UUID) ([]domain.Distribution, error) {
	rows := []domain.Distribution{}
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM distribution WHERE tenant_id = $1 AND inspector_id = $2 ORDER BY created_at",
		tenantID, inspectorID)
	if err != nil {
		return nil, fmt.Errorf("distributionRepo.ListByInspector: %w", err)
	}
	return rows, nil
}

func (r *distributionRepo) Delete(ctx context.Context, tenantID, distributionID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM distribution WHERE id = $1 AND tenant_id = $2", distributionID, tenantID)
	if err != nil {
		return fmt.Errorf("distributionRepo.Delete: %w", err)
	}
	return expectOne(result)
}

func (r *distributionRepo) IsAssigned(ctx context.Context, tenantID, inspectorID, buildingID uuid.UUID, subbuildingID *uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.GetContext(ctx, &ok,
		`SELECT EXISTS(
			SELECT 1 FROM distribution
			WHERE tenant_id = $1 AND inspector_id = $2 AND building_id = $3
			  AND (subbuilding_id IS NULL OR subbuilding_id = $4)
		)`,
		tenantID, inspectorID, buildingID, subbuildingID)
	if err != nil {
		return false, fmt.Errorf("distributionRepo.IsAssigned: %w", err)
	}
	return ok, nil
}
