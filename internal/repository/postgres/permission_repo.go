package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

var resourceColumns = map[domain.TaxonomyLevel]string{
	domain.LevelService:       "service_id",
	domain.LevelSubService:    "sub_service_id",
	domain.LevelSubSubService: "sub_sub_service_id",
}

type permissionRepo struct {
	db *sqlx.DB
}

// NewPermissionRepo creates a new PostgreSQL-backed PermissionRepository.
func NewPermissionRepo(db *sqlx.DB) port.PermissionRepository {
	return &permissionRepo{db: db}
}

func (r *permissionRepo) ListJobPermissions(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.PermissionRow, error) {
	return r.list(ctx, "job_permissions", "job_id", tenantID, jobID)
}

func (r *permissionRepo) ListUserPermissions(ctx context.Context, tenantID, userID uuid.UUID) ([]domain.PermissionRow, error) {
	return r.list(ctx, "user_permissions", "user_id", tenantID, userID)
}

func (r *permissionRepo) list(ctx context.Context, table, subjectCol string, tenantID, subjectID uuid.UUID) ([]domain.PermissionRow, error) {
	rows := []domain.PermissionRow{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, tenant_id, `+subjectCol+` AS subject_id, service_id, sub_service_id, sub_sub_service_id, is_allowed, created_at
		FROM `+table+` WHERE tenant_id = $1 AND `+subjectCol+` = $2 ORDER BY created_at`,
		tenantID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("permissionRepo.list %s: %w", table, err)
	}
	return rows, nil
}

func (r *permissionRepo) ReplaceJobPermissions(ctx context.Context, tenantID, jobID uuid.UUID, rows []domain.PermissionRow) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceRows(ctx, tx, "job_permissions", "job_id", tenantID, jobID, rows)
	})
	if err != nil {
		return fmt.Errorf("permissionRepo.ReplaceJobPermissions: %w", err)
	}
	return nil
}

func (r *permissionRepo) ReplaceUserPermissions(ctx context.Context, tenantID, userID uuid.UUID, rows []domain.PermissionRow) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return replaceRows(ctx, tx, "user_permissions", "user_id", tenantID, userID, rows)
	})
	if err != nil {
		return fmt.Errorf("permissionRepo.ReplaceUserPermissions: %w", err)
	}
	return nil
}

func replaceRows(ctx context.Context, tx *sqlx.Tx, table, subjectCol string, tenantID, subjectID uuid.UUID, rows []domain.PermissionRow) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE tenant_id = $1 AND `+subjectCol+` = $2`, tenantID, subjectID); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	now := time.Now().UTC()
	for i := range rows {
		row := &rows[i]
		row.ID = uuid.New()
		row.TenantID = tenantID
		row.SubjectID = subjectID
		row.CreatedAt = now
		if err := insertRow(ctx, tx, table, subjectCol, row); err != nil {
			return err
		}
	}
	return nil
}

func insertRow(ctx context.Context, tx *sqlx.Tx, table, subjectCol string, row *domain.PermissionRow) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO `+table+` (id, tenant_id, `+subjectCol+`, service_id, sub_service_id, sub_sub_service_id, is_allowed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		row.ID, row.TenantID, row.SubjectID, row.ServiceID, row.SubServiceID, row.SubSubServiceID, row.IsAllowed, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", table, err)
	}
	return nil
}

// UpsertUserPermission replaces the single exception row for the row's
// resource.
func (r *permissionRepo) UpsertUserPermission(ctx context.Context, row *domain.PermissionRow) error {
	level, resourceID, err := rowResource(row)
	if err != nil {
		return err
	}
	col := resourceColumns[level]
	row.ID = uuid.New()
	row.CreatedAt = time.Now().UTC()

	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM user_permissions WHERE tenant_id = $1 AND user_id = $2 AND `+col+` = $3`,
			row.TenantID, row.SubjectID, resourceID); err != nil {
			return fmt.Errorf("clearing user_permissions: %w", err)
		}
		return insertRow(ctx, tx, "user_permissions", "user_id", row)
	})
	if err != nil {
		return fmt.Errorf("permissionRepo.UpsertUserPermission: %w", err)
	}
	return nil
}

func (r *permissionRepo) DeleteUserPermission(ctx context.Context, tenantID, userID uuid.UUID, level domain.TaxonomyLevel, resourceID uuid.UUID) error {
	col, ok := resourceColumns[level]
	if !ok {
		return domain.ErrInvalidLevel
	}
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_permissions WHERE tenant_id = $1 AND user_id = $2 AND `+col+` = $3`,
		tenantID, userID, resourceID)
	if err != nil {
		return fmt.Errorf("permissionRepo.DeleteUserPermission: %w", err)
	}
	return expectOne(result)
}

func rowResource(row *domain.PermissionRow) (domain.TaxonomyLevel, uuid.UUID, error) {
	switch {
	case row.SubSubServiceID != nil:
		return domain.LevelSubSubService, *row.SubSubServiceID, nil
	case row.SubServiceID != nil:
		return domain.LevelSubService, *row.SubServiceID, nil
	case row.ServiceID != nil:
		return domain.LevelService, *row.ServiceID, nil
	}
	return "", uuid.Nil, domain.ErrUnknownResource
}
