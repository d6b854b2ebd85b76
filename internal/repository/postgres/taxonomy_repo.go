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

type taxonomyTable struct {
	name      string
	parentCol string
}

var taxonomyTables = map[domain.TaxonomyLevel]taxonomyTable{
	domain.LevelService:       {name: "services"},
	domain.LevelSubService:    {name: "sub_services", parentCol: "service_id"},
	domain.LevelSubSubService: {name: "sub_sub_services", parentCol: "sub_service_id"},
}

func (t taxonomyTable) selectCols() string {
	parent := "NULL::uuid"
	if t.parentCol != "" {
		parent = t.parentCol
	}
	return "id, tenant_id, " + parent + " AS parent_id, code, name_ar, name_en, sort_order, is_active, created_at"
}

func tableFor(level domain.TaxonomyLevel) (taxonomyTable, error) {
	t, ok := taxonomyTables[level]
	if !ok {
		return taxonomyTable{}, domain.ErrInvalidLevel
	}
	return t, nil
}

type taxonomyRepo struct {
	db *sqlx.DB
}

// NewTaxonomyRepo creates a new PostgreSQL-backed TaxonomyRepository.
func NewTaxonomyRepo(db *sqlx.DB) port.TaxonomyRepository {
	return &taxonomyRepo{db: db}
}

func (r *taxonomyRepo) GetTree(ctx context.Context, tenantID uuid.UUID) (*domain.Taxonomy, error) {
	tax := &domain.Taxonomy{}
	levels := []struct {
		level domain.TaxonomyLevel
		dest  *[]domain.TaxonomyNode
	}{
		{domain.LevelService, &tax.Services},
		{domain.LevelSubService, &tax.SubServices},
		{domain.LevelSubSubService, &tax.SubSubServices},
	}
	for _, l := range levels {
		t := taxonomyTables[l.level]
		err := r.db.SelectContext(ctx, l.dest,
			"SELECT "+t.selectCols()+" FROM "+t.name+" WHERE tenant_id = $1 ORDER BY sort_order, code", tenantID)
		if err != nil {
			return nil, fmt.Errorf("taxonomyRepo.GetTree %s: %w", t.name, err)
		}
		for i := range *l.dest {
			(*l.dest)[i].Level = l.level
		}
	}
	return tax, nil
}

func (r *taxonomyRepo) Create(ctx context.Context, node *domain.TaxonomyNode) error {
	t, err := tableFor(node.Level)
	if err != nil {
		return err
	}
	node.ID = uuid.New()
	node.CreatedAt = time.Now().UTC()

	var query string
	args := []any{node.ID, node.TenantID, node.Code, node.NameAR, node.NameEN, node.SortOrder, node.IsActive, node.CreatedAt}
	if t.parentCol == "" {
		query = `INSERT INTO services (id, tenant_id, code, name_ar, name_en, sort_order, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	} else {
		if node.ParentID == nil {
			return fmt.Errorf("taxonomyRepo.Create: %s requires a parent: %w", node.Level, domain.ErrNotFound)
		}
		query = `INSERT INTO ` + t.name + ` (id, tenant_id, code, name_ar, name_en, sort_order, is_active, created_at, ` + t.parentCol + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
		args = append(args, *node.ParentID)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isDuplicate(err, "") {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("taxonomyRepo.Create: %w", err)
	}
	return nil
}

func (r *taxonomyRepo) GetByID(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID) (*domain.TaxonomyNode, error) {
	t, err := tableFor(level)
	if err != nil {
		return nil, err
	}
	var node domain.TaxonomyNode
	err = r.db.GetContext(ctx, &node,
		"SELECT "+t.selectCols()+" FROM "+t.name+" WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("taxonomyRepo.GetByID: %w", err)
	}
	node.Level = level
	return &node, nil
}

func (r *taxonomyRepo) ListChildren(ctx context.Context, tenantID uuid.UUID, parentLevel domain.TaxonomyLevel, parentID uuid.UUID) ([]domain.TaxonomyNode, error) {
	childLevel := parentLevel.ChildLevel()
	t, err := tableFor(childLevel)
	if err != nil {
		return nil, err
	}
	nodes := []domain.TaxonomyNode{}
	err = r.db.SelectContext(ctx, &nodes,
		"SELECT "+t.selectCols()+" FROM "+t.name+" WHERE tenant_id = $1 AND "+t.parentCol+" = $2 ORDER BY sort_order, code",
		tenantID, parentID)
	if err != nil {
		return nil, fmt.Errorf("taxonomyRepo.ListChildren: %w", err)
	}
	for i := range nodes {
		nodes[i].Level = childLevel
	}
	return nodes, nil
}

func (r *taxonomyRepo) Update(ctx context.Context, node *domain.TaxonomyNode) error {
	t, err := tableFor(node.Level)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE `+t.name+` SET code = $1, name_ar = $2, name_en = $3, sort_order = $4, is_active = $5
		WHERE id = $6 AND tenant_id = $7`,
		node.Code, node.NameAR, node.NameEN, node.SortOrder, node.IsActive, node.ID, node.TenantID)
	if err != nil {
		if isDuplicate(err, "") {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("taxonomyRepo.Update: %w", err)
	}
	return expectOne(result)
}

// Delete removes a node. Children and permission rows go with it through
// ON DELETE CASCADE.
func (r *taxonomyRepo) Delete(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID) error {
	t, err := tableFor(level)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = $1 AND tenant_id = $2", id, tenantID)
	if err != nil {
		return fmt.Errorf("taxonomyRepo.Delete: %w", err)
	}
	return expectOne(result)
}
