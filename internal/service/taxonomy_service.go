package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// CreateNodeInput is the DTO for adding a taxonomy node.
type CreateNodeInput struct {
	Level     domain.TaxonomyLevel `json:"level" binding:"required"`
	ParentID  *uuid.UUID           `json:"parent_id"`
	Code      string               `json:"code" binding:"required"`
	NameAR    string               `json:"name_ar" binding:"required"`
	NameEN    string               `json:"name_en"`
	SortOrder int                  `json:"sort_order"`
}

// UpdateNodeInput is the DTO for changing a taxonomy node.
type UpdateNodeInput struct {
	Code      *string `json:"code"`
	NameAR    *string `json:"name_ar"`
	NameEN    *string `json:"name_en"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// TreeNode is a taxonomy node with its children, used for the admin tree view.
type TreeNode struct {
	domain.TaxonomyNode
	Children []TreeNode `json:"children,omitempty"`
}

// TaxonomyService manages the three-level service taxonomy.
type TaxonomyService interface {
	Tree(ctx context.Context, tenantID uuid.UUID) ([]TreeNode, error)
	ListChildren(ctx context.Context, tenantID uuid.UUID, parentLevel domain.TaxonomyLevel, parentID uuid.UUID) ([]domain.TaxonomyNode, error)
	Create(ctx context.Context, tenantID uuid.UUID, input CreateNodeInput) (*domain.TaxonomyNode, error)
	Update(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID, input UpdateNodeInput) (*domain.TaxonomyNode, error)
	Delete(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID) error
}

type taxonomyService struct {
	repo  port.TaxonomyRepository
	cache port.PermissionCache
}

// NewTaxonomyService creates a new TaxonomyService implementation.
func NewTaxonomyService(repo port.TaxonomyRepository, cache port.PermissionCache) TaxonomyService {
	return &taxonomyService{repo: repo, cache: cache}
}

// Tree returns every node, including inactive ones, nested under its parent.
func (s *taxonomyService) Tree(ctx context.Context, tenantID uuid.UUID) ([]TreeNode, error) {
	tax, err := s.repo.GetTree(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return nest(tax), nil
}

func nest(tax *domain.Taxonomy) []TreeNode {
	leaves := make(map[uuid.UUID][]TreeNode)
	for _, n := range tax.SubSubServices {
		if n.ParentID != nil {
			leaves[*n.ParentID] = append(leaves[*n.ParentID], TreeNode{TaxonomyNode: n})
		}
	}
	subs := make(map[uuid.UUID][]TreeNode)
	for _, n := range tax.SubServices {
		if n.ParentID != nil {
			subs[*n.ParentID] = append(subs[*n.ParentID], TreeNode{TaxonomyNode: n, Children: leaves[n.ID]})
		}
	}
	roots := make([]TreeNode, 0, len(tax.Services))
	for _, n := range tax.Services {
		roots = append(roots, TreeNode{TaxonomyNode: n, Children: subs[n.ID]})
	}
	return roots
}

func (s *taxonomyService) ListChildren(ctx context.Context, tenantID uuid.UUID, parentLevel domain.TaxonomyLevel, parentID uuid.UUID) ([]domain.TaxonomyNode, error) {
	if parentLevel.ChildLevel() == "" {
		return nil, domain.ErrInvalidLevel
	}
	if _, err := s.repo.GetByID(ctx, tenantID, parentLevel, parentID); err != nil {
		return nil, err
	}
	return s.repo.ListChildren(ctx, tenantID, parentLevel, parentID)
}

// codeTaken reports whether code is used by any node of the tenant other
// than exceptID. Codes are unique across all three levels.
func (s *taxonomyService) codeTaken(ctx context.Context, tenantID uuid.UUID, code string, exceptID uuid.UUID) (bool, error) {
	tax, err := s.repo.GetTree(ctx, tenantID)
	if err != nil {
		return false, err
	}
	for _, level := range [][]domain.TaxonomyNode{tax.Services, tax.SubServices, tax.SubSubServices} {
		for i := range level {
			if level[i].ID != exceptID && strings.EqualFold(level[i].Code, code) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *taxonomyService) Create(ctx context.Context, tenantID uuid.UUID, input CreateNodeInput) (*domain.TaxonomyNode, error) {
	if !input.Level.Valid() {
		return nil, domain.ErrInvalidLevel
	}
	if input.Level == domain.LevelService {
		if input.ParentID != nil {
			return nil, domain.ErrValidation
		}
	} else {
		if input.ParentID == nil {
			return nil, domain.ErrValidation
		}
		if _, err := s.repo.GetByID(ctx, tenantID, input.Level.ParentLevel(), *input.ParentID); err != nil {
			return nil, err
		}
	}

	code := strings.TrimSpace(input.Code)
	taken, err := s.codeTaken(ctx, tenantID, code, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicateCode
	}

	node := &domain.TaxonomyNode{
		TenantID:  tenantID,
		Level:     input.Level,
		ParentID:  input.ParentID,
		Code:      code,
		NameAR:    input.NameAR,
		NameEN:    input.NameEN,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, node); err != nil {
		return nil, err
	}
	return node, nil
}

func (s *taxonomyService) Update(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID, input UpdateNodeInput) (*domain.TaxonomyNode, error) {
	if !level.Valid() {
		return nil, domain.ErrInvalidLevel
	}
	node, err := s.repo.GetByID(ctx, tenantID, level, id)
	if err != nil {
		return nil, err
	}

	if input.Code != nil {
		code := strings.TrimSpace(*input.Code)
		taken, err := s.codeTaken(ctx, tenantID, code, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrDuplicateCode
		}
		node.Code = code
	}
	if input.NameAR != nil {
		node.NameAR = *input.NameAR
	}
	if input.NameEN != nil {
		node.NameEN = *input.NameEN
	}
	if input.SortOrder != nil {
		node.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		node.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, node); err != nil {
		return nil, err
	}
	// Codes and active flags feed every resolved set of the tenant.
	if err := s.cache.InvalidateTenant(ctx, tenantID); err != nil {
		return nil, err
	}
	return node, nil
}

// Delete removes the node and, through foreign keys, its descendants and
// every permission row pointing at them.
func (s *taxonomyService) Delete(ctx context.Context, tenantID uuid.UUID, level domain.TaxonomyLevel, id uuid.UUID) error {
	if !level.Valid() {
		return domain.ErrInvalidLevel
	}
	if err := s.repo.Delete(ctx, tenantID, level, id); err != nil {
		return err
	}
	return s.cache.InvalidateTenant(ctx, tenantID)
}
