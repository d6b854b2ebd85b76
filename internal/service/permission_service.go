package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/permission"
	"hejazi/internal/port"
)

// PermissionEntry is one explicit allow or deny row on a taxonomy node.
type PermissionEntry struct {
	Level      domain.TaxonomyLevel `json:"level" binding:"required"`
	ResourceID uuid.UUID            `json:"resource_id" binding:"required"`
	IsAllowed  bool                 `json:"is_allowed"`
}

// Key returns the node addressed by the entry.
func (e PermissionEntry) Key() (permission.Key, error) {
	if !e.Level.Valid() {
		return permission.Key{}, domain.ErrInvalidLevel
	}
	return permission.Key{Level: e.Level, ID: e.ResourceID}, nil
}

func entriesFromRows(rows []domain.PermissionRow) []PermissionEntry {
	entries := make([]PermissionEntry, 0, len(rows))
	for i := range rows {
		k, ok := permission.KeyOf(&rows[i])
		if !ok {
			continue
		}
		entries = append(entries, PermissionEntry{Level: k.Level, ResourceID: k.ID, IsAllowed: rows[i].IsAllowed})
	}
	return entries
}

// PermissionService owns job defaults, user exceptions and the resolved view
// built from them. Every allow/deny decision in the application goes
// through Effective.
type PermissionService interface {
	JobPermissions(ctx context.Context, tenantID, jobID uuid.UUID) ([]PermissionEntry, error)
	SaveJobPermissions(ctx context.Context, tenantID, jobID uuid.UUID, entries []PermissionEntry) error
	UserExceptions(ctx context.Context, tenantID, userID uuid.UUID) ([]PermissionEntry, error)
	SaveUserExceptions(ctx context.Context, tenantID, userID uuid.UUID, entries []PermissionEntry) error
	UpsertUserException(ctx context.Context, tenantID, userID uuid.UUID, entry PermissionEntry) error
	DeleteUserException(ctx context.Context, tenantID, userID uuid.UUID, key permission.Key) error
	Effective(ctx context.Context, tenantID, userID uuid.UUID) (permission.Set, error)
	Menu(ctx context.Context, tenantID, userID uuid.UUID) ([]permission.MenuItem, error)
	IsAllowed(ctx context.Context, tenantID, userID uuid.UUID, code string) (bool, error)
}

type permissionService struct {
	permRepo     port.PermissionRepository
	taxonomyRepo port.TaxonomyRepository
	userRepo     port.UserRepository
	jobRepo      port.JobRepository
	cache        port.PermissionCache
}

// NewPermissionService creates a new PermissionService implementation.
func NewPermissionService(
	permRepo port.PermissionRepository,
	taxonomyRepo port.TaxonomyRepository,
	userRepo port.UserRepository,
	jobRepo port.JobRepository,
	cache port.PermissionCache,
) PermissionService {
	return &permissionService{
		permRepo:     permRepo,
		taxonomyRepo: taxonomyRepo,
		userRepo:     userRepo,
		jobRepo:      jobRepo,
		cache:        cache,
	}
}

func (s *permissionService) tree(ctx context.Context, tenantID uuid.UUID) (*permission.Tree, error) {
	tax, err := s.taxonomyRepo.GetTree(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("permissionService.tree: %w", err)
	}
	return permission.NewTree(tax), nil
}

// overrides converts entries into an override map after checking every key
// against the tenant's taxonomy.
func (s *permissionService) overrides(ctx context.Context, tenantID uuid.UUID, entries []PermissionEntry) (permission.Overrides, error) {
	tree, err := s.tree(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	o := make(permission.Overrides, len(entries))
	for _, e := range entries {
		k, err := e.Key()
		if err != nil {
			return nil, err
		}
		if err := tree.Validate(k); err != nil {
			return nil, err
		}
		o[k] = e.IsAllowed
	}
	return o, nil
}

func (s *permissionService) JobPermissions(ctx context.Context, tenantID, jobID uuid.UUID) ([]PermissionEntry, error) {
	if _, err := s.jobRepo.GetByID(ctx, tenantID, jobID); err != nil {
		return nil, err
	}
	rows, err := s.permRepo.ListJobPermissions(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	return entriesFromRows(rows), nil
}

// SaveJobPermissions replaces the job's defaults. Only grants are stored; a
// missing job row already means deny.
func (s *permissionService) SaveJobPermissions(ctx context.Context, tenantID, jobID uuid.UUID, entries []PermissionEntry) error {
	if _, err := s.jobRepo.GetByID(ctx, tenantID, jobID); err != nil {
		return err
	}
	o, err := s.overrides(ctx, tenantID, entries)
	if err != nil {
		return err
	}
	if err := s.permRepo.ReplaceJobPermissions(ctx, tenantID, jobID, permission.ToRows(tenantID, jobID, o, true)); err != nil {
		return err
	}
	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("job_id", jobID.String()).
		Int("entries", len(o)).
		Msg("permissionService.SaveJobPermissions: job defaults replaced")
	s.invalidateTenant(ctx, tenantID)
	return nil
}

func (s *permissionService) UserExceptions(ctx context.Context, tenantID, userID uuid.UUID) ([]PermissionEntry, error) {
	if _, err := s.userRepo.GetByID(ctx, tenantID, userID); err != nil {
		return nil, err
	}
	rows, err := s.permRepo.ListUserPermissions(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	return entriesFromRows(rows), nil
}

// SaveUserExceptions replaces the user's exceptions. Both allows and denies
// are stored, since a deny must shadow a job grant.
func (s *permissionService) SaveUserExceptions(ctx context.Context, tenantID, userID uuid.UUID, entries []PermissionEntry) error {
	if _, err := s.userRepo.GetByID(ctx, tenantID, userID); err != nil {
		return err
	}
	o, err := s.overrides(ctx, tenantID, entries)
	if err != nil {
		return err
	}
	if err := s.permRepo.ReplaceUserPermissions(ctx, tenantID, userID, permission.ToRows(tenantID, userID, o, false)); err != nil {
		return err
	}
	s.invalidateUser(ctx, tenantID, userID)
	return nil
}

func (s *permissionService) UpsertUserException(ctx context.Context, tenantID, userID uuid.UUID, entry PermissionEntry) error {
	if _, err := s.userRepo.GetByID(ctx, tenantID, userID); err != nil {
		return err
	}
	o, err := s.overrides(ctx, tenantID, []PermissionEntry{entry})
	if err != nil {
		return err
	}
	k, _ := entry.Key()
	row := permission.Row(tenantID, userID, k, o[k])
	if err := s.permRepo.UpsertUserPermission(ctx, &row); err != nil {
		return err
	}
	s.invalidateUser(ctx, tenantID, userID)
	return nil
}

// DeleteUserException removes one exception so the job default applies again.
func (s *permissionService) DeleteUserException(ctx context.Context, tenantID, userID uuid.UUID, key permission.Key) error {
	if err := s.permRepo.DeleteUserPermission(ctx, tenantID, userID, key.Level, key.ID); err != nil {
		return err
	}
	s.invalidateUser(ctx, tenantID, userID)
	return nil
}

// Effective returns the user's resolved permissions, from cache when possible.
// Admins receive every node.
func (s *permissionService) Effective(ctx context.Context, tenantID, userID uuid.UUID) (permission.Set, error) {
	grants, ok, err := s.cache.Get(ctx, tenantID, userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("permissionService.Effective: cache read failed")
	} else if ok {
		return permission.FromGrants(grants), nil
	}

	set, err := s.resolve(ctx, tenantID, userID)
	if err != nil {
		return permission.Set{}, err
	}
	if err := s.cache.Set(ctx, tenantID, userID, set.Grants()); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("permissionService.Effective: cache write failed")
	}
	return set, nil
}

func (s *permissionService) resolve(ctx context.Context, tenantID, userID uuid.UUID) (permission.Set, error) {
	user, err := s.userRepo.GetByID(ctx, tenantID, userID)
	if err != nil {
		return permission.Set{}, err
	}
	tree, err := s.tree(ctx, tenantID)
	if err != nil {
		return permission.Set{}, err
	}
	if user.Role == domain.RoleAdmin {
		return permission.Full(tree), nil
	}

	var job permission.Overrides
	if user.JobID != nil {
		rows, err := s.permRepo.ListJobPermissions(ctx, tenantID, *user.JobID)
		if err != nil {
			return permission.Set{}, err
		}
		job = permission.FromRows(rows)
	}
	rows, err := s.permRepo.ListUserPermissions(ctx, tenantID, userID)
	if err != nil {
		return permission.Set{}, err
	}
	return permission.Resolve(tree, job, permission.FromRows(rows)), nil
}

func (s *permissionService) Menu(ctx context.Context, tenantID, userID uuid.UUID) ([]permission.MenuItem, error) {
	set, err := s.Effective(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	tree, err := s.tree(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return permission.Menu(tree, set), nil
}

func (s *permissionService) IsAllowed(ctx context.Context, tenantID, userID uuid.UUID, code string) (bool, error) {
	set, err := s.Effective(ctx, tenantID, userID)
	if err != nil {
		return false, err
	}
	return set.AllowedCode(code), nil
}

func (s *permissionService) invalidateUser(ctx context.Context, tenantID, userID uuid.UUID) {
	if err := s.cache.InvalidateUser(ctx, tenantID, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("permissionService: cache invalidation failed")
	}
}

func (s *permissionService) invalidateTenant(ctx context.Context, tenantID uuid.UUID) {
	if err := s.cache.InvalidateTenant(ctx, tenantID); err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID.String()).Msg("permissionService: cache invalidation failed")
	}
}
