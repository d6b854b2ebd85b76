package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.New()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.FavoriteServices == nil {
		user.FavoriteServices = pq.StringArray{}
	}

	query := `INSERT INTO users (id, tenant_id, job_id, email, password_hash, full_name, phone,
		employee_number, role, is_active, favorite_services, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.TenantID, user.JobID, user.Email, user.PasswordHash, user.FullName,
		user.Phone, user.EmployeeNumber, user.Role, user.IsActive, user.FavoriteServices,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isDuplicate(err, "") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("userRepo.Create: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT * FROM users WHERE id = $1 AND tenant_id = $2", userID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT * FROM users WHERE tenant_id = $1 AND lower(email) = lower($2)", tenantID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByEmail: %w", err)
	}
	return &user, nil
}

func userWhere(tenantID uuid.UUID, f port.UserFilter) *whereBuilder {
	w := newWhere("tenant_id = ?", tenantID)
	if f.JobID != nil {
		w.and("job_id = ?", *f.JobID)
	}
	if f.Role != nil {
		w.and("role = ?", *f.Role)
	}
	if f.ActiveOnly {
		w.and("is_active = ?", true)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		w.and("(full_name ILIKE ? OR email ILIKE ?)", "%"+s+"%")
	}
	return w
}

func (r *userRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.UserFilter, offset, limit int) ([]domain.User, int, error) {
	w := userWhere(tenantID, filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users "+w.String(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("userRepo.List count: %w", err)
	}

	pageClause, args := w.page(limit, offset)
	users := []domain.User{}
	err := r.db.SelectContext(ctx, &users,
		"SELECT * FROM users "+w.String()+" ORDER BY full_name, created_at"+pageClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("userRepo.List: %w", err)
	}
	return users, total, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := `UPDATE users SET email = $1, full_name = $2, phone = $3, employee_number = $4,
		role = $5, is_active = $6, job_id = $7, updated_at = $8
		WHERE id = $9 AND tenant_id = $10`
	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.FullName, user.Phone, user.EmployeeNumber,
		user.Role, user.IsActive, user.JobID, user.UpdatedAt, user.ID, user.TenantID)
	if err != nil {
		if isDuplicate(err, "") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	return expectOne(result)
}

func (r *userRepo) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM users WHERE id = $1 AND tenant_id = $2", userID, tenantID)
	if err != nil {
		return fmt.Errorf("userRepo.Delete: %w", err)
	}
	return expectOne(result)
}

func (r *userRepo) SetMediaKey(ctx context.Context, tenantID, userID uuid.UUID, kind domain.MediaKind, key string) error {
	var column string
	switch kind {
	case domain.MediaAvatar:
		column = "avatar_key"
	case domain.MediaSignature:
		column = "signature_key"
	default:
		return fmt.Errorf("userRepo.SetMediaKey: unknown media kind %q", kind)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET `+column+` = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`,
		key, userID, tenantID)
	if err != nil {
		return fmt.Errorf("userRepo.SetMediaKey: %w", err)
	}
	return expectOne(result)
}

func (r *userRepo) SetFavorites(ctx context.Context, tenantID, userID uuid.UUID, codes []string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET favorite_services = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`,
		pq.StringArray(codes), userID, tenantID)
	if err != nil {
		return fmt.Errorf("userRepo.SetFavorites: %w", err)
	}
	return expectOne(result)
}

func (r *userRepo) SetFirebaseUID(ctx context.Context, tenantID, userID uuid.UUID, uid string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET firebase_uid = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`,
		uid, userID, tenantID)
	if err != nil {
		return fmt.Errorf("userRepo.SetFirebaseUID: %w", err)
	}
	return expectOne(result)
}

func (r *userRepo) SetPlatformAdmin(ctx context.Context, tenantID, userID uuid.UUID, enabled bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_platform_admin = $1, updated_at = NOW() WHERE id = $2 AND tenant_id = $3`,
		enabled, userID, tenantID)
	if err != nil {
		return fmt.Errorf("userRepo.SetPlatformAdmin: %w", err)
	}
	return expectOne(result)
}
