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

type violationRepo struct {
	db *sqlx.DB
}

// NewViolationRepo creates a new PostgreSQL-backed ViolationRepository.
func NewViolationRepo(db *sqlx.DB) port.ViolationRepository {
	return &violationRepo{db: db}
}

func (r *violationRepo) Create(ctx context.Context, v *domain.Violation) error {
	v.ID = uuid.New()
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	v.Status = domain.ViolationOpen

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO violations (id, tenant_id, company_id, building_id, reported_by, title, description,
		severity, occurred_at, penalty_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		v.ID, v.TenantID, v.CompanyID, v.BuildingID, v.ReportedBy, v.Title, v.Description,
		v.Severity, v.OccurredAt, v.PenaltyAmount, v.Status, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("violationRepo.Create: %w", err)
	}
	return nil
}

func (r *violationRepo) GetByID(ctx context.Context, tenantID, violationID uuid.UUID) (*domain.Violation, error) {
	var v domain.Violation
	err := r.db.GetContext(ctx, &v,
		"SELECT * FROM violations WHERE id = $1 AND tenant_id = $2", violationID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("violationRepo.GetByID: %w", err)
	}
	return &v, nil
}

func violationWhere(prefix string, tenantID uuid.UUID, f port.ViolationFilter) *whereBuilder {
	w := newWhere(prefix+"tenant_id = ?", tenantID)
	if f.CompanyID != nil {
		w.and(prefix+"company_id = ?", *f.CompanyID)
	}
	if f.Status != nil {
		w.and(prefix+"status = ?", *f.Status)
	}
	return w
}

func (r *violationRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.ViolationFilter, offset, limit int) ([]domain.Violation, int, error) {
	w := violationWhere("", tenantID, filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM violations "+w.String(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("violationRepo.List count: %w", err)
	}

	pageClause, args := w.page(limit, offset)
	var violations []domain.Violation
	err := r.db.SelectContext(ctx, &violations,
		"SELECT * FROM violations "+w.String()+" ORDER BY occurred_at DESC"+pageClause, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("violationRepo.List: %w", err)
	}
	return violations, total, nil
}

func (r *violationRepo) Close(ctx context.Context, tenantID, violationID uuid.UUID, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE violations SET status = $1, closed_at = $2, updated_at = $2
		WHERE id = $3 AND tenant_id = $4 AND status = $5`,
		domain.ViolationClosed, at, violationID, tenantID, domain.ViolationOpen)
	if err != nil {
		return fmt.Errorf("violationRepo.Close: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		// Distinguish a missing violation from one that was already closed.
		if _, err := r.GetByID(ctx, tenantID, violationID); err != nil {
			return err
		}
		return domain.ErrViolationClosed
	}
	return nil
}

func (r *violationRepo) CreateSend(ctx context.Context, send *domain.ViolationSend) error {
	send.ID = uuid.New()
	send.SentAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO violation_sends (id, violation_id, tenant_id, sent_by, channel, recipients, subject, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		send.ID, send.ViolationID, send.TenantID, send.SentBy, send.Channel, send.Recipients, send.Subject, send.SentAt)
	if err != nil {
		return fmt.Errorf("violationRepo.CreateSend: %w", err)
	}
	return nil
}

func (r *violationRepo) ListSends(ctx context.Context, tenantID, violationID uuid.UUID) ([]domain.ViolationSend, error) {
	sends := []domain.ViolationSend{}
	err := r.db.SelectContext(ctx, &sends,
		"SELECT * FROM violation_sends WHERE violation_id = $1 AND tenant_id = $2 ORDER BY sent_at DESC",
		violationID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("violationRepo.ListSends: %w", err)
	}
	return sends, nil
}

func (r *violationRepo) ListForExport(ctx context.Context, tenantID uuid.UUID, filter port.ViolationFilter) ([]port.ViolationExportRow, error) {
	w := violationWhere("v.", tenantID, filter)

	rows := []port.ViolationExportRow{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT v.*, c.name AS company_name, COALESCE(b.name, '') AS building_name,
			COALESCE(u.full_name, '') AS reporter_name
		FROM violations v
		JOIN companies c ON c.id = v.company_id
		LEFT JOIN buildings b ON b.id = v.building_id
		LEFT JOIN users u ON u.id = v.reported_by
		`+w.String()+`
		ORDER BY v.occurred_at DESC`,
		w.args...)
	if err != nil {
		return nil, fmt.Errorf("violationRepo.ListForExport: %w", err)
	}
	return rows, nil
}
