package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

type questionRepo struct {
	db *sqlx.DB
}

// NewQuestionRepo creates a new PostgreSQL-backed QuestionRepository.
func NewQuestionRepo(db *sqlx.DB) port.QuestionRepository {
	return &questionRepo{db: db}
}

func (r *questionRepo) Create(ctx context.Context, q *domain.SecurityQuestion) error {
	q.ID = uuid.New()
	q.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO security_questions (id, tenant_id, text_ar, text_en, category, max_score, sort_order, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		q.ID, q.TenantID, q.TextAR, q.TextEN, q.Category, q.MaxScore, q.SortOrder, q.IsActive, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("questionRepo.Create: %w", err)
	}
	return nil
}

func (r *questionRepo) GetByID(ctx context.Context, tenantID, questionID uuid.UUID) (*domain.SecurityQuestion, error) {
	var q domain.SecurityQuestion
	err := r.db.GetContext(ctx, &q,
		"SELECT * FROM security_questions WHERE id = $1 AND tenant_id = $2", questionID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("questionRepo.GetByID: %w", err)
	}
	return &q, nil
}

func (r *questionRepo) GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.SecurityQuestion, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}
	questions := []domain.SecurityQuestion{}
	err := r.db.SelectContext(ctx, &questions,
		"SELECT * FROM security_questions WHERE tenant_id = $1 AND id = ANY($2::uuid[])",
		tenantID, pq.StringArray(strIDs))
	if err != nil {
		return nil, fmt.Errorf("questionRepo.GetByIDs: %w", err)
	}
	return questions, nil
}

func (r *questionRepo) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.SecurityQuestion, error) {
	query := "SELECT * FROM security_questions WHERE tenant_id = $1"
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY sort_order, created_at"

	questions := []domain.SecurityQuestion{}
	if err := r.db.SelectContext(ctx, &questions, query, tenantID); err != nil {
		return nil, fmt.Errorf("questionRepo.List: %w", err)
	}
	return questions, nil
}

func (r *questionRepo) Update(ctx context.Context, q *domain.SecurityQuestion) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE security_questions SET text_ar = $1, text_en = $2, category = $3, max_score = $4,
		sort_order = $5, is_active = $6 WHERE id = $7 AND tenant_id = $8`,
		q.TextAR, q.TextEN, q.Category, q.MaxScore, q.SortOrder, q.IsActive, q.ID, q.TenantID)
	if err != nil {
		return fmt.Errorf("questionRepo.Update: %w", err)
	}
	return expectOne(result)
}
