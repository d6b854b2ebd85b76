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

type evaluationRepo struct {
	db *sqlx.DB
}

// NewEvaluationRepo creates a new PostgreSQL-backed EvaluationRepository.
func NewEvaluationRepo(db *sqlx.DB) port.EvaluationRepository {
	return &evaluationRepo{db: db}
}

func (r *evaluationRepo) Create(ctx context.Context, eval *domain.SecurityEvaluation, details []domain.SecurityEvaluationDetail) error {
	eval.ID = uuid.New()
	now := time.Now().UTC()
	eval.CreatedAt = now
	eval.UpdatedAt = now

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO security_evaluations (id, tenant_id, company_id, evaluator_id, period_month, evaluated_at,
			total_score, max_score, percentage, notes, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			eval.ID, eval.TenantID, eval.CompanyID, eval.EvaluatorID, eval.PeriodMonth, eval.EvaluatedAt,
			eval.TotalScore, eval.MaxScore, eval.Percentage, eval.Notes, eval.Status, eval.CreatedAt, eval.UpdatedAt)
		if err != nil {
			if isDuplicate(err, "period") {
				return domain.ErrDuplicateEvaluation
			}
			return fmt.Errorf("inserting evaluation: %w", err)
		}
		return insertDetails(ctx, tx, eval, details)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEvaluation) {
			return err
		}
		return fmt.Errorf("evaluationRepo.Create: %w", err)
	}
	return nil
}

func insertDetails(ctx context.Context, tx *sqlx.Tx, eval *domain.SecurityEvaluation, details []domain.SecurityEvaluationDetail) error {
	for i := range details {
		d := &details[i]
		d.ID = uuid.New()
		d.EvaluationID = eval.ID
		d.TenantID = eval.TenantID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO security_evaluation_details (id, evaluation_id, tenant_id, question_id, score, comment)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			d.ID, d.EvaluationID, d.TenantID, d.QuestionID, d.Score, d.Comment)
		if err != nil {
			return fmt.Errorf("inserting evaluation detail: %w", err)
		}
	}
	return nil
}

func (r *evaluationRepo) GetByID(ctx context.Context, tenantID, evalID uuid.UUID) (*domain.SecurityEvaluation, error) {
	var eval domain.SecurityEvaluation
	err := r.db.GetContext(ctx, &eval,
		"SELECT * FROM security_evaluations WHERE id = $1 AND tenant_id = $2", evalID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("evaluationRepo.GetByID: %w", err)
	}
	return &eval, nil
}

func (r *evaluationRepo) ListDetails(ctx context.Context, tenantID, evalID uuid.UUID) ([]domain.SecurityEvaluationDetail, error) {
	details := []domain.SecurityEvaluationDetail{}
	err := r.db.SelectContext(ctx, &details,
		`SELECT d.* FROM security_evaluation_details d
		JOIN security_questions q ON q.id = d.question_id
		WHERE d.evaluation_id = $1 AND d.tenant_id = $2
		ORDER BY q.sort_order, q.created_at`,
		evalID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("evaluationRepo.ListDetails: %w", err)
	}
	return details, nil
}

func (r *evaluationRepo) ListApprovals(ctx context.Context, tenantID, evalID uuid.UUID) ([]domain.EvaluationApproval, error) {
	approvals := []domain.EvaluationApproval{}
	err := r.db.SelectContext(ctx, &approvals,
		"SELECT * FROM evaluation_approvals WHERE evaluation_id = $1 AND tenant_id = $2 ORDER BY created_at",
		evalID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("evaluationRepo.ListApprovals: %w", err)
	}
	return approvals, nil
}

func evaluationWhere(tenantID uuid.UUID, f port.EvaluationFilter) *whereBuilder {
	w := newWhere("tenant_id = ?", tenantID)
	if f.CompanyID != nil {
		w.and("company_id = ?", *f.CompanyID)
	}
	if f.Status != nil {
		w.and("status = ?", *f.Status)
	}
	return w
}

func (r *evaluationRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.EvaluationFilter, offset, limit int) ([]domain.SecurityEvaluation, int, error) {
	w := evaluationWhere(tenantID, filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM security_evaluations "+w.String(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("evaluationRepo.List count: %w", err)
	}

	pageClause, args := w.page(limit, offset)
	var evals []domain.SecurityEvaluation
	err := r.db.SelectContext(ctx, &evals,
		"SELECT * FROM security_evaluations "+w.String()+" ORDER BY period_month DESC, created_at DESC"+pageClause,
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("evaluationRepo.List: %w", err)
	}
	return evals, total, nil
}

func (r *evaluationRepo) ReplaceDetails(ctx context.Context, eval *domain.SecurityEvaluation, details []domain.SecurityEvaluationDetail) error {
	eval.UpdatedAt = time.Now().UTC()
	eval.Status = domain.EvaluationPending

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE security_evaluations SET total_score = $1, max_score = $2, percentage = $3, notes = $4,
			status = $5, evaluated_at = $6, updated_at = $7
			WHERE id = $8 AND tenant_id = $9 AND status = $10`,
			eval.TotalScore, eval.MaxScore, eval.Percentage, eval.Notes,
			eval.Status, eval.EvaluatedAt, eval.UpdatedAt, eval.ID, eval.TenantID, domain.EvaluationReturned)
		if err != nil {
			return fmt.Errorf("updating evaluation: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrEvaluationFinalized
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM security_evaluation_details WHERE evaluation_id = $1 AND tenant_id = $2",
			eval.ID, eval.TenantID); err != nil {
			return fmt.Errorf("clearing evaluation details: %w", err)
		}
		return insertDetails(ctx, tx, eval, details)
	})
	if err != nil {
		if errors.Is(err, domain.ErrEvaluationFinalized) {
			return err
		}
		return fmt.Errorf("evaluationRepo.ReplaceDetails: %w", err)
	}
	return nil
}

func (r *evaluationRepo) Decide(ctx context.Context, eval *domain.SecurityEvaluation, approval *domain.EvaluationApproval) error {
	now := time.Now().UTC()
	eval.UpdatedAt = now
	approval.ID = uuid.New()
	approval.EvaluationID = eval.ID
	approval.TenantID = eval.TenantID
	approval.CreatedAt = now

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE security_evaluations SET status = $1, updated_at = $2
			WHERE id = $3 AND tenant_id = $4 AND status = $5`,
			eval.Status, eval.UpdatedAt, eval.ID, eval.TenantID, domain.EvaluationPending)
		if err != nil {
			return fmt.Errorf("updating evaluation status: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return domain.ErrEvaluationFinalized
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO evaluation_approvals (id, evaluation_id, tenant_id, approver_id, decision, notes, signature_key, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			approval.ID, approval.EvaluationID, approval.TenantID, approval.ApproverID,
			approval.Decision, approval.Notes, approval.SignatureKey, approval.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting approval: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEvaluationFinalized) {
			return err
		}
		return fmt.Errorf("evaluationRepo.Decide: %w", err)
	}
	return nil
}

// Delete removes an evaluation that has not been decided yet.
func (r *evaluationRepo) Delete(ctx context.Context, tenantID, evalID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM security_evaluations WHERE id = $1 AND tenant_id = $2 AND status IN ($3, $4)`,
		evalID, tenantID, domain.EvaluationPending, domain.EvaluationReturned)
	if err != nil {
		return fmt.Errorf("evaluationRepo.Delete: %w", err)
	}
	return expectOne(result)
}

func (r *evaluationRepo) RecentApprovedPercentages(ctx context.Context, tenantID, companyID uuid.UUID, n int) ([]float64, error) {
	percentages := []float64{}
	err := r.db.SelectContext(ctx, &percentages,
		`SELECT percentage FROM security_evaluations
		WHERE tenant_id = $1 AND company_id = $2 AND status = $3
		ORDER BY period_month DESC LIMIT $4`,
		tenantID, companyID, domain.EvaluationApproved, n)
	if err != nil {
		return nil, fmt.Errorf("evaluationRepo.RecentApprovedPercentages: %w", err)
	}
	return percentages, nil
}

func (r *evaluationRepo) ListForExport(ctx context.Context, tenantID uuid.UUID, filter port.EvaluationFilter) ([]port.EvaluationExportRow, error) {
	w := newWhere("e.tenant_id = ?", tenantID)
	if filter.CompanyID != nil {
		w.and("e.company_id = ?", *filter.CompanyID)
	}
	if filter.Status != nil {
		w.and("e.status = ?", *filter.Status)
	}

	rows := []port.EvaluationExportRow{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT e.*, c.name AS company_name, COALESCE(u.full_name, '') AS evaluator_name
		FROM security_evaluations e
		JOIN companies c ON c.id = e.company_id
		LEFT JOIN users u ON u.id = e.evaluator_id
		`+w.String()+`
		ORDER BY c.name, e.period_month DESC`,
		w.args...)
	if err != nil {
		return nil, fmt.Errorf("evaluationRepo.ListForExport: %w", err)
	}
	return rows, nil
}
