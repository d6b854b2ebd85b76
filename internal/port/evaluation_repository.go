package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hejazi/internal/domain"
)

// CompanyRepository defines the contract for evaluated company persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*domain.Company, error)
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.Company, int, error)
	ListActiveIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, tenantID, companyID uuid.UUID) error
	MarkEvaluated(ctx context.Context, tenantID, companyID uuid.UUID, at time.Time) error
	UpdateScore(ctx context.Context, tenantID, companyID uuid.UUID, score float64) error
}

// QuestionRepository defines the contract for security question persistence.
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.SecurityQuestion) error
	GetByID(ctx context.Context, tenantID, questionID uuid.UUID) (*domain.SecurityQuestion, error)
	GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.SecurityQuestion, error)
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.SecurityQuestion, error)
	Update(ctx context.Context, q *domain.SecurityQuestion) error
}

// EvaluationFilter narrows evaluation listings. Nil fields are ignored.
type EvaluationFilter struct {
	CompanyID *uuid.UUID
	Status    *domain.EvaluationStatus
}

// EvaluationExportRow is one line of the evaluation workbook.
type EvaluationExportRow struct {
	domain.SecurityEvaluation
	CompanyName   string `db:"company_name"`
	EvaluatorName string `db:"evaluator_name"`
}

// EvaluationRepository defines the contract for evaluation persistence.
// Multi-row writes are transactional.
type EvaluationRepository interface {
	Create(ctx context.Context, eval *domain.SecurityEvaluation, details []domain.SecurityEvaluationDetail) error
	GetByID(ctx context.Context, tenantID, evalID uuid.UUID) (*domain.SecurityEvaluation, error)
	ListDetails(ctx context.Context, tenantID, evalID uuid.UUID) ([]domain.SecurityEvaluationDetail, error)
	ListApprovals(ctx context.Context, tenantID, evalID uuid.UUID) ([]domain.EvaluationApproval, error)
	List(ctx context.Context, tenantID uuid.UUID, filter EvaluationFilter, offset, limit int) ([]domain.SecurityEvaluation, int, error)
	// ReplaceDetails swaps the answers of a returned evaluation, stores the
	// new totals and moves it back to pending.
	ReplaceDetails(ctx context.Context, eval *domain.SecurityEvaluation, details []domain.SecurityEvaluationDetail) error
	// Decide sets the status of a pending evaluation and appends the approval
	// row. Returns ErrEvaluationFinalized if the evaluation is no longer pending.
	Decide(ctx context.Context, eval *domain.SecurityEvaluation, approval *domain.EvaluationApproval) error
	Delete(ctx context.Context, tenantID, evalID uuid.UUID) error
	RecentApprovedPercentages(ctx context.Context, tenantID, companyID uuid.UUID, n int) ([]float64, error)
	ListForExport(ctx context.Context, tenantID uuid.UUID, filter EvaluationFilter) ([]EvaluationExportRow, error)
}
