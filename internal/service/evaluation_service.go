package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/export"
	"hejazi/internal/port"
)

// AnswerInput is one scored question of an evaluation.
type AnswerInput struct {
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment"`
}

// CreateEvaluationInput is the DTO for submitting an evaluation. A zero
// PeriodMonth means the current month.
type CreateEvaluationInput struct {
	CompanyID   uuid.UUID     `json:"company_id" binding:"required"`
	PeriodMonth time.Time     `json:"period_month"`
	Notes       string        `json:"notes"`
	Answers     []AnswerInput `json:"answers" binding:"required,dive"`
}

// UpdateEvaluationInput is the DTO for resubmitting a returned evaluation.
type UpdateEvaluationInput struct {
	Notes   string        `json:"notes"`
	Answers []AnswerInput `json:"answers" binding:"required,dive"`
}

// DecideInput is the DTO for an approval decision.
type DecideInput struct {
	Decision domain.ApprovalDecision `json:"decision" binding:"required"`
	Notes    string                  `json:"notes"`
}

// EvaluationService runs the monthly company evaluation workflow:
// submit, review (approve, reject or return), resubmit.
type EvaluationService interface {
	Create(ctx context.Context, tenantID, evaluatorID uuid.UUID, input CreateEvaluationInput) (*domain.EvaluationWithDetails, error)
	Get(ctx context.Context, tenantID, evalID uuid.UUID) (*domain.EvaluationWithDetails, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.EvaluationFilter, offset, limit int) ([]domain.SecurityEvaluation, int, error)
	UpdateDetails(ctx context.Context, tenantID, callerID, evalID uuid.UUID, input UpdateEvaluationInput) (*domain.EvaluationWithDetails, error)
	Decide(ctx context.Context, tenantID, approverID, evalID uuid.UUID, input DecideInput) (*domain.EvaluationWithDetails, error)
	Delete(ctx context.Context, tenantID, evalID uuid.UUID) error
	Export(ctx context.Context, tenantID uuid.UUID, filter port.EvaluationFilter, w io.Writer) error
}

type evaluationService struct {
	evalRepo     port.EvaluationRepository
	companyRepo  port.CompanyRepository
	questionRepo port.QuestionRepository
	userRepo     port.UserRepository
	companies    CompanyService
}

// NewEvaluationService creates a new EvaluationService implementation.
func NewEvaluationService(
	evalRepo port.EvaluationRepository,
	companyRepo port.CompanyRepository,
	questionRepo port.QuestionRepository,
	userRepo port.UserRepository,
	companies CompanyService,
) EvaluationService {
	return &evaluationService{
		evalRepo:     evalRepo,
		companyRepo:  companyRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		companies:    companies,
	}
}

// score validates answers against the question bank and returns detail rows
// with the total and maximum achievable score.
func (s *evaluationService) score(ctx context.Context, tenantID uuid.UUID, answers []AnswerInput) ([]domain.SecurityEvaluationDetail, int, int, error) {
	if len(answers) == 0 {
		return nil, 0, 0, domain.ErrEmptyEvaluation
	}

	ids := make([]uuid.UUID, 0, len(answers))
	seen := make(map[uuid.UUID]bool, len(answers))
	for _, a := range answers {
		if seen[a.QuestionID] {
			return nil, 0, 0, fmt.Errorf("question %s answered twice: %w", a.QuestionID, domain.ErrValidation)
		}
		seen[a.QuestionID] = true
		ids = append(ids, a.QuestionID)
	}

	questions, err := s.questionRepo.GetByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, 0, 0, err
	}
	byID := make(map[uuid.UUID]*domain.SecurityQuestion, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	details := make([]domain.SecurityEvaluationDetail, 0, len(answers))
	total, maxScore := 0, 0
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, 0, 0, fmt.Errorf("question %s: %w", a.QuestionID, domain.ErrNotFound)
		}
		if !q.IsActive {
			return nil, 0, 0, fmt.Errorf("question %s: %w", a.QuestionID, domain.ErrQuestionInactive)
		}
		if a.Score < 0 || a.Score > q.MaxScore {
			return nil, 0, 0, fmt.Errorf("question %s: %w", a.QuestionID, domain.ErrScoreOutOfRange)
		}
		total += a.Score
		maxScore += q.MaxScore
		details = append(details, domain.SecurityEvaluationDetail{
			TenantID:   tenantID,
			QuestionID: a.QuestionID,
			Score:      a.Score,
			Comment:    a.Comment,
		})
	}
	return details, total, maxScore, nil
}

func (s *evaluationService) Create(ctx context.Context, tenantID, evaluatorID uuid.UUID, input CreateEvaluationInput) (*domain.EvaluationWithDetails, error) {
	company, err := s.companyRepo.GetByID(ctx, tenantID, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive {
		return nil, domain.ErrCompanyInactive
	}

	details, total, maxScore, err := s.score(ctx, tenantID, input.Answers)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	period := input.PeriodMonth
	if period.IsZero() {
		period = now
	}
	eval := &domain.SecurityEvaluation{
		TenantID:    tenantID,
		CompanyID:   company.ID,
		EvaluatorID: evaluatorID,
		PeriodMonth: domain.MonthStart(period),
		EvaluatedAt: now,
		TotalScore:  total,
		MaxScore:    maxScore,
		Percentage:  domain.ScorePercentage(total, maxScore),
		Notes:       input.Notes,
		Status:      domain.EvaluationPending,
	}
	if err := s.evalRepo.Create(ctx, eval, details); err != nil {
		return nil, err
	}

	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("evaluation_id", eval.ID.String()).
		Str("company_id", company.ID.String()).
		Float64("percentage", eval.Percentage).
		Msg("evaluationService.Create: evaluation submitted")

	return &domain.EvaluationWithDetails{
		SecurityEvaluation: *eval,
		Details:            details,
		Approvals:          []domain.EvaluationApproval{},
	}, nil
}

func (s *evaluationService) Get(ctx context.Context, tenantID, evalID uuid.UUID) (*domain.EvaluationWithDetails, error) {
	eval, err := s.evalRepo.GetByID(ctx, tenantID, evalID)
	if err != nil {
		return nil, err
	}
	details, err := s.evalRepo.ListDetails(ctx, tenantID, evalID)
	if err != nil {
		return nil, err
	}
	approvals, err := s.evalRepo.ListApprovals(ctx, tenantID, evalID)
	if err != nil {
		return nil, err
	}
	return &domain.EvaluationWithDetails{
		SecurityEvaluation: *eval,
		Details:            details,
		Approvals:          approvals,
	}, nil
}

func (s *evaluationService) List(ctx context.Context, tenantID uuid.UUID, filter port.EvaluationFilter, offset, limit int) ([]domain.SecurityEvaluation, int, error) {
	return s.evalRepo.List(ctx, tenantID, filter, offset, limit)
}

// UpdateDetails lets the original evaluator rework a returned evaluation.
func (s *evaluationService) UpdateDetails(ctx context.Context, tenantID, callerID, evalID uuid.UUID, input UpdateEvaluationInput) (*domain.EvaluationWithDetails, error) {
	eval, err := s.evalRepo.GetByID(ctx, tenantID, evalID)
	if err != nil {
		return nil, err
	}
	if eval.EvaluatorID != callerID {
		return nil, domain.ErrForbidden
	}
	if eval.Status != domain.EvaluationReturned {
		return nil, domain.ErrEvaluationFinalized
	}

	details, total, maxScore, err := s.score(ctx, tenantID, input.Answers)
	if err != nil {
		return nil, err
	}
	eval.TotalScore = total
	eval.MaxScore = maxScore
	eval.Percentage = domain.ScorePercentage(total, maxScore)
	eval.Notes = input.Notes
	eval.EvaluatedAt = time.Now().UTC()

	if err := s.evalRepo.ReplaceDetails(ctx, eval, details); err != nil {
		return nil, err
	}
	return s.Get(ctx, tenantID, evalID)
}

// Decide records an approval decision on a pending evaluation. The approver's
// stored signature is copied onto the approval row. Approval moves the
// company's schedule forward and refreshes its score.
func (s *evaluationService) Decide(ctx context.Context, tenantID, approverID, evalID uuid.UUID, input DecideInput) (*domain.EvaluationWithDetails, error) {
	status, ok := domain.ValidDecisions[input.Decision]
	if !ok {
		return nil, domain.ErrInvalidDecision
	}

	eval, err := s.evalRepo.GetByID(ctx, tenantID, evalID)
	if err != nil {
		return nil, err
	}
	if eval.Status != domain.EvaluationPending {
		return nil, domain.ErrEvaluationFinalized
	}
	if eval.EvaluatorID == approverID {
		return nil, domain.ErrSelfApproval
	}

	approver, err := s.userRepo.GetByID(ctx, tenantID, approverID)
	if err != nil {
		return nil, err
	}

	eval.Status = status
	approval := &domain.EvaluationApproval{
		ApproverID:   approverID,
		Decision:     input.Decision,
		Notes:        input.Notes,
		SignatureKey: approver.SignatureKey,
	}
	if err := s.evalRepo.Decide(ctx, eval, approval); err != nil {
		return nil, err
	}

	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("evaluation_id", evalID.String()).
		Str("decision", string(input.Decision)).
		Msg("evaluationService.Decide: decision recorded")

	if status == domain.EvaluationApproved {
		if err := s.companyRepo.MarkEvaluated(ctx, tenantID, eval.CompanyID, eval.PeriodMonth); err != nil {
			return nil, fmt.Errorf("evaluationService.Decide: marking company evaluated: %w", err)
		}
		if _, err := s.companies.RecomputeScore(ctx, tenantID, eval.CompanyID); err != nil {
			return nil, fmt.Errorf("evaluationService.Decide: recomputing score: %w", err)
		}
	}
	return s.Get(ctx, tenantID, evalID)
}

func (s *evaluationService) Delete(ctx context.Context, tenantID, evalID uuid.UUID) error {
	eval, err := s.evalRepo.GetByID(ctx, tenantID, evalID)
	if err != nil {
		return err
	}
	if eval.Status != domain.EvaluationPending && eval.Status != domain.EvaluationReturned {
		return domain.ErrEvaluationFinalized
	}
	return s.evalRepo.Delete(ctx, tenantID, evalID)
}

func (s *evaluationService) Export(ctx context.Context, tenantID uuid.UUID, filter port.EvaluationFilter, w io.Writer) error {
	rows, err := s.evalRepo.ListForExport(ctx, tenantID, filter)
	if err != nil {
		return err
	}
	return export.WriteEvaluationsXLSX(w, rows)
}
