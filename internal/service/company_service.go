package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// CompanyInput is the DTO for creating a company.
type CompanyInput struct {
	Name                     string `json:"name" binding:"required"`
	NameEN                   string `json:"name_en"`
	ContractNumber           string `json:"contract_number"`
	ContactEmail             string `json:"contact_email" binding:"omitempty,email"`
	EvaluationIntervalMonths int    `json:"evaluation_interval_months" binding:"omitempty,min=1,max=24"`
}

// UpdateCompanyInput is the DTO for updating a company.
type UpdateCompanyInput struct {
	Name                     *string `json:"name"`
	NameEN                   *string `json:"name_en"`
	ContractNumber           *string `json:"contract_number"`
	ContactEmail             *string `json:"contact_email" binding:"omitempty,email"`
	EvaluationIntervalMonths *int    `json:"evaluation_interval_months" binding:"omitempty,min=1,max=24"`
	IsActive                 *bool   `json:"is_active"`
}

// CompanyView is a company with its derived schedule.
type CompanyView struct {
	domain.Company
	NextEvaluationMonth time.Time `json:"next_evaluation_month"`
}

func viewOf(c *domain.Company, now time.Time) *CompanyView {
	return &CompanyView{Company: *c, NextEvaluationMonth: c.NextEvaluationMonth(now)}
}

// CompanyService manages evaluated guard companies and their rolling score.
type CompanyService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CompanyInput) (*CompanyView, error)
	GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*CompanyView, error)
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]CompanyView, int, error)
	Update(ctx context.Context, tenantID, companyID uuid.UUID, input UpdateCompanyInput) (*CompanyView, error)
	Delete(ctx context.Context, tenantID, companyID uuid.UUID) error
	RecomputeScore(ctx context.Context, tenantID, companyID uuid.UUID) (float64, error)
	RecomputeAll(ctx context.Context) (int, error)
}

type companyService struct {
	repo       port.CompanyRepository
	evalRepo   port.EvaluationRepository
	tenantRepo port.TenantRepository
	window     int
}

// NewCompanyService creates a new CompanyService implementation. window is
// the number of approved evaluations averaged into the score.
func NewCompanyService(
	repo port.CompanyRepository,
	evalRepo port.EvaluationRepository,
	tenantRepo port.TenantRepository,
	window int,
) CompanyService {
	return &companyService{
		repo:       repo,
		evalRepo:   evalRepo,
		tenantRepo: tenantRepo,
		window:     window,
	}
}

func (s *companyService) Create(ctx context.Context, tenantID uuid.UUID, input CompanyInput) (*CompanyView, error) {
	interval := input.EvaluationIntervalMonths
	if interval == 0 {
		interval = domain.DefaultEvaluationIntervalMonths
	}
	c := &domain.Company{
		TenantID:                 tenantID,
		Name:                     input.Name,
		NameEN:                   input.NameEN,
		ContractNumber:           input.ContractNumber,
		ContactEmail:             input.ContactEmail,
		EvaluationIntervalMonths: interval,
		IsActive:                 true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return viewOf(c, time.Now()), nil
}

func (s *companyService) GetByID(ctx context.Context, tenantID, companyID uuid.UUID) (*CompanyView, error) {
	c, err := s.repo.GetByID(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}
	return viewOf(c, time.Now()), nil
}

func (s *companyService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]CompanyView, int, error) {
	companies, total, err := s.repo.List(ctx, tenantID, activeOnly, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	views := make([]CompanyView, len(companies))
	for i := range companies {
		views[i] = *viewOf(&companies[i], now)
	}
	return views, total, nil
}

func (s *companyService) Update(ctx context.Context, tenantID, companyID uuid.UUID, input UpdateCompanyInput) (*CompanyView, error) {
	c, err := s.repo.GetByID(ctx, tenantID, companyID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.NameEN != nil {
		c.NameEN = *input.NameEN
	}
	if input.ContractNumber != nil {
		c.ContractNumber = *input.ContractNumber
	}
	if input.ContactEmail != nil {
		c.ContactEmail = *input.ContactEmail
	}
	if input.EvaluationIntervalMonths != nil {
		c.EvaluationIntervalMonths = *input.EvaluationIntervalMonths
	}
	if input.IsActive != nil {
		c.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return viewOf(c, time.Now()), nil
}

func (s *companyService) Delete(ctx context.Context, tenantID, companyID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, companyID)
}

// RecomputeScore stores the average percentage of the company's most recent
// approved evaluations, rounded to two decimals. No approved evaluations
// yields 0.
func (s *companyService) RecomputeScore(ctx context.Context, tenantID, companyID uuid.UUID) (float64, error) {
	percentages, err := s.evalRepo.RecentApprovedPercentages(ctx, tenantID, companyID, s.window)
	if err != nil {
		return 0, fmt.Errorf("companyService.RecomputeScore: %w", err)
	}
	score := averageScore(percentages)
	if err := s.repo.UpdateScore(ctx, tenantID, companyID, score); err != nil {
		return 0, err
	}
	return score, nil
}

func averageScore(percentages []float64) float64 {
	if len(percentages) == 0 {
		return 0
	}
	var sum float64
	for _, p := range percentages {
		sum += p
	}
	return math.Round(sum/float64(len(percentages))*100) / 100
}

// RecomputeAll refreshes every active company of every active tenant and
// returns how many were updated. A failing company is logged and skipped.
func (s *companyService) RecomputeAll(ctx context.Context) (int, error) {
	tenantIDs, err := s.tenantRepo.ListActiveIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("companyService.RecomputeAll: %w", err)
	}
	updated := 0
	for _, tenantID := range tenantIDs {
		companyIDs, err := s.repo.ListActiveIDs(ctx, tenantID)
		if err != nil {
			log.Error().Err(err).Str("tenant_id", tenantID.String()).Msg("companyService.RecomputeAll: listing companies failed")
			continue
		}
		for _, companyID := range companyIDs {
			if err := ctx.Err(); err != nil {
				return updated, err
			}
			if _, err := s.RecomputeScore(ctx, tenantID, companyID); err != nil {
				log.Error().Err(err).
					Str("tenant_id", tenantID.String()).
					Str("company_id", companyID.String()).
					Msg("companyService.RecomputeAll: recompute failed")
				continue
			}
			updated++
		}
	}
	return updated, nil
}
