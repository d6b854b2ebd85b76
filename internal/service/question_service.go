package service

import (
	"context"

	"github.com/google/uuid"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// QuestionInput is the DTO for creating a security question.
type QuestionInput struct {
	TextAR    string `json:"text_ar" binding:"required"`
	TextEN    string `json:"text_en"`
	Category  string `json:"category"`
	MaxScore  int    `json:"max_score" binding:"required,min=1"`
	SortOrder int    `json:"sort_order"`
}

// UpdateQuestionInput is the DTO for updating a security question.
type UpdateQuestionInput struct {
	TextAR    *string `json:"text_ar"`
	TextEN    *string `json:"text_en"`
	Category  *string `json:"category"`
	MaxScore  *int    `json:"max_score" binding:"omitempty,min=1"`
	SortOrder *int    `json:"sort_order"`
	IsActive  *bool   `json:"is_active"`
}

// QuestionService manages the evaluation question bank. Questions are
// deactivated rather than deleted so past evaluations keep their details.
type QuestionService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input QuestionInput) (*domain.SecurityQuestion, error)
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.SecurityQuestion, error)
	Update(ctx context.Context, tenantID, questionID uuid.UUID, input UpdateQuestionInput) (*domain.SecurityQuestion, error)
	Deactivate(ctx context.Context, tenantID, questionID uuid.UUID) error
}

type questionService struct {
	repo port.QuestionRepository
}

// NewQuestionService creates a new QuestionService implementation.
func NewQuestionService(repo port.QuestionRepository) QuestionService {
	return &questionService{repo: repo}
}

func (s *questionService) Create(ctx context.Context, tenantID uuid.UUID, input QuestionInput) (*domain.SecurityQuestion, error) {
	q := &domain.SecurityQuestion{
		TenantID:  tenantID,
		TextAR:    input.TextAR,
		TextEN:    input.TextEN,
		Category:  input.Category,
		MaxScore:  input.MaxScore,
		SortOrder: input.SortOrder,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]domain.SecurityQuestion, error) {
	return s.repo.List(ctx, tenantID, activeOnly)
}

func (s *questionService) Update(ctx context.Context, tenantID, questionID uuid.UUID, input UpdateQuestionInput) (*domain.SecurityQuestion, error) {
	q, err := s.repo.GetByID(ctx, tenantID, questionID)
	if err != nil {
		return nil, err
	}
	if input.TextAR != nil {
		q.TextAR = *input.TextAR
	}
	if input.TextEN != nil {
		q.TextEN = *input.TextEN
	}
	if input.Category != nil {
		q.Category = *input.Category
	}
	if input.MaxScore != nil {
		q.MaxScore = *input.MaxScore
	}
	if input.SortOrder != nil {
		q.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		q.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionService) Deactivate(ctx context.Context, tenantID, questionID uuid.UUID) error {
	active := false
	_, err := s.Update(ctx, tenantID, questionID, UpdateQuestionInput{IsActive: &active})
	return err
}
