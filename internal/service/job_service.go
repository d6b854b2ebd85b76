package service

import (
	"context"

	"github.com/google/uuid"

	"hejazi/internal/domain"
	"hejazi/internal/port"
)

// JobInput is the DTO for creating or replacing a job title.
type JobInput struct {
	Title  string `json:"title" binding:"required"`
	NameAR string `json:"name_ar"`
	NameEN string `json:"name_en"`
}

// JobService manages job titles.
type JobService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input JobInput) (*domain.Job, error)
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Job, int, error)
	Update(ctx context.Context, tenantID, jobID uuid.UUID, input JobInput) (*domain.Job, error)
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
}

type jobService struct {
	repo  port.JobRepository
	cache port.PermissionCache
}

// NewJobService creates a new JobService implementation.
func NewJobService(repo port.JobRepository, cache port.PermissionCache) JobService {
	return &jobService{repo: repo, cache: cache}
}

func (s *jobService) Create(ctx context.Context, tenantID uuid.UUID, input JobInput) (*domain.Job, error) {
	job := &domain.Job{
		TenantID: tenantID,
		Title:    input.Title,
		NameAR:   input.NameAR,
		NameEN:   input.NameEN,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobService) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.Job, error) {
	return s.repo.GetByID(ctx, tenantID, jobID)
}

func (s *jobService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Job, int, error) {
	return s.repo.List(ctx, tenantID, offset, limit)
}

func (s *jobService) Update(ctx context.Context, tenantID, jobID uuid.UUID, input JobInput) (*domain.Job, error) {
	job, err := s.repo.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	job.Title = input.Title
	job.NameAR = input.NameAR
	job.NameEN = input.NameEN
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes the job. Users holding it fall back to no job, and their
// cached permissions are dropped with the rest of the tenant.
func (s *jobService) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	if err := s.repo.Delete(ctx, tenantID, jobID); err != nil {
		return err
	}
	return s.cache.InvalidateTenant(ctx, tenantID)
}
