package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hejazi/internal/domain"
	"hejazi/internal/export"
	"hejazi/internal/mailto"
	"hejazi/internal/port"
)

// CreateViolationInput is the DTO for recording a violation.
type CreateViolationInput struct {
	CompanyID     uuid.UUID                `json:"company_id" binding:"required"`
	BuildingID    *uuid.UUID               `json:"building_id"`
	Title         string                   `json:"title" binding:"required"`
	Description   string                   `json:"description"`
	Severity      domain.ViolationSeverity `json:"severity" binding:"required"`
	OccurredAt    time.Time                `json:"occurred_at"`
	PenaltyAmount float64                  `json:"penalty_amount" binding:"min=0"`
}

// NotifyInput is the DTO for sending a violation notice. Empty recipients
// fall back to the company's contact email.
type NotifyInput struct {
	Recipients []string           `json:"recipients"`
	Channel    domain.SendChannel `json:"channel" binding:"required"`
}

// NotifyResult reports what was sent. MailtoURL is set for the mailto channel.
type NotifyResult struct {
	Send      *domain.ViolationSend `json:"send"`
	MailtoURL string                `json:"mailto_url,omitempty"`
}

// ViolationService records violations against companies and notifies them.
type ViolationService interface {
	Create(ctx context.Context, tenantID, reporterID uuid.UUID, input CreateViolationInput) (*domain.Violation, error)
	GetByID(ctx context.Context, tenantID, violationID uuid.UUID) (*domain.Violation, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.ViolationFilter, offset, limit int) ([]domain.Violation, int, error)
	Close(ctx context.Context, tenantID, violationID uuid.UUID) (*domain.Violation, error)
	Mailto(ctx context.Context, tenantID, violationID uuid.UUID, recipients []string) (string, error)
	Notify(ctx context.Context, tenantID, senderID, violationID uuid.UUID, input NotifyInput) (*NotifyResult, error)
	ListSends(ctx context.Context, tenantID, violationID uuid.UUID) ([]domain.ViolationSend, error)
	Export(ctx context.Context, tenantID uuid.UUID, filter port.ViolationFilter, w io.Writer) error
}

type violationService struct {
	repo         port.ViolationRepository
	companyRepo  port.CompanyRepository
	locationRepo port.LocationRepository
	email        port.EmailSender
}

// NewViolationService creates a new ViolationService implementation.
func NewViolationService(
	repo port.ViolationRepository,
	companyRepo port.CompanyRepository,
	locationRepo port.LocationRepository,
	email port.EmailSender,
) ViolationService {
	return &violationService{
		repo:         repo,
		companyRepo:  companyRepo,
		locationRepo: locationRepo,
		email:        email,
	}
}

func (s *violationService) Create(ctx context.Context, tenantID, reporterID uuid.UUID, input CreateViolationInput) (*domain.Violation, error) {
	if !domain.ValidSeverities[input.Severity] {
		return nil, domain.ErrInvalidSeverity
	}
	if _, err := s.companyRepo.GetByID(ctx, tenantID, input.CompanyID); err != nil {
		return nil, err
	}
	if input.BuildingID != nil {
		if _, err := s.locationRepo.GetBuilding(ctx, tenantID, *input.BuildingID); err != nil {
			return nil, err
		}
	}

	occurred := input.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	v := &domain.Violation{
		TenantID:      tenantID,
		CompanyID:     input.CompanyID,
		BuildingID:    input.BuildingID,
		ReportedBy:    reporterID,
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		Severity:      input.Severity,
		OccurredAt:    occurred,
		PenaltyAmount: input.PenaltyAmount,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("violation_id", v.ID.String()).
		Str("company_id", v.CompanyID.String()).
		Str("severity", string(v.Severity)).
		Msg("violationService.Create: violation recorded")

	return v, nil
}

func (s *violationService) GetByID(ctx context.Context, tenantID, violationID uuid.UUID) (*domain.Violation, error) {
	return s.repo.GetByID(ctx, tenantID, violationID)
}

func (s *violationService) List(ctx context.Context, tenantID uuid.UUID, filter port.ViolationFilter, offset, limit int) ([]domain.Violation, int, error) {
	return s.repo.List(ctx, tenantID, filter, offset, limit)
}

func (s *violationService) Close(ctx context.Context, tenantID, violationID uuid.UUID) (*domain.Violation, error) {
	if err := s.repo.Close(ctx, tenantID, violationID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, tenantID, violationID)
}

// notice loads the violation and renders the message sent about it.
func (s *violationService) notice(ctx context.Context, tenantID, violationID uuid.UUID, recipients []string) (*domain.Violation, port.ViolationNotice, error) {
	v, err := s.repo.GetByID(ctx, tenantID, violationID)
	if err != nil {
		return nil, port.ViolationNotice{}, err
	}
	company, err := s.companyRepo.GetByID(ctx, tenantID, v.CompanyID)
	if err != nil {
		return nil, port.ViolationNotice{}, err
	}

	if len(recipients) == 0 && company.ContactEmail != "" {
		recipients = []string{company.ContactEmail}
	}
	to, err := mailto.ParseRecipients(recipients)
	if err != nil {
		return nil, port.ViolationNotice{}, err
	}

	return v, port.ViolationNotice{
		To:      to,
		Subject: fmt.Sprintf("Violation notice: %s", v.Title),
		Body:    noticeBody(v, company),
	}, nil
}

func noticeBody(v *domain.Violation, c *domain.Company) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", c.Name)
	fmt.Fprintf(&b, "Violation: %s\n", v.Title)
	fmt.Fprintf(&b, "Severity: %s\n", v.Severity)
	fmt.Fprintf(&b, "Occurred at: %s\n", v.OccurredAt.UTC().Format("2006-01-02 15:04"))
	if v.PenaltyAmount > 0 {
		fmt.Fprintf(&b, "Penalty: %.2f\n", v.PenaltyAmount)
	}
	if v.Description != "" {
		b.WriteString("\n")
		b.WriteString(v.Description)
		b.WriteString("\n")
	}
	return b.String()
}

func (s *violationService) Mailto(ctx context.Context, tenantID, violationID uuid.UUID, recipients []string) (string, error) {
	_, n, err := s.notice(ctx, tenantID, violationID, recipients)
	if err != nil {
		return "", err
	}
	return mailto.Build(n.To, n.Subject, n.Body), nil
}

// Notify sends the notice over the requested channel and logs the send.
// For the mailto channel nothing leaves the server; the link is returned for
// the client to open.
func (s *violationService) Notify(ctx context.Context, tenantID, senderID, violationID uuid.UUID, input NotifyInput) (*NotifyResult, error) {
	v, n, err := s.notice(ctx, tenantID, violationID, input.Recipients)
	if err != nil {
		return nil, err
	}

	result := &NotifyResult{}
	switch input.Channel {
	case domain.ChannelEmail:
		if err := s.email.SendViolationNotice(ctx, n); err != nil {
			log.Error().Err(err).
				Str("violation_id", v.ID.String()).
				Msg("violationService.Notify: email delivery failed")
			return nil, fmt.Errorf("violationService.Notify: %w", err)
		}
	case domain.ChannelMailto:
		result.MailtoURL = mailto.Build(n.To, n.Subject, n.Body)
	default:
		return nil, fmt.Errorf("channel %q: %w", input.Channel, domain.ErrValidation)
	}

	send := &domain.ViolationSend{
		ViolationID: v.ID,
		TenantID:    tenantID,
		SentBy:      senderID,
		Channel:     input.Channel,
		Recipients:  n.To,
		Subject:     n.Subject,
	}
	if err := s.repo.CreateSend(ctx, send); err != nil {
		return nil, err
	}
	result.Send = send

	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("violation_id", v.ID.String()).
		Str("channel", string(input.Channel)).
		Int("recipients", len(n.To)).
		Msg("violationService.Notify: notice sent")

	return result, nil
}

func (s *violationService) ListSends(ctx context.Context, tenantID, violationID uuid.UUID) ([]domain.ViolationSend, error) {
	if _, err := s.repo.GetByID(ctx, tenantID, violationID); err != nil {
		return nil, err
	}
	return s.repo.ListSends(ctx, tenantID, violationID)
}

func (s *violationService) Export(ctx context.Context, tenantID uuid.UUID, filter port.ViolationFilter, w io.Writer) error {
	rows, err := s.repo.ListForExport(ctx, tenantID, filter)
	if err != nil {
		return err
	}
	cw, err := export.NewViolationCSV(w)
	if err != nil {
		return err
	}
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteRows(rows); err != nil {
		return err
	}
	return cw.Close()
}
