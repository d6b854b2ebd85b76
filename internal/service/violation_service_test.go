package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hejazi/internal/domain"
	"hejazi/internal/port"
	"hejazi/internal/service"
	"hejazi/mocks"
)

type violationDeps struct {
	repo      *mocks.MockViolationRepo
	companies *mocks.MockCompanyRepo
	locations *mocks.MockLocationRepo
	email     *mocks.MockEmailSender
}

func newViolationDeps() violationDeps {
	return violationDeps{
		repo:      new(mocks.MockViolationRepo),
		companies: new(mocks.MockCompanyRepo),
		locations: new(mocks.MockLocationRepo),
		email:     new(mocks.MockEmailSender),
	}
}

func (d violationDeps) service() service.ViolationService {
	return service.NewViolationService(d.repo, d.companies, d.locations, d.email)
}

func seedViolation(d violationDeps, tenantID uuid.UUID) *domain.Violation {
	companyID := uuid.New()
	v := &domain.Violation{
		ID:         uuid.New(),
		TenantID:   tenantID,
		CompanyID:  companyID,
		Title:      "Guard absent",
		Severity:   domain.SeverityHigh,
		OccurredAt: time.Date(2026, 4, 2, 22, 15, 0, 0, time.UTC),
		Status:     domain.ViolationOpen,
	}
	d.repo.On("GetByID", mock.Anything, tenantID, v.ID).Return(v, nil)
	d.companies.On("GetByID", mock.Anything, tenantID, companyID).Return(&domain.Company{
		ID:           companyID,
		Name:         "Al Amn Guards",
		ContactEmail: "ops@alamn.sa",
	}, nil)
	return v
}

func TestViolationService_Create(t *testing.T) {
	d := newViolationDeps()
	tenantID, reporterID, companyID := uuid.New(), uuid.New(), uuid.New()

	d.companies.On("GetByID", mock.Anything, tenantID, companyID).Return(&domain.Company{ID: companyID}, nil)
	d.repo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Violation) bool {
		return v.ReportedBy == reporterID && v.Title == "Gate unmanned" && !v.OccurredAt.IsZero()
	})).Return(nil)

	v, err := d.service().Create(context.Background(), tenantID, reporterID, service.CreateViolationInput{
		CompanyID: companyID,
		Title:     "  Gate unmanned ",
		Severity:  domain.SeverityMedium,
	})

	require.NoError(t, err)
	assert.Equal(t, companyID, v.CompanyID)
	d.repo.AssertExpectations(t)
}

func TestViolationService_Create_InvalidSeverity(t *testing.T) {
	d := newViolationDeps()

	_, err := d.service().Create(context.Background(), uuid.New(), uuid.New(), service.CreateViolationInput{
		CompanyID: uuid.New(),
		Title:     "x",
		Severity:  "catastrophic",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidSeverity)
}

func TestViolationService_Close_AlreadyClosed(t *testing.T) {
	d := newViolationDeps()
	tenantID, id := uuid.New(), uuid.New()
	d.repo.On("Close", mock.Anything, tenantID, id, mock.AnythingOfType("time.Time")).Return(domain.ErrViolationClosed)

	_, err := d.service().Close(context.Background(), tenantID, id)

	assert.ErrorIs(t, err, domain.ErrViolationClosed)
}

func TestViolationService_Mailto_DefaultsToCompanyContact(t *testing.T) {
	d := newViolationDeps()
	tenantID := uuid.New()
	v := seedViolation(d, tenantID)

	link, err := d.service().Mailto(context.Background(), tenantID, v.ID, nil)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "mailto:ops@alamn.sa?subject=Violation%20notice%3A%20Guard%20absent&body="))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "Severity%3A%20high")
}

func TestViolationService_Mailto_InvalidRecipient(t *testing.T) {
	d := newViolationDeps()
	tenantID := uuid.New()
	v := seedViolation(d, tenantID)

	_, err := d.service().Mailto(context.Background(), tenantID, v.ID, []string{"not an address"})

	assert.ErrorIs(t, err, domain.ErrInvalidRecipient)
}

func TestViolationService_Notify_Email(t *testing.T) {
	d := newViolationDeps()
	tenantID, senderID := uuid.New(), uuid.New()
	v := seedViolation(d, tenantID)

	d.email.On("SendViolationNotice", mock.Anything, mock.MatchedBy(func(n port.ViolationNotice) bool {
		return len(n.To) == 1 && n.To[0] == "chief@alamn.sa" && strings.Contains(n.Body, "Al Amn Guards")
	})).Return(nil)
	d.repo.On("CreateSend", mock.Anything, mock.MatchedBy(func(s *domain.ViolationSend) bool {
		return s.Channel == domain.ChannelEmail && s.SentBy == senderID && s.ViolationID == v.ID
	})).Return(nil)

	result, err := d.service().Notify(context.Background(), tenantID, senderID, v.ID, service.NotifyInput{
		Recipients: []string{"chief@alamn.sa"},
		Channel:    domain.ChannelEmail,
	})

	require.NoError(t, err)
	assert.Empty(t, result.MailtoURL)
	d.email.AssertExpectations(t)
	d.repo.AssertExpectations(t)
}

func TestViolationService_Notify_MailtoLogsSendWithoutEmail(t *testing.T) {
	d := newViolationDeps()
	tenantID, senderID := uuid.New(), uuid.New()
	v := seedViolation(d, tenantID)

	d.repo.On("CreateSend", mock.Anything, mock.MatchedBy(func(s *domain.ViolationSend) bool {
		return s.Channel == domain.ChannelMailto
	})).Return(nil)

	result, err := d.service().Notify(context.Background(), tenantID, senderID, v.ID, service.NotifyInput{Channel: domain.ChannelMailto})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.MailtoURL, "mailto:ops@alamn.sa?"))
	d.email.AssertNotCalled(t, "SendViolationNotice", mock.Anything, mock.Anything)
}

func TestViolationService_Notify_EmailFailureSkipsSendLog(t *testing.T) {
	d := newViolationDeps()
	tenantID := uuid.New()
	v := seedViolation(d, tenantID)
	d.email.On("SendViolationNotice", mock.Anything, mock.Anything).Return(errors.New("throttled"))

	_, err := d.service().Notify(context.Background(), tenantID, uuid.New(), v.ID, service.NotifyInput{Channel: domain.ChannelEmail})

	assert.Error(t, err)
	d.repo.AssertNotCalled(t, "CreateSend", mock.Anything, mock.Anything)
}

func TestViolationService_Export_CSVWithBOM(t *testing.T) {
	d := newViolationDeps()
	tenantID := uuid.New()
	d.repo.On("ListForExport", mock.Anything, tenantID, port.ViolationFilter{}).Return([]port.ViolationExportRow{
		{Violation: domain.Violation{Title: "Guard absent", Severity: domain.SeverityHigh, Status: domain.ViolationOpen}, CompanyName: "Al Amn Guards"},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, d.service().Export(context.Background(), tenantID, port.ViolationFilter{}, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\ufeff"))
	assert.Contains(t, out, "Guard absent,Al Amn Guards")
}
