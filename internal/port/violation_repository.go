package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hejazi/internal/domain"
)

// ViolationFilter narrows violation listings. Nil fields are ignored.
type ViolationFilter struct {
	CompanyID *uuid.UUID
	Status    *domain.ViolationStatus
}

// ViolationExportRow is one line of the violation CSV.
type ViolationExportRow struct {
	domain.Violation
	CompanyName  string `db:"company_name"`
	BuildingName string `db:"building_name"`
	ReporterName string `db:"reporter_name"`
}

// ViolationRepository defines the contract for violation persistence.
type ViolationRepository interface {
	Create(ctx context.Context, v *domain.Violation) error
	GetByID(ctx context.Context, tenantID, violationID uuid.UUID) (*domain.Violation, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ViolationFilter, offset, limit int) ([]domain.Violation, int, error)
	// Close marks an open violation closed. Returns ErrViolationClosed if it
	// was already closed.
	Close(ctx context.Context, tenantID, violationID uuid.UUID, at time.Time) error
	CreateSend(ctx context.Context, send *domain.ViolationSend) error
	ListSends(ctx context.Context, tenantID, violationID uuid.UUID) ([]domain.ViolationSend, error)
	ListForExport(ctx context.Context, tenantID uuid.UUID, filter ViolationFilter) ([]ViolationExportRow, error)
}
