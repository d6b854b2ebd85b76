package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Tenant represents an isolated organizational tenant.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	TenantID         uuid.UUID      `db:"tenant_id" json:"tenant_id"`
	JobID            *uuid.UUID     `db:"job_id" json:"job_id"`
	Email            string         `db:"email" json:"email"`
	PasswordHash     string         `db:"password_hash" json:"-"`
	FullName         string         `db:"full_name" json:"full_name"`
	Phone            string         `db:"phone" json:"phone"`
	EmployeeNumber   string         `db:"employee_number" json:"employee_number"`
	Role             UserRole       `db:"role" json:"role"`
	IsActive         bool           `db:"is_active" json:"is_active"`
	IsPlatformAdmin  bool           `db:"is_platform_admin" json:"is_platform_admin"`
	AvatarKey        string         `db:"avatar_key" json:"-"`
	SignatureKey     string         `db:"signature_key" json:"-"`
	FavoriteServices pq.StringArray `db:"favorite_services" json:"favorite_services"`
	FirebaseUID      *string        `db:"firebase_uid" json:"-"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// Job is a job title; its permission rows are the defaults for every holder.
type Job struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Title     string    `db:"title" json:"title"`
	NameAR    string    `db:"name_ar" json:"name_ar"`
	NameEN    string    `db:"name_en" json:"name_en"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TaxonomyNode is one entry of the three-level access taxonomy. ParentID
// is nil for services, the service id for sub-services and the sub-service
// id for sub-sub-services.
type TaxonomyNode struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	TenantID  uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	Level     TaxonomyLevel `db:"-" json:"level"`
	ParentID  *uuid.UUID    `db:"parent_id" json:"parent_id,omitempty"`
	Code      string        `db:"code" json:"code"`
	NameAR    string        `db:"name_ar" json:"name_ar"`
	NameEN    string        `db:"name_en" json:"name_en"`
	SortOrder int           `db:"sort_order" json:"sort_order"`
	IsActive  bool          `db:"is_active" json:"is_active"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// Taxonomy is the full service tree of a tenant, one slice per level.
type Taxonomy struct {
	Services       []TaxonomyNode `json:"services"`
	SubServices    []TaxonomyNode `json:"sub_services"`
	SubSubServices []TaxonomyNode `json:"sub_sub_services"`
}

// PermissionRow is one sparse override row of job_permissions or
// user_permissions. SubjectID is the job or user id; exactly one of the
// three resource columns is set.
type PermissionRow struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	TenantID        uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	SubjectID       uuid.UUID  `db:"subject_id" json:"subject_id"`
	ServiceID       *uuid.UUID `db:"service_id" json:"service_id,omitempty"`
	SubServiceID    *uuid.UUID `db:"sub_service_id" json:"sub_service_id,omitempty"`
	SubSubServiceID *uuid.UUID `db:"sub_sub_service_id" json:"sub_sub_service_id,omitempty"`
	IsAllowed       bool       `db:"is_allowed" json:"is_allowed"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Company is a guard-services company under evaluation.
type Company struct {
	ID                       uuid.UUID  `db:"id" json:"id"`
	TenantID                 uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	Name                     string     `db:"name" json:"name"`
	NameEN                   string     `db:"name_en" json:"name_en"`
	ContractNumber           string     `db:"contract_number" json:"contract_number"`
	ContactEmail             string     `db:"contact_email" json:"contact_email"`
	EvaluationIntervalMonths int        `db:"evaluation_interval_months" json:"evaluation_interval_months"`
	LastEvaluatedAt          *time.Time `db:"last_evaluated_at" json:"last_evaluated_at"`
	Score                    float64    `db:"score" json:"score"`
	IsActive                 bool       `db:"is_active" json:"is_active"`
	CreatedAt                time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time  `db:"updated_at" json:"updated_at"`
}

// SecurityQuestion is one item of the evaluation question set.
type SecurityQuestion struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	TextAR    string    `db:"text_ar" json:"text_ar"`
	TextEN    string    `db:"text_en" json:"text_en"`
	Category  string    `db:"category" json:"category"`
	MaxScore  int       `db:"max_score" json:"max_score"`
	SortOrder int       `db:"sort_order" json:"sort_order"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SecurityEvaluation is a scored assessment of a company for one month.
type SecurityEvaluation struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	TenantID    uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	CompanyID   uuid.UUID        `db:"company_id" json:"company_id"`
	EvaluatorID uuid.UUID        `db:"evaluator_id" json:"evaluator_id"`
	PeriodMonth time.Time        `db:"period_month" json:"period_month"`
	EvaluatedAt time.Time        `db:"evaluated_at" json:"evaluated_at"`
	TotalScore  int              `db:"total_score" json:"total_score"`
	MaxScore    int              `db:"max_score" json:"max_score"`
	Percentage  float64          `db:"percentage" json:"percentage"`
	Notes       string           `db:"notes" json:"notes"`
	Status      EvaluationStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
}

// SecurityEvaluationDetail is the answer to one question within an evaluation.
type SecurityEvaluationDetail struct {
	ID           uuid.UUID `db:"id" json:"id"`
	EvaluationID uuid.UUID `db:"evaluation_id" json:"evaluation_id"`
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	QuestionID   uuid.UUID `db:"question_id" json:"question_id"`
	Score        int       `db:"score" json:"score"`
	Comment      string    `db:"comment" json:"comment"`
}

// EvaluationApproval is one entry of an evaluation's approval trail.
type EvaluationApproval struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	EvaluationID uuid.UUID        `db:"evaluation_id" json:"evaluation_id"`
	TenantID     uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	ApproverID   uuid.UUID        `db:"approver_id" json:"approver_id"`
	Decision     ApprovalDecision `db:"decision" json:"decision"`
	Notes        string           `db:"notes" json:"notes"`
	SignatureKey string           `db:"signature_key" json:"signature_key"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// EvaluationWithDetails bundles an evaluation with its children.
type EvaluationWithDetails struct {
	SecurityEvaluation
	Details   []SecurityEvaluationDetail `json:"details"`
	Approvals []EvaluationApproval       `json:"approvals"`
}

// Violation is an incident recorded against a company.
type Violation struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	TenantID      uuid.UUID         `db:"tenant_id" json:"tenant_id"`
	CompanyID     uuid.UUID         `db:"company_id" json:"company_id"`
	BuildingID    *uuid.UUID        `db:"building_id" json:"building_id"`
	ReportedBy    uuid.UUID         `db:"reported_by" json:"reported_by"`
	Title         string            `db:"title" json:"title"`
	Description   string            `db:"description" json:"description"`
	Severity      ViolationSeverity `db:"severity" json:"severity"`
	OccurredAt    time.Time         `db:"occurred_at" json:"occurred_at"`
	PenaltyAmount float64           `db:"penalty_amount" json:"penalty_amount"`
	Status        ViolationStatus   `db:"status" json:"status"`
	ClosedAt      *time.Time        `db:"closed_at" json:"closed_at"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// ViolationSend logs one outbound notification about a violation.
type ViolationSend struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	ViolationID uuid.UUID      `db:"violation_id" json:"violation_id"`
	TenantID    uuid.UUID      `db:"tenant_id" json:"tenant_id"`
	SentBy      uuid.UUID      `db:"sent_by" json:"sent_by"`
	Channel     SendChannel    `db:"channel" json:"channel"`
	Recipients  pq.StringArray `db:"recipients" json:"recipients"`
	Subject     string         `db:"subject" json:"subject"`
	SentAt      time.Time      `db:"sent_at" json:"sent_at"`
}

// Sector is the top level of the location hierarchy.
type Sector struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	NameAR    string    `db:"name_ar" json:"name_ar"`
	NameEN    string    `db:"name_en" json:"name_en"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Building belongs to a sector.
type Building struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	SectorID  uuid.UUID `db:"sector_id" json:"sector_id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Subbuilding belongs to a building.
type Subbuilding struct {
	ID         uuid.UUID `db:"id" json:"id"`
	TenantID   uuid.UUID `db:"tenant_id" json:"tenant_id"`
	BuildingID uuid.UUID `db:"building_id" json:"building_id"`
	Name       string    `db:"name" json:"name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Distribution pre-assigns an inspector to a location.
type Distribution struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	TenantID      uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	InspectorID   uuid.UUID  `db:"inspector_id" json:"inspector_id"`
	SectorID      uuid.UUID  `db:"sector_id" json:"sector_id"`
	BuildingID    uuid.UUID  `db:"building_id" json:"building_id"`
	SubbuildingID *uuid.UUID `db:"subbuilding_id" json:"subbuilding_id"`
	AssignedBy    uuid.UUID  `db:"assigned_by" json:"assigned_by"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// ChecklistItem is one line of an inspection checklist.
type ChecklistItem struct {
	Item   string `json:"item"`
	Passed bool   `json:"passed"`
	Note   string `json:"note,omitempty"`
}

// Inspection is a safety inspection of a building.
type Inspection struct {
	ID            uuid.UUID        `db:"id" json:"id"`
	TenantID      uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	InspectorID   uuid.UUID        `db:"inspector_id" json:"inspector_id"`
	BuildingID    uuid.UUID        `db:"building_id" json:"building_id"`
	SubbuildingID *uuid.UUID       `db:"subbuilding_id" json:"subbuilding_id"`
	InspectedAt   time.Time        `db:"inspected_at" json:"inspected_at"`
	Checklist     json.RawMessage  `db:"checklist" json:"checklist"`
	Status        InspectionStatus `db:"status" json:"status"`
	Notes         string           `db:"notes" json:"notes"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}

// Risk is an identified safety risk at a location.
type Risk struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	TenantID    uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	BuildingID  *uuid.UUID `db:"building_id" json:"building_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Likelihood  int        `db:"likelihood" json:"likelihood"`
	Impact      int        `db:"impact" json:"impact"`
	Rating      int        `db:"rating" json:"rating"`
	Level       RiskLevel  `db:"level" json:"level"`
	Status      RiskStatus `db:"status" json:"status"`
	ReportedBy  uuid.UUID  `db:"reported_by" json:"reported_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// MaintenanceLog records maintenance work, optionally against a risk.
type MaintenanceLog struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	TenantID    uuid.UUID         `db:"tenant_id" json:"tenant_id"`
	BuildingID  uuid.UUID         `db:"building_id" json:"building_id"`
	RiskID      *uuid.UUID        `db:"risk_id" json:"risk_id"`
	Description string            `db:"description" json:"description"`
	PerformedBy uuid.UUID         `db:"performed_by" json:"performed_by"`
	PerformedAt *time.Time        `db:"performed_at" json:"performed_at"`
	Cost        float64           `db:"cost" json:"cost"`
	Status      MaintenanceStatus `db:"status" json:"status"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}

// AppSecurity is the per-tenant kill switch.
type AppSecurity struct {
	TenantID  uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	IsLocked  bool       `db:"is_locked" json:"is_locked"`
	Message   string     `db:"message" json:"message"`
	UpdatedBy *uuid.UUID `db:"updated_by" json:"updated_by"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Stats holds the dashboard counters of a tenant.
type Stats struct {
	ActiveCompanies       int     `db:"active_companies" json:"active_companies"`
	AverageCompanyScore   float64 `db:"average_company_score" json:"average_company_score"`
	PendingEvaluations    int     `db:"pending_evaluations" json:"pending_evaluations"`
	OpenViolations        int     `db:"open_violations" json:"open_violations"`
	OpenRisks             int     `db:"open_risks" json:"open_risks"`
	InspectionsThisMonth  int     `db:"inspections_this_month" json:"inspections_this_month"`
	NonCompliantThisMonth int     `db:"non_compliant_this_month" json:"non_compliant_this_month"`
}
