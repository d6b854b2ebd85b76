package domain

// FileType represents the allowed image types for profile media uploads.
type FileType string

const (
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// MediaKind identifies which profile image slot an upload fills.
type MediaKind string

const (
	MediaAvatar    MediaKind = "avatar"
	MediaSignature MediaKind = "signature"
)

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// TaxonomyLevel identifies the depth of a taxonomy node.
type TaxonomyLevel string

const (
	LevelService       TaxonomyLevel = "service"
	LevelSubService    TaxonomyLevel = "sub_service"
	LevelSubSubService TaxonomyLevel = "sub_sub_service"
)

// ParentLevel returns the level directly above l, or "" for services.
func (l TaxonomyLevel) ParentLevel() TaxonomyLevel {
	switch l {
	case LevelSubService:
		return LevelService
	case LevelSubSubService:
		return LevelSubService
	}
	return ""
}

// ChildLevel returns the level directly below l, or "" for leaves.
func (l TaxonomyLevel) ChildLevel() TaxonomyLevel {
	switch l {
	case LevelService:
		return LevelSubService
	case LevelSubService:
		return LevelSubSubService
	}
	return ""
}

// Valid reports whether l is a known level.
func (l TaxonomyLevel) Valid() bool {
	return l == LevelService || l == LevelSubService || l == LevelSubSubService
}

// EvaluationStatus is the lifecycle state of a security evaluation.
type EvaluationStatus string

const (
	EvaluationPending  EvaluationStatus = "pending"
	EvaluationApproved EvaluationStatus = "approved"
	EvaluationRejected EvaluationStatus = "rejected"
	EvaluationReturned EvaluationStatus = "returned"
)

// ApprovalDecision is the outcome recorded in the approval trail.
type ApprovalDecision string

const (
	DecisionApproved ApprovalDecision = "approved"
	DecisionRejected ApprovalDecision = "rejected"
	DecisionReturned ApprovalDecision = "returned"
)

// ValidDecisions maps a decision to the evaluation status it produces.
var ValidDecisions = map[ApprovalDecision]EvaluationStatus{
	DecisionApproved: EvaluationApproved,
	DecisionRejected: EvaluationRejected,
	DecisionReturned: EvaluationReturned,
}

// ViolationSeverity classifies a violation.
type ViolationSeverity string

const (
	SeverityLow    ViolationSeverity = "low"
	SeverityMedium ViolationSeverity = "medium"
	SeverityHigh   ViolationSeverity = "high"
)

// ValidSeverities is the set of accepted violation severities.
var ValidSeverities = map[ViolationSeverity]bool{
	SeverityLow:    true,
	SeverityMedium: true,
	SeverityHigh:   true,
}

// ViolationStatus tracks whether a violation is still being followed up.
type ViolationStatus string

const (
	ViolationOpen   ViolationStatus = "open"
	ViolationClosed ViolationStatus = "closed"
)

// SendChannel is how a violation notice left the system.
type SendChannel string

const (
	ChannelEmail  SendChannel = "email"
	ChannelMailto SendChannel = "mailto"
)

// InspectionStatus is derived from the checklist outcome.
type InspectionStatus string

const (
	InspectionCompliant    InspectionStatus = "compliant"
	InspectionNonCompliant InspectionStatus = "non_compliant"
)

// RiskStatus tracks mitigation progress.
type RiskStatus string

const (
	RiskOpen      RiskStatus = "open"
	RiskMitigated RiskStatus = "mitigated"
	RiskClosed    RiskStatus = "closed"
)

// ValidRiskStatuses is the set of accepted risk statuses.
var ValidRiskStatuses = map[RiskStatus]bool{
	RiskOpen:      true,
	RiskMitigated: true,
	RiskClosed:    true,
}

// RiskLevel buckets a likelihood x impact rating.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// MaintenanceStatus tracks a maintenance log entry.
type MaintenanceStatus string

const (
	MaintenanceScheduled MaintenanceStatus = "scheduled"
	MaintenanceCompleted MaintenanceStatus = "completed"
)
