package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTenantInactive      = errors.New("tenant is inactive")
	ErrUserInactive        = errors.New("user is inactive")
	ErrInsufficientRole    = errors.New("insufficient role for this action")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail      = errors.New("email already exists for this tenant")
	ErrDuplicateTenantSlug = errors.New("tenant slug already exists")
	ErrOwnTenant           = errors.New("cannot modify the tenant you are signed into")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrValidation          = errors.New("request validation failed")

	ErrProviderLoginDisabled = errors.New("provider login is not configured")
	ErrProviderTokenInvalid  = errors.New("identity provider token is invalid or expired")

	ErrDuplicateCode     = errors.New("code already exists for this tenant")
	ErrUnknownResource   = errors.New("resource key is not part of the service taxonomy")
	ErrInvalidLevel      = errors.New("invalid taxonomy level")
	ErrServiceNotAllowed = errors.New("service is not allowed for this user")

	ErrCompanyInactive      = errors.New("company is inactive")
	ErrQuestionInactive     = errors.New("security question is inactive")
	ErrScoreOutOfRange      = errors.New("score is outside the question range")
	ErrDuplicateEvaluation  = errors.New("company already has an evaluation for this month")
	ErrEvaluationFinalized  = errors.New("evaluation is no longer editable")
	ErrSelfApproval         = errors.New("evaluator cannot decide on their own evaluation")
	ErrInvalidDecision      = errors.New("invalid approval decision")
	ErrEmptyEvaluation      = errors.New("evaluation has no answers")
	ErrViolationClosed      = errors.New("violation is already closed")
	ErrInvalidRecipient     = errors.New("invalid notification recipient")
	ErrInvalidSeverity      = errors.New("invalid violation severity")
	ErrNotAssigned          = errors.New("inspector is not assigned to this location")
	ErrDuplicateAssignment  = errors.New("inspector is already assigned to this location")
	ErrInvalidRating        = errors.New("likelihood and impact must be between 1 and 5")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrAppLocked            = errors.New("application is locked by an administrator")
	ErrEmptyChecklist       = errors.New("inspection checklist is empty")
	ErrLocationMismatch     = errors.New("location does not belong to the given parent")
)
