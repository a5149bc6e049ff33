package appErrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"

	// Resources
	CodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	CodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	CodeMediaNotFound   ErrorCode = "MEDIA_NOT_FOUND"
	CodeRateNotFound    ErrorCode = "RATE_NOT_FOUND"
	CodePlanNotFound    ErrorCode = "PLAN_NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists   ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeProfileNotPublic     ErrorCode = "PROFILE_NOT_PUBLIC"
	CodeProfileBlocked       ErrorCode = "PROFILE_BLOCKED"
	CodeIllegalTransition    ErrorCode = "ILLEGAL_TRANSITION"
	CodeChecklistIncomplete  ErrorCode = "CHECKLIST_INCOMPLETE"
	CodePhotoLimitReached    ErrorCode = "PHOTO_LIMIT_REACHED"
	CodeRateRuleViolation    ErrorCode = "RATE_RULE_VIOLATION"
	CodeIdentityNotVerified  ErrorCode = "IDENTITY_NOT_VERIFIED"
	CodeSubscriptionInactive ErrorCode = "SUBSCRIPTION_INACTIVE"

	// System
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
