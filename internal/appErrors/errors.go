package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class across the API.
type ErrorCode string

// AppError is the application error carried from services up to the HTTP
// layer. HTTPCode and the wrapped error are never serialized.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy carrying structured details, so the predefined
// errors below stay immutable.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)

	// Profiles
	ErrProfileNotFound  = New(CodeProfileNotFound, "Profile not found", http.StatusNotFound)
	ErrProfileNotPublic = New(CodeProfileNotPublic, "Profile is not public", http.StatusForbidden)
	ErrProfileBlocked   = New(CodeProfileBlocked, "Profile is blocked", http.StatusForbidden)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// Onboarding pipeline
	ErrIllegalTransition    = New(CodeIllegalTransition, "Action is not allowed in the current onboarding stage", http.StatusConflict)
	ErrChecklistIncomplete  = New(CodeChecklistIncomplete, "Profile does not meet submission requirements", http.StatusUnprocessableEntity)
	ErrIdentityNotVerified  = New(CodeIdentityNotVerified, "Identity verification required", http.StatusForbidden)
	ErrSubscriptionInactive = New(CodeSubscriptionInactive, "Active subscription required", http.StatusForbidden)

	// Media
	ErrMediaNotFound     = New(CodeMediaNotFound, "Media asset not found", http.StatusNotFound)
	ErrPhotoLimitReached = New(CodePhotoLimitReached, "Photo limit for the current plan reached", http.StatusForbidden)

	// Rates
	ErrRateNotFound      = New(CodeRateNotFound, "Rate not found", http.StatusNotFound)
	ErrRateRuleViolation = New(CodeRateRuleViolation, "Rate violates pricing rules", http.StatusUnprocessableEntity)

	// Plans
	ErrPlanNotFound = New(CodePlanNotFound, "Subscription plan not found", http.StatusNotFound)
)

// ValidationError wraps grouped field errors into the standard envelope.
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeUserNotFound, message, http.StatusNotFound)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewConflictError(message string) *AppError {
	return New(CodeEmailAlreadyExists, message, http.StatusConflict)
}
