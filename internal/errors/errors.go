// Package errors provides unified error handling across the content-forge system.
//
// SYSTEM ARCHITECTURE ROLE:
// This module is the foundation for error handling across all interfaces (CLI, TUI).
// It standardizes error representation, categorization, and handling patterns.
//
// KEY RESPONSIBILITIES:
// - Define standardized error codes for every recoverable failure in the engine
// - Provide structured error types (AppError) with severity levels and context
// - Enable interface-specific error formatting while keeping core error data consistent
//
// INTEGRATION POINTS:
// - internal/draft: draft mutations return AppErrors (unknown platform, field not allowed, ...)
// - internal/storage: store and registry operations surface PERSISTENCE_ERROR / LOAD_ERROR
// - internal/export: forward assignment returns INVALID_MEMBER
// - internal/cli/cli.go: CLIErrorHandler formats AppErrors for terminal display
// - internal/ui: TUIErrorHandler provides styling for bubble tea error display
//
// USAGE PATTERNS:
// - Create errors: Use constructor functions like NotFoundError(), PersistenceError()
// - Wrap errors: Use Wrap() to add context to existing errors
// - Check types: Use IsAppError(), GetAppError() and HasCode() for type-safe handling
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Draft errors
	ErrCodeUnknownPlatform  ErrorCode = "UNKNOWN_PLATFORM"
	ErrCodeFieldNotAllowed  ErrorCode = "FIELD_NOT_ALLOWED"
	ErrCodeUnknownMetaField ErrorCode = "UNKNOWN_META_FIELD"

	// Hashtag errors
	ErrCodeLimitExceeded ErrorCode = "LIMIT_EXCEEDED"
	ErrCodeDuplicateTag  ErrorCode = "DUPLICATE_TAG"

	// Store and registry errors
	ErrCodeEmptyName     ErrorCode = "EMPTY_NAME"
	ErrCodeEmptyValue    ErrorCode = "EMPTY_VALUE"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Forwarding errors
	ErrCodeInvalidMember ErrorCode = "INVALID_MEMBER"

	// External causes: the backing store or platform source misbehaving
	ErrCodePersistence ErrorCode = "PERSISTENCE_ERROR"
	ErrCodeLoad        ErrorCode = "LOAD_ERROR"

	// Glue paths
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryDraft    ErrorCategory = "draft"
	CategoryHashtag  ErrorCategory = "hashtag"
	CategoryStore    ErrorCategory = "store"
	CategoryRegistry ErrorCategory = "registry"
	CategoryForward  ErrorCategory = "forward"
	CategoryStorage  ErrorCategory = "storage"
	CategorySystem   ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Retryable bool                   `json:"retryable"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether the error is retryable
func (e *AppError) IsRetryable() bool {
	return e.Retryable
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Cause:     err,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeUnknownPlatform:
		return CategoryDraft, SeverityError
	case ErrCodeFieldNotAllowed, ErrCodeUnknownMetaField:
		return CategoryDraft, SeverityWarning

	case ErrCodeLimitExceeded, ErrCodeDuplicateTag:
		return CategoryHashtag, SeverityWarning

	case ErrCodeEmptyName, ErrCodeNotFound:
		return CategoryStore, SeverityInfo

	case ErrCodeEmptyValue, ErrCodeAlreadyExists:
		return CategoryRegistry, SeverityWarning

	case ErrCodeInvalidMember:
		return CategoryForward, SeverityWarning

	case ErrCodePersistence:
		return CategoryStorage, SeverityError
	case ErrCodeLoad:
		return CategoryStorage, SeverityWarning

	case ErrCodeInvalidInput:
		return CategorySystem, SeverityWarning
	case ErrCodeInternalError:
		return CategorySystem, SeverityCritical

	default:
		return CategorySystem, SeverityError
	}
}

// isRetryable determines if an error is retryable based on its code
func isRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodePersistence, ErrCodeLoad:
		return true
	default:
		return false
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// Common error constructors for frequently used errors

func UnknownPlatformError(key string) *AppError {
	return NewAppError(ErrCodeUnknownPlatform, fmt.Sprintf("Platform '%s' is not in the catalog", key))
}

func FieldNotAllowedError(field, platform string) *AppError {
	return NewAppError(ErrCodeFieldNotAllowed,
		fmt.Sprintf("Field '%s' is not available on platform '%s'", field, platform))
}

func UnknownMetaFieldError(key string) *AppError {
	return NewAppError(ErrCodeUnknownMetaField, fmt.Sprintf("Meta field '%s' is not recognized", key))
}

func LimitExceededError(max int) *AppError {
	return NewAppError(ErrCodeLimitExceeded, fmt.Sprintf("Maximum %d hashtags allowed", max))
}

func DuplicateTagError(tag string) *AppError {
	return NewAppError(ErrCodeDuplicateTag, fmt.Sprintf("Hashtag '%s' already added", tag))
}

func EmptyNameError() *AppError {
	return NewAppError(ErrCodeEmptyName, "Template name must not be empty")
}

func EmptyValueError(registry string) *AppError {
	return NewAppError(ErrCodeEmptyValue, fmt.Sprintf("%s entry is empty after normalization", registry))
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func AlreadyExistsError(resource string) *AppError {
	return NewAppError(ErrCodeAlreadyExists, fmt.Sprintf("%s already exists", resource))
}

func InvalidMemberError(member string) *AppError {
	return NewAppError(ErrCodeInvalidMember, fmt.Sprintf("'%s' is not a known team member", member))
}

func PersistenceError(operation string, err error) *AppError {
	return Wrap(err, ErrCodePersistence, fmt.Sprintf("Storage operation failed: %s", operation))
}

func LoadError(resource string, err error) *AppError {
	return Wrap(err, ErrCodeLoad, fmt.Sprintf("Failed to load %s", resource))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}
