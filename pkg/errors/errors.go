package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrRunFailed    ErrorCode = "RUN_FAILED"

	// ErrStrictFailures is returned by --strict runs that had failed work
	ErrStrictFailures ErrorCode = "STRICT_FAILURES"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Git errors
	ErrGitUnavailable   ErrorCode = "GIT_UNAVAILABLE"
	ErrGitVersion       ErrorCode = "GIT_VERSION"
	ErrSubmoduleInit    ErrorCode = "SUBMODULE_INIT"
	ErrSubmoduleUpdate  ErrorCode = "SUBMODULE_UPDATE"
	ErrSubmoduleInspect ErrorCode = "SUBMODULE_INSPECT"

	// Hook errors
	ErrHookFailed  ErrorCode = "HOOK_FAILED"
	ErrHookInvalid ErrorCode = "HOOK_INVALID"

	// Link errors
	ErrActionUnknown ErrorCode = "ACTION_UNKNOWN"
	ErrLinkCreate    ErrorCode = "LINK_CREATE"
	ErrLinkRemove    ErrorCode = "LINK_REMOVE"
	ErrLinkExists    ErrorCode = "LINK_EXISTS"
	ErrLinkMissing   ErrorCode = "LINK_MISSING"
	ErrSourceMissing ErrorCode = "SOURCE_MISSING"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrNoSymlinks ErrorCode = "NO_SYMLINKS"
)

// SubbootError represents a structured error with code and details
type SubbootError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SubbootError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SubbootError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SubbootError) Is(target error) bool {
	var targetErr *SubbootError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SubbootError with the given code and message
func New(code ErrorCode, message string) *SubbootError {
	return &SubbootError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SubbootError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SubbootError {
	return &SubbootError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SubbootError
func Wrap(err error, code ErrorCode, message string) *SubbootError {
	if err == nil {
		return nil
	}
	return &SubbootError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SubbootError {
	if err == nil {
		return nil
	}
	return &SubbootError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SubbootError) WithDetail(key string, value interface{}) *SubbootError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var subbootErr *SubbootError
	if errors.As(err, &subbootErr) {
		return subbootErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SubbootError
func GetErrorCode(err error) ErrorCode {
	var subbootErr *SubbootError
	if errors.As(err, &subbootErr) {
		return subbootErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SubbootError
func GetErrorDetails(err error) map[string]interface{} {
	var subbootErr *SubbootError
	if errors.As(err, &subbootErr) {
		return subbootErr.Details
	}
	return nil
}
