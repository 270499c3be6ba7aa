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

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Workspace errors
	ErrProjectLoad          ErrorCode = "PROJECT_LOAD"
	ErrPackageNotReferenced ErrorCode = "PACKAGE_NOT_REFERENCED"

	// Link state precondition errors. Each one is a distinct, user-actionable
	// condition; none of them is ever raised after a mutation has started.
	ErrLibFolderMissing    ErrorCode = "LIB_FOLDER_MISSING"
	ErrLibNotDirectory     ErrorCode = "LIB_NOT_DIRECTORY"
	ErrAlreadyLinked       ErrorCode = "ALREADY_LINKED"
	ErrNotLinked           ErrorCode = "NOT_LINKED"
	ErrBackupMissing       ErrorCode = "BACKUP_MISSING"
	ErrBackupAlreadyExists ErrorCode = "BACKUP_ALREADY_EXISTS"
	ErrLocalSourceMissing  ErrorCode = "LOCAL_SOURCE_MISSING"
	ErrLocalSourceInLib    ErrorCode = "LOCAL_SOURCE_IN_LIB"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrRename        ErrorCode = "RENAME"
	ErrRemove        ErrorCode = "REMOVE"

	// Batch errors
	ErrPartialFailure ErrorCode = "PARTIAL_FAILURE"
)

// NulinkError represents a structured error with code and details
type NulinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *NulinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *NulinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *NulinkError) Is(target error) bool {
	var targetErr *NulinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new NulinkError with the given code and message
func New(code ErrorCode, message string) *NulinkError {
	return &NulinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new NulinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *NulinkError {
	return &NulinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a NulinkError
func Wrap(err error, code ErrorCode, message string) *NulinkError {
	if err == nil {
		return nil
	}
	return &NulinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *NulinkError {
	if err == nil {
		return nil
	}
	return &NulinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *NulinkError) WithDetail(key string, value interface{}) *NulinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *NulinkError) WithDetails(details map[string]interface{}) *NulinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var nulinkErr *NulinkError
	if errors.As(err, &nulinkErr) {
		return nulinkErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a NulinkError
func GetErrorCode(err error) ErrorCode {
	var nulinkErr *NulinkError
	if errors.As(err, &nulinkErr) {
		return nulinkErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a NulinkError
func GetErrorDetails(err error) map[string]interface{} {
	var nulinkErr *NulinkError
	if errors.As(err, &nulinkErr) {
		return nulinkErr.Details
	}
	return nil
}

// Message returns the human readable message of a NulinkError without the
// code prefix, falling back to err.Error() for foreign errors.
func Message(err error) string {
	var nulinkErr *NulinkError
	if errors.As(err, &nulinkErr) {
		if nulinkErr.Wrapped != nil {
			return fmt.Sprintf("%s: %v", nulinkErr.Message, nulinkErr.Wrapped)
		}
		return nulinkErr.Message
	}
	return err.Error()
}
