package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrFileNotFound    = errors.New("file not found")
	ErrMissingName     = errors.New("no usable \"name\" attribute")
	ErrUnknownStrategy = errors.New("unknown naming strategy")
	ErrEmptyIdentifier = errors.New("name contains no identifier characters")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeOutputWrite ErrorType = "output_write"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeParse       ErrorType = "parse"
	ErrorTypeNaming      ErrorType = "naming"
	ErrorTypeIO          ErrorType = "io"
	ErrorTypeConfig      ErrorType = "config"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// AppError is an application-specific error tagged with its kind and the
// file it concerns.
type AppError struct {
	Type    ErrorType
	Path    string
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError of the same kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(t ErrorType, path, message string, err error) *AppError {
	return &AppError{
		Type:    t,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// NewOutputWriteError reports that the output file could not be created or truncated
func NewOutputWriteError(path string, err error) *AppError {
	return newError(ErrorTypeOutputWrite, path, "cannot create output file", err)
}

// NewNotFoundError reports an input that does not resolve to a readable file
func NewNotFoundError(path string, err error) *AppError {
	return newError(ErrorTypeNotFound, path, "cannot read input file", err)
}

// NewParseError reports input content that is not valid JSON
func NewParseError(path, message string, err error) *AppError {
	return newError(ErrorTypeParse, path, message, err)
}

// NewNamingError reports a constant name that could not be resolved
func NewNamingError(path, message string, err error) *AppError {
	return newError(ErrorTypeNaming, path, message, err)
}

// NewIOError reports a failed write to the already created output
func NewIOError(path string, err error) *AppError {
	return newError(ErrorTypeIO, path, "failed to append declaration", err)
}

// NewConfigError reports an unusable configuration file or value
func NewConfigError(path, message string, err error) *AppError {
	return newError(ErrorTypeConfig, path, message, err)
}

// NewUnknownError wraps any other failure while processing an input
func NewUnknownError(path, message string, err error) *AppError {
	return newError(ErrorTypeUnknown, path, message, err)
}

// TypeOf returns the kind of err, or ErrorTypeUnknown when err carries no tag.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// UserFriendlyError returns a one-line, human-readable description of err.
func UserFriendlyError(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fmt.Sprintf("Error: %v", err)
	}

	where := ""
	if appErr.Path != "" {
		where = fmt.Sprintf(" '%s'", appErr.Path)
	}
	cause := ""
	if appErr.Err != nil {
		cause = fmt.Sprintf(": %v", appErr.Err)
	}

	switch appErr.Type {
	case ErrorTypeOutputWrite:
		return fmt.Sprintf("Output error: cannot create%s%s", where, cause)
	case ErrorTypeNotFound:
		if errors.Is(appErr.Err, ErrFileNotFound) {
			return fmt.Sprintf("Input error: file%s not found", where)
		}
		return fmt.Sprintf("Input error: cannot read%s%s", where, cause)
	case ErrorTypeParse:
		return fmt.Sprintf("JSON parsing error in%s: %s", where, appErr.Message)
	case ErrorTypeNaming:
		return fmt.Sprintf("Naming error in%s: %s%s", where, appErr.Message, cause)
	case ErrorTypeIO:
		return fmt.Sprintf("Output error: failed to append to%s%s", where, cause)
	case ErrorTypeConfig:
		return fmt.Sprintf("Configuration error in%s: %s%s", where, appErr.Message, cause)
	default:
		return fmt.Sprintf("Error processing%s: %s%s", where, appErr.Message, cause)
	}
}
