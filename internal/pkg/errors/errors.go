package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Configuration errors: missing project name / endpoint, bad override URL
	ErrorTypeConfig ErrorType = "Configuration"

	// I/O errors: source file, connection, stream write/read, HTTP failure status
	ErrorTypeIO ErrorType = "IO"

	// Credential resolution errors
	ErrorTypeCredentials ErrorType = "Credentials"

	// Parsing errors
	ErrorTypeParsing ErrorType = "Parsing"

	// AI diagnosis errors
	ErrorTypeDiagnosis ErrorType = "Diagnosis"
)

// AppError represents an application error with type information
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewError creates a new AppError
func NewError(errType ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether err, or any error it wraps, is an AppError of the given type
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// NewConfigError creates a configuration error
func NewConfigError(message string, err error) *AppError {
	return NewError(ErrorTypeConfig, message, err)
}

// NewIOError creates an I/O error
func NewIOError(message string, err error) *AppError {
	return NewError(ErrorTypeIO, message, err)
}

// NewCredentialsError creates a credential resolution error
func NewCredentialsError(message string, err error) *AppError {
	return NewError(ErrorTypeCredentials, message, err)
}

// NewParsingError creates a parsing error
func NewParsingError(field string, value string, err error) *AppError {
	message := fmt.Sprintf("Failed to parse %s '%s'", field, value)
	return NewError(ErrorTypeParsing, message, err)
}

// NewDiagnosisError creates an AI diagnosis error
func NewDiagnosisError(message string, err error) *AppError {
	return NewError(ErrorTypeDiagnosis, message, err)
}
