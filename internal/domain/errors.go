package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Catalog errors
	CodeLevelNotFound ErrorCode = "LEVEL_NOT_FOUND"
	CodeLevelLocked   ErrorCode = "LEVEL_LOCKED"
	CodeInvalidLevel  ErrorCode = "INVALID_LEVEL"

	// Session errors
	CodeSessionNotFound      ErrorCode = "SESSION_NOT_FOUND"
	CodeInvalidOption        ErrorCode = "INVALID_OPTION"
	CodeAdvanceBeforeAnswer  ErrorCode = "ADVANCE_BEFORE_ANSWER"
	CodeInvalidSessionState  ErrorCode = "INVALID_SESSION_STATE"
	CodeSessionStoreFailure  ErrorCode = "SESSION_STORE_FAILURE"
	CodeCatalogSourceFailure ErrorCode = "CATALOG_SOURCE_FAILURE"
)

// Sentinel errors for errors.Is matching. A DomainError matches a sentinel
// when their codes are equal.
var (
	ErrLevelNotFound       = &DomainError{Code: CodeLevelNotFound, Message: "level not found"}
	ErrLevelLocked         = &DomainError{Code: CodeLevelLocked, Message: "level is locked"}
	ErrSessionNotFound     = &DomainError{Code: CodeSessionNotFound, Message: "session not found"}
	ErrInvalidOption       = &DomainError{Code: CodeInvalidOption, Message: "option index is out of range"}
	ErrAdvanceBeforeAnswer = &DomainError{Code: CodeAdvanceBeforeAnswer, Message: "cannot advance before the current question is answered"}
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithContext attaches a key/value pair that is rendered in error responses.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewLevelNotFoundError(levelID int) *DomainError {
	return NewError(CodeLevelNotFound, fmt.Sprintf("level not found with ID: %d", levelID), nil).
		WithContext("level_id", levelID)
}

func NewLevelLockedError(levelID int) *DomainError {
	return NewError(CodeLevelLocked, fmt.Sprintf("level %d is locked", levelID), nil).
		WithContext("level_id", levelID)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("session not found with ID: %s", sessionID), nil).
		WithContext("session_id", sessionID)
}

func NewInvalidOptionError(option, optionCount int) *DomainError {
	return NewError(CodeInvalidOption, fmt.Sprintf("option index %d is out of range [0, %d)", option, optionCount), nil).
		WithContext("option_index", option).
		WithContext("option_count", optionCount)
}

func NewAdvanceBeforeAnswerError(questionIndex int) *DomainError {
	return NewError(CodeAdvanceBeforeAnswer, fmt.Sprintf("question %d has not been answered yet", questionIndex+1), nil).
		WithContext("question_index", questionIndex)
}

func NewInvalidSessionStateError(message string) *DomainError {
	return NewError(CodeInvalidSessionState, message, nil)
}

func NewSessionStoreError(message string, err error) *DomainError {
	return NewError(CodeSessionStoreFailure, message, err)
}

func NewCatalogSourceError(message string, err error) *DomainError {
	return NewError(CodeCatalogSourceFailure, message, err)
}

// ValidationError describes a single invalid field
type ValidationError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a list of field validation failures
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Code: CodeValidation, Message: message}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Code: CodeMissingField, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Code: CodeInvalidFormat, Message: "invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   value,
	}
}
