package errors

import (
	"errors"
	"fmt"

	"gamrycli/pkg/contracts/domain"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypePrecondition      ErrorType = "PRECONDITION"
	ErrTypeDataInconsistency ErrorType = "DATA_INCONSISTENCY"
	ErrTypeParsing           ErrorType = "PARSING"
	ErrTypeNotFound          ErrorType = "NOT_FOUND"
	ErrTypeConfig            ErrorType = "CONFIG"
	ErrTypeStorage           ErrorType = "STORAGE"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether any AppError in err's chain has the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// Sentinels. Match with errors.Is; the constructors below wrap them.
var (
	ErrNoSource           = errors.New("no source path set")
	ErrSourceNotFound     = errors.New("source file does not exist")
	ErrHeaderNotRead      = errors.New("header has not been read")
	ErrCurveOutOfRange    = domain.ErrCurveOutOfRange
	ErrWrongExperiment    = errors.New("wrong experiment type")
	ErrUnitMismatch       = errors.New("unit mismatch")
	ErrUnknownCurvePrefix = errors.New("unknown curve prefix")
	ErrMissingColumn      = errors.New("missing column")
	ErrMalformedLine      = errors.New("malformed line")
)

// NewPreconditionError creates an error for a call made in an invalid state.
func NewPreconditionError(message string, cause error) *AppError {
	return NewAppError(ErrTypePrecondition, message, cause)
}

// NewDataInconsistencyError creates an error for a file whose tables disagree.
func NewDataInconsistencyError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataInconsistency, message, cause)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string, cause error) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// WrongExperiment reports a TAG that does not match the requested view.
func WrongExperiment(expected, found string) *AppError {
	return NewPreconditionError(
		fmt.Sprintf("expected experiment type %q, found %q", expected, found),
		ErrWrongExperiment,
	).WithContext("expected", expected).WithContext("found", found)
}

// CurveOutOfRange reports an index outside [0, count).
func CurveOutOfRange(index, count int) *AppError {
	return NewPreconditionError(
		"invalid curve index",
		&domain.CurveIndexError{Index: index, Count: count},
	).WithContext("index", index).WithContext("count", count)
}

// FromDomain lifts the plain errors returned by the domain package into
// AppErrors. Other errors pass through unchanged.
func FromDomain(err error) error {
	var idx *domain.CurveIndexError
	if errors.As(err, &idx) {
		return CurveOutOfRange(idx.Index, idx.Count)
	}
	return err
}

// UnitMismatch reports a column whose unit differs from the registered one.
func UnitMismatch(column, expected, found string) *AppError {
	return NewDataInconsistencyError(
		fmt.Sprintf("column %s: expected unit %q, found %q", column, expected, found),
		ErrUnitMismatch,
	).WithContext("column", column)
}

// MissingColumn reports a column required by a view or absent from the unit registry.
func MissingColumn(column string) *AppError {
	return NewDataInconsistencyError(fmt.Sprintf("column %s", column), ErrMissingColumn).
		WithContext("column", column)
}

// MalformedLine reports a header or data line that cannot be decoded.
func MalformedLine(line int, reason string) *AppError {
	return NewParsingError(fmt.Sprintf("line %d: %s", line, reason), ErrMalformedLine).
		WithContext("line", line)
}
