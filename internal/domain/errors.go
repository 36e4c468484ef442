package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for common course and quiz failures.
var (
	ErrNotFound         = errors.New("requested resource not found")
	ErrAlreadyAnswered  = errors.New("question has already been answered")
	ErrOptionOutOfRange = errors.New("selected option is out of range")
	ErrUnknownQuestion  = errors.New("unknown question")
)

// ValidationError reports malformed course data. Field names the offending
// value using a dotted path, e.g. "quiz.questions[2].correctIndex".
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// prefixField returns err with its field path nested under parent. Errors that
// are not validation errors are returned unchanged.
func prefixField(parent string, err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	field := parent
	if verr.Field != "" {
		field = parent + "." + verr.Field
	}
	return &ValidationError{Field: field, Message: verr.Message}
}
