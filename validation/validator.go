package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/roster/errors"
)

// FieldError is one problem with one field. Code is the error code the
// problem maps to when it is the only one reported.
type FieldError struct {
	Field   string           `json:"field"`
	Message string           `json:"message"`
	Code    errors.ErrorCode `json:"code"`

	expected string
}

// Validator collects field errors for checks that struct tags cannot
// express, such as values that depend on each other.
type Validator struct {
	errors []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{errors: make([]FieldError, 0)}
}

func (v *Validator) add(fe FieldError) *Validator {
	v.errors = append(v.errors, fe)
	return v
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Validate returns nil when every check passed. A single failure becomes
// the AppError for its code; several become one INVALID_INPUT error
// listing each field.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	return toAppError(v.errors)
}

// Required fails with MISSING_FIELD when value is blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(FieldError{Field: field, Message: "is required", Code: errors.ErrCodeMissingField})
	}
	return v
}

// RequiredUUID fails with MISSING_FIELD when value is blank and with
// INVALID_FORMAT when it is not a non-nil UUID.
func (v *Validator) RequiredUUID(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.Required(field, value)
	}
	parsed, err := uuid.Parse(value)
	if err != nil || parsed == uuid.Nil {
		v.add(FieldError{
			Field:    field,
			Message:  "must be a valid non-nil UUID",
			Code:     errors.ErrCodeInvalidFormat,
			expected: "UUID",
		})
	}
	return v
}

// OneOf fails with INVALID_INPUT when value is not in allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	return v.add(FieldError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		Code:    errors.ErrCodeInvalidInput,
	})
}

// InRange fails with INVALID_INPUT when value is outside [lo, hi].
func (v *Validator) InRange(field string, value, lo, hi float64) *Validator {
	if value < lo || value > hi {
		v.add(FieldError{
			Field:   field,
			Message: fmt.Sprintf("must be within [%g, %g]", lo, hi),
			Code:    errors.ErrCodeInvalidInput,
		})
	}
	return v
}

// Custom fails with INVALID_INPUT when condition is false.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.add(FieldError{Field: field, Message: message, Code: errors.ErrCodeInvalidInput})
	}
	return v
}

func toAppError(fields []FieldError) *errors.AppError {
	switch len(fields) {
	case 0:
		return nil
	case 1:
		fe := fields[0]
		var appErr *errors.AppError
		switch fe.Code {
		case errors.ErrCodeMissingField:
			appErr = errors.MissingField(fe.Field)
		case errors.ErrCodeInvalidFormat:
			appErr = errors.InvalidFormat(fe.Field, fe.expected)
		default:
			appErr = errors.InvalidInput(fe.Field, fe.Field+" "+fe.Message)
		}
		return appErr.WithDetail("fields", fields)
	}

	messages := make([]string, len(fields))
	for i, fe := range fields {
		messages[i] = fe.Field + ": " + fe.Message
	}
	return errors.Validation(strings.Join(messages, "; ")).WithDetail("fields", fields)
}
