package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError carries a code, the exit status that code maps to, and
// structured details for logging. Cause is reachable through errors.Is
// and errors.As.
type AppError struct {
	Code     ErrorCode      `json:"code"`
	Message  string         `json:"message"`
	ExitCode int            `json:"-"`
	Details  map[string]any `json:"details,omitempty"`
	Cause    error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets Cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New returns an AppError whose ExitCode follows from code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, ExitCode: ExitCodeFor(code)}
}

// Validation reports several invalid values at once.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// InvalidInput reports a value that parsed but is not acceptable. An
// empty field leaves out the field detail.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, "Missing required field: "+field).WithDetail("field", field)
}

// InvalidFormat reports a value that could not be parsed as expected.
func InvalidFormat(field, expected string) *AppError {
	return New(ErrCodeInvalidFormat, fmt.Sprintf("Invalid format for %s. Expected: %s", field, expected)).
		WithDetail("field", field).
		WithDetail("expected_format", expected)
}

func ConfigInvalid(cause error) *AppError {
	return New(ErrCodeConfigInvalid, "Configuration is invalid.").WithCause(cause)
}

// OutputFailed reports a write to the report destination that failed.
func OutputFailed(section string, cause error) *AppError {
	return New(ErrCodeOutputFailed, fmt.Sprintf("Writing section %q failed.", section)).
		WithDetail("section", section).
		WithCause(cause)
}

func Canceled(cause error) *AppError {
	return New(ErrCodeCanceled, "The run was canceled.").WithCause(cause)
}

func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// ExitCode is 0 for nil, the exit code of the AppError in err's chain, or
// 1 when there is none.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.ExitCode
	}
	return 1
}

// Wrap returns the AppError in err's chain, or an Internal error caused by
// err when there is none. Wrap(nil) is nil.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
