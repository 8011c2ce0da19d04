package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates a value failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a value has an invalid textual form.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Runtime errors
const (
	// ErrCodeConfigInvalid indicates the loaded configuration is unusable.
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	// ErrCodeOutputFailed indicates writing the report failed.
	ErrCodeOutputFailed ErrorCode = "OUTPUT_FAILED"
	// ErrCodeCanceled indicates the run was canceled before completion.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var exitCodes = map[ErrorCode]int{
	ErrCodeInvalidInput:  2,
	ErrCodeMissingField:  2,
	ErrCodeInvalidFormat: 2,
	ErrCodeConfigInvalid: 78,
	ErrCodeOutputFailed:  74,
	ErrCodeCanceled:      130,
	ErrCodeInternal:      1,
}

// ExitCodeFor returns the process exit code associated with code.
// Unknown codes map to 1.
func ExitCodeFor(code ErrorCode) int {
	if c, ok := exitCodes[code]; ok {
		return c
	}
	return 1
}
