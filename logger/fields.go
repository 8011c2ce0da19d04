package logger

import "time"

// Field names shared by every package that logs.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldSection   = "section"
	FieldItems     = "items"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldPhase     = "phase"
)

// Fields pairs up alternating keys and values. Non-string keys and a
// trailing key without a value are dropped.
//
//	log.Info("section written", logger.Fields(logger.FieldSection, "Seniors:", logger.FieldItems, 3))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 1; i < len(kvs); i += 2 {
		if key, ok := kvs[i-1].(string); ok {
			m[key] = kvs[i]
		}
	}
	return m
}

// ErrorFields describes a failed operation.
func ErrorFields(op string, err error) map[string]any {
	return Fields(FieldOperation, op, FieldError, err.Error())
}

// MergeWithError sets the error field on fields, allocating when nil.
func MergeWithError(fields map[string]any, err error) map[string]any {
	return merge(fields, FieldError, err.Error())
}

// MergeWithDuration sets duration_ms on fields, allocating when nil.
func MergeWithDuration(fields map[string]any, d time.Duration) map[string]any {
	return merge(fields, FieldDuration, d.Milliseconds())
}

func merge(fields map[string]any, key string, value any) map[string]any {
	if fields == nil {
		fields = make(map[string]any, 1)
	}
	fields[key] = value
	return fields
}
