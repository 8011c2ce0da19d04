package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/roster/errors"
)

var (
	tagsOnce sync.Once
	tags     *validator.Validate
	tagsMu   sync.Mutex
)

// structValidator is shared by every caller so that tags registered with
// RegisterValidation apply everywhere. Field names in errors follow the
// json tag, falling back to snake_case.
func structValidator() *validator.Validate {
	tagsOnce.Do(func() {
		tags = validator.New(validator.WithRequiredStructEnabled())
		tags.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return toSnakeCase(f.Name)
			}
			return name
		})
	})
	return tags
}

// RegisterValidation adds a custom struct tag. Registering the same tag
// again replaces the previous function.
func RegisterValidation(tag string, fn validator.Func) error {
	v := structValidator()
	tagsMu.Lock()
	defer tagsMu.Unlock()
	return v.RegisterValidation(tag, fn)
}

// Validate checks s against its `validate` struct tags. A failed
// `required` tag maps to MISSING_FIELD and any other tag to
// INVALID_INPUT; several failures are reported together.
func Validate(s any) error {
	err := structValidator().Struct(s)
	if err == nil {
		return nil
	}
	failed, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("validation failed").WithCause(err)
	}

	fields := make([]FieldError, len(failed))
	for i, fe := range failed {
		code := errors.ErrCodeInvalidInput
		if fe.Tag() == "required" {
			code = errors.ErrCodeMissingField
		}
		fields[i] = FieldError{Field: toSnakeCase(fe.Field()), Message: describe(fe), Code: code}
	}
	return toAppError(fields)
}

var boundWords = map[string]string{
	"min": "at least",
	"gte": "at least",
	"max": "at most",
	"lte": "at most",
	"gt":  "greater than",
	"lt":  "less than",
}

// describe phrases a failed tag. min and max on strings count characters.
func describe(fe validator.FieldError) string {
	switch tag := fe.Tag(); tag {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		words, ok := boundWords[tag]
		if !ok {
			return "is invalid"
		}
		msg := "must be " + words + " " + fe.Param()
		if (tag == "min" || tag == "max") && fe.Kind() == reflect.String {
			msg += " characters"
		}
		return msg
	}
}

// toSnakeCase turns RunID into run_i_d; acronyms are not special-cased.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
