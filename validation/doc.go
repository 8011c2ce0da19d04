// Package validation checks roster records and identifiers.
//
// Struct tag validation goes through go-playground/validator; custom tags
// are added with RegisterValidation. The Validator type collects errors
// programmatically for checks tags cannot express.
//
// # Struct Tag Validation
//
//	type Student struct {
//	    Name           string         `json:"name" validate:"required"`
//	    Classification Classification `json:"classification" validate:"classification"`
//	}
//	err := validation.Validate(s)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(c.Valid(), "classification", "is not a known classification")
//	err := v.Validate()
package validation
