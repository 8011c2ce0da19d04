package roster

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/roster/validation"
)

// Student is an immutable value record. Two students are equal when all
// fields are equal. Age carries no range check.
type Student struct {
	Name           string         `json:"name" validate:"required"`
	Age            int            `json:"age"`
	Classification Classification `json:"classification" validate:"classification"`
}

// NewStudent builds a Student value.
func NewStudent(name string, age int, c Classification) Student {
	return Student{Name: name, Age: age, Classification: c}
}

// GetName returns the student's name.
func (s Student) GetName() string { return s.Name }

// GetAge returns the student's age.
func (s Student) GetAge() int { return s.Age }

// GetClassification returns the student's classification.
func (s Student) GetClassification() Classification { return s.Classification }

// String renders the student as
// Student{name='<name>', age=<age>, classification=<NAME>}.
func (s Student) String() string {
	return fmt.Sprintf("Student{name='%s', age=%d, classification=%s}", s.Name, s.Age, s.Classification)
}

// Validate checks the struct tags of s.
func (s Student) Validate() error {
	if err := registerValidations(); err != nil {
		return err
	}
	return validation.Validate(s)
}

var (
	registerOnce sync.Once
	registerErr  error
)

func registerValidations() error {
	registerOnce.Do(func() {
		registerErr = validation.RegisterValidation("classification", validClassification)
	})
	return registerErr
}

func validClassification(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Classification(field.Int()).Valid()
	default:
		return false
	}
}
