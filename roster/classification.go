package roster

import (
	"fmt"
	"strings"

	"github.com/kbukum/roster/errors"
)

// Classification is a student's class year. Declaration order is the
// total order: Freshman < Sophomore < Junior < Senior.
type Classification int

const (
	Freshman Classification = iota
	Sophomore
	Junior
	Senior
)

var classificationNames = [...]string{
	Freshman:  "FRESHMAN",
	Sophomore: "SOPHOMORE",
	Junior:    "JUNIOR",
	Senior:    "SENIOR",
}

// Classifications returns every classification in declaration order.
func Classifications() []Classification {
	return []Classification{Freshman, Sophomore, Junior, Senior}
}

// Valid reports whether c is one of the declared classifications.
func (c Classification) Valid() bool {
	return c >= Freshman && c <= Senior
}

// String returns the upper-case variant name.
func (c Classification) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Classification(%d)", int(c))
	}
	return classificationNames[c]
}

// ParseClassification parses a variant name, ignoring case and surrounding space.
func ParseClassification(s string) (Classification, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range classificationNames {
		if n == name {
			return Classification(i), nil
		}
	}
	return 0, errors.InvalidFormat("classification", "one of "+strings.Join(classificationNames[:], ", ")).
		WithDetail("value", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Classification) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.InvalidInput("classification", fmt.Sprintf("undeclared classification %d", int(c)))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Classification) UnmarshalText(text []byte) error {
	parsed, err := ParseClassification(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
