package roster

import (
	"context"
	"iter"

	"github.com/kbukum/roster/errors"
	"github.com/kbukum/roster/pipeline"
)

// Roster is an ordered, immutable sequence of students.
type Roster struct {
	students []Student
}

// New validates every student and returns a roster holding a private copy
// of them in the given order.
func New(students ...Student) (Roster, error) {
	for i, s := range students {
		if err := s.Validate(); err != nil {
			appErr := errors.Wrap(err)
			return Roster{}, appErr.WithDetail("index", i)
		}
	}
	owned := make([]Student, len(students))
	copy(owned, students)
	return Roster{students: owned}, nil
}

// Default returns the built-in twelve-student roster.
func Default() Roster {
	r, err := New(
		NewStudent("Arthur", 17, Junior),
		NewStudent("Vincent", 26, Freshman),
		NewStudent("Cecelia", 25, Senior),
		NewStudent("Larry", 25, Sophomore),
		NewStudent("Fernando", 23, Freshman),
		NewStudent("Kaleb", 18, Sophomore),
		NewStudent("Alexandra", 25, Freshman),
		NewStudent("Nina", 31, Senior),
		NewStudent("Jake", 19, Junior),
		NewStudent("Austin", 19, Senior),
		NewStudent("Juliana", 17, Sophomore),
		NewStudent("Bianca", 27, Junior),
	)
	if err != nil {
		panic("roster: invalid default dataset: " + err.Error())
	}
	return r
}

// Students returns a copy of the students in roster order.
func (r Roster) Students() []Student {
	out := make([]Student, len(r.students))
	copy(out, r.students)
	return out
}

// Len returns the number of students.
func (r Roster) Len() int { return len(r.students) }

// All iterates the students in roster order.
func (r Roster) All() iter.Seq[Student] {
	return func(yield func(Student) bool) {
		for _, s := range r.students {
			if !yield(s) {
				return
			}
		}
	}
}

// Pipeline returns a fresh pipeline source over the students.
func (r Roster) Pipeline() *pipeline.Pipeline[Student] {
	return pipeline.FromSlice(r.students)
}

// ByAge orders students by age ascending.
func ByAge() pipeline.Comparator[Student] {
	return pipeline.Comparing(Student.GetAge)
}

// ByClassification orders students by classification declaration order.
func ByClassification() pipeline.Comparator[Student] {
	return pipeline.Comparing(func(s Student) int { return int(s.Classification) })
}

// IsSenior reports whether s is a senior.
func IsSenior(s Student) bool { return s.Classification == Senior }

// Seniors returns the stable subsequence of seniors.
func (r Roster) Seniors(ctx context.Context) ([]Student, error) {
	return pipeline.Collect(ctx, pipeline.Filter(r.Pipeline(), IsSenior))
}
