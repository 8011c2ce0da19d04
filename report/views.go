package report

import (
	"context"

	"github.com/samber/mo"

	"github.com/kbukum/roster/pipeline"
	"github.com/kbukum/roster/roster"
)

// Names projects every student to its name, in roster order.
func Names(ctx context.Context, r roster.Roster) ([]string, error) {
	return pipeline.Collect(ctx, pipeline.MapPure(r.Pipeline(), roster.Student.GetName))
}

// SortOrder orders by age, then classification, with the whole ordering
// reversed: oldest first and seniors before juniors on equal age.
func SortOrder() pipeline.Comparator[roster.Student] {
	return roster.ByAge().ThenComparing(roster.ByClassification()).Reversed()
}

// SortedByAge returns the students in SortOrder. Full ties keep roster order.
func SortedByAge(ctx context.Context, r roster.Roster) ([]roster.Student, error) {
	return pipeline.Collect(ctx, pipeline.Sorted(r.Pipeline(), SortOrder()))
}

// AllOlderThan reports whether every student is older than age.
func AllOlderThan(ctx context.Context, r roster.Roster, age int) (bool, error) {
	return pipeline.AllMatch(ctx, r.Pipeline(), func(s roster.Student) bool { return s.Age > age })
}

// AnyNamed reports whether some student has the given name.
func AnyNamed(ctx context.Context, r roster.Roster, name string) (bool, error) {
	return pipeline.AnyMatch(ctx, r.Pipeline(), func(s roster.Student) bool { return s.Name == name })
}

// NoneAtLeast reports whether no student is age or older.
func NoneAtLeast(ctx context.Context, r roster.Roster, age int) (bool, error) {
	return pipeline.NoneMatch(ctx, r.Pipeline(), func(s roster.Student) bool { return s.Age >= age })
}

// Oldest returns the first student of greatest age.
func Oldest(ctx context.Context, r roster.Roster) (mo.Option[roster.Student], error) {
	return pipeline.Max(ctx, r.Pipeline(), roster.ByAge())
}

// Youngest returns the first student of least age.
func Youngest(ctx context.Context, r roster.Roster) (mo.Option[roster.Student], error) {
	return pipeline.Min(ctx, r.Pipeline(), roster.ByAge())
}

// ByClassification groups students by classification. Members keep
// roster order and only classifications with members appear as keys.
func ByClassification(ctx context.Context, r roster.Roster) (map[roster.Classification][]roster.Student, error) {
	return pipeline.GroupBy(ctx, r.Pipeline(), roster.Student.GetClassification)
}

// OldestSeniorName filters seniors, takes the oldest and projects its name.
func OldestSeniorName(ctx context.Context, r roster.Roster) (mo.Option[string], error) {
	seniors := pipeline.Filter(r.Pipeline(), roster.IsSenior)
	oldest, err := pipeline.Max(ctx, seniors, roster.ByAge())
	if err != nil {
		return mo.None[string](), err
	}
	return pipeline.MapOption(oldest, roster.Student.GetName), nil
}
