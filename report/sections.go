package report

import (
	"context"
	"strconv"

	"github.com/samber/mo"

	"github.com/kbukum/roster/roster"
)

// Section names, used for spans, logs and error details.
const (
	SectionAll           = "All students"
	SectionNames         = "Names of all students"
	SectionSeniors       = "Seniors"
	SectionSorted        = "Sorted by age"
	SectionAllMatch      = "All students are older than 10"
	SectionAnyMatch      = "There is a student named Juliana"
	SectionNoneMatch     = "All students are younger than 32"
	SectionOldest        = "Oldest student"
	SectionYoungest      = "Youngest student"
	SectionGroups        = "Grouped by classification"
	SectionOldestSenior  = "Name of the oldest senior student"
	allMatchAgeThreshold = 19
	anyMatchName         = "Juliana"
	noneMatchAge         = 32
)

// block is one header line followed by its value lines.
type block struct {
	header string
	lines  []string
}

type section struct {
	name  string
	build func(ctx context.Context, r roster.Roster) ([]block, error)
}

// sections lists the report in print order.
var sections = []section{
	{SectionAll, buildAll},
	{SectionNames, buildNames},
	{SectionSeniors, buildSeniors},
	{SectionSorted, buildSorted},
	{SectionAllMatch, buildAllMatch},
	{SectionAnyMatch, buildAnyMatch},
	{SectionNoneMatch, buildNoneMatch},
	{SectionOldest, buildOldest},
	{SectionYoungest, buildYoungest},
	{SectionGroups, buildGroups},
	{SectionOldestSenior, buildOldestSenior},
}

func listing(name string, lines []string) []block {
	return []block{{header: name + ":", lines: lines}}
}

func predicate(name string, v bool) []block {
	return []block{{header: name + ": " + strconv.FormatBool(v)}}
}

func studentLines(students []roster.Student) []string {
	lines := make([]string, len(students))
	for i, s := range students {
		lines[i] = s.String()
	}
	return lines
}

func buildAll(_ context.Context, r roster.Roster) ([]block, error) {
	return listing(SectionAll, studentLines(r.Students())), nil
}

func buildNames(ctx context.Context, r roster.Roster) ([]block, error) {
	names, err := Names(ctx, r)
	if err != nil {
		return nil, err
	}
	return listing(SectionNames, names), nil
}

func buildSeniors(ctx context.Context, r roster.Roster) ([]block, error) {
	seniors, err := r.Seniors(ctx)
	if err != nil {
		return nil, err
	}
	return listing(SectionSeniors, studentLines(seniors)), nil
}

func buildSorted(ctx context.Context, r roster.Roster) ([]block, error) {
	sorted, err := SortedByAge(ctx, r)
	if err != nil {
		return nil, err
	}
	return listing(SectionSorted, studentLines(sorted)), nil
}

func buildAllMatch(ctx context.Context, r roster.Roster) ([]block, error) {
	ok, err := AllOlderThan(ctx, r, allMatchAgeThreshold)
	if err != nil {
		return nil, err
	}
	return predicate(SectionAllMatch, ok), nil
}

func buildAnyMatch(ctx context.Context, r roster.Roster) ([]block, error) {
	ok, err := AnyNamed(ctx, r, anyMatchName)
	if err != nil {
		return nil, err
	}
	return predicate(SectionAnyMatch, ok), nil
}

func buildNoneMatch(ctx context.Context, r roster.Roster) ([]block, error) {
	ok, err := NoneAtLeast(ctx, r, noneMatchAge)
	if err != nil {
		return nil, err
	}
	return predicate(SectionNoneMatch, ok), nil
}

func optionalStudent(name string, o mo.Option[roster.Student]) []block {
	b := block{header: name + ":"}
	if s, ok := o.Get(); ok {
		b.lines = []string{s.String()}
	}
	return []block{b}
}

func buildOldest(ctx context.Context, r roster.Roster) ([]block, error) {
	oldest, err := Oldest(ctx, r)
	if err != nil {
		return nil, err
	}
	return optionalStudent(SectionOldest, oldest), nil
}

func buildYoungest(ctx context.Context, r roster.Roster) ([]block, error) {
	youngest, err := Youngest(ctx, r)
	if err != nil {
		return nil, err
	}
	return optionalStudent(SectionYoungest, youngest), nil
}

// buildGroups emits one block per present classification, in declaration order.
func buildGroups(ctx context.Context, r roster.Roster) ([]block, error) {
	groups, err := ByClassification(ctx, r)
	if err != nil {
		return nil, err
	}
	blocks := make([]block, 0, len(groups))
	for _, c := range roster.Classifications() {
		members, ok := groups[c]
		if !ok {
			continue
		}
		blocks = append(blocks, block{header: c.String(), lines: studentLines(members)})
	}
	return blocks, nil
}

func buildOldestSenior(ctx context.Context, r roster.Roster) ([]block, error) {
	name, err := OldestSeniorName(ctx, r)
	if err != nil {
		return nil, err
	}
	b := block{header: SectionOldestSenior + ":"}
	name.ForEach(func(n string) { b.lines = []string{n} })
	return []block{b}, nil
}
