// Package pipeline provides composable, pull-based collection operators.
//
// Pipelines are lazy: no work happens until a terminal (Collect, ForEach,
// AllMatch, Max, GroupBy, ...) pulls values. Each stage pulls from the
// previous one on demand, in the caller's goroutine. Every run opens
// fresh iterators, so a Pipeline value can be run any number of times
// and never mutates its source.
//
// # Operators
//
//   - Map, MapPure: transform each value
//   - Filter: keep values matching a predicate
//   - Sorted: stable sort by a Comparator
//
// # Terminals
//
//   - Collect, ForEach
//   - AllMatch, AnyMatch, NoneMatch (short-circuit)
//   - Max, Min (return an mo.Option; first value wins ties)
//   - GroupBy (map of stable subsequences)
//
// # Usage
//
//	src := pipeline.FromSlice(students)
//	seniors := pipeline.Filter(src, func(s Student) bool { return s.Classification == Senior })
//	oldest, _ := pipeline.Max(ctx, seniors, pipeline.Comparing(Student.GetAge))
//	name := pipeline.MapOption(oldest, Student.GetName)
//	name.ForEach(func(n string) { fmt.Println(n) })
package pipeline
