package pipeline

import (
	"context"
	"slices"
)

// Map converts each value with fn. An error from fn ends the run.
func Map[I, O any](p *Pipeline[I], fn func(context.Context, I) (O, error)) *Pipeline[O] {
	return derive(p, func(src Iterator[I]) Iterator[O] {
		return &mapIter[I, O]{src: src, fn: fn}
	})
}

// MapPure converts each value with a function that cannot fail.
func MapPure[I, O any](p *Pipeline[I], fn func(I) O) *Pipeline[O] {
	return Map(p, func(_ context.Context, v I) (O, error) {
		return fn(v), nil
	})
}

// Filter keeps the values for which keep returns true, in source order.
func Filter[T any](p *Pipeline[T], keep func(T) bool) *Pipeline[T] {
	return derive(p, func(src Iterator[T]) Iterator[T] {
		return &filterIter[T]{src: src, keep: keep}
	})
}

// Sorted yields the values of p ordered by cmp. The sort is stable, so
// values cmp reports equal keep their source order. The whole source is
// buffered on the first pull.
func Sorted[T any](p *Pipeline[T], cmp Comparator[T]) *Pipeline[T] {
	return derive(p, func(src Iterator[T]) Iterator[T] {
		return &sortedIter[T]{src: src, cmp: cmp}
	})
}

type mapIter[I, O any] struct {
	src Iterator[I]
	fn  func(context.Context, I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (O, bool, error) {
	var zero O
	v, ok, err := it.src.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	out, err := it.fn(ctx, v)
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.src.Close() }

type filterIter[T any] struct {
	src  Iterator[T]
	keep func(T) bool
}

func (it *filterIter[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		v, ok, err := it.src.Next(ctx)
		if err != nil || !ok || it.keep(v) {
			return v, ok && err == nil, err
		}
	}
}

func (it *filterIter[T]) Close() error { return it.src.Close() }

type sortedIter[T any] struct {
	src    Iterator[T]
	cmp    Comparator[T]
	sorted *sliceIter[T]
}

func (it *sortedIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.sorted == nil {
		var buf []T
		for {
			v, ok, err := it.src.Next(ctx)
			if err != nil {
				var zero T
				return zero, false, err
			}
			if !ok {
				break
			}
			buf = append(buf, v)
		}
		slices.SortStableFunc(buf, it.cmp)
		it.sorted = &sliceIter[T]{items: buf}
	}
	return it.sorted.Next(ctx)
}

func (it *sortedIter[T]) Close() error { return it.src.Close() }
