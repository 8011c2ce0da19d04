package pipeline

import (
	"context"

	"github.com/samber/mo"
)

// AllMatch reports whether every value satisfies pred. It stops at the
// first value that does not and returns true for an empty pipeline.
func AllMatch[T any](ctx context.Context, p *Pipeline[T], pred func(T) bool) (bool, error) {
	found, err := findFirst(ctx, p, func(v T) bool { return !pred(v) })
	return !found, err
}

// AnyMatch reports whether some value satisfies pred. It stops at the
// first match and returns false for an empty pipeline.
func AnyMatch[T any](ctx context.Context, p *Pipeline[T], pred func(T) bool) (bool, error) {
	return findFirst(ctx, p, pred)
}

// NoneMatch reports whether no value satisfies pred. It stops at the
// first match and returns true for an empty pipeline.
func NoneMatch[T any](ctx context.Context, p *Pipeline[T], pred func(T) bool) (bool, error) {
	found, err := findFirst(ctx, p, pred)
	return !found, err
}

// Max returns a greatest value under cmp. When several values tie for
// greatest, the first one pulled wins. Empty pipelines yield None.
func Max[T any](ctx context.Context, p *Pipeline[T], cmp Comparator[T]) (mo.Option[T], error) {
	return extremum(ctx, p, func(candidate, best T) bool { return cmp(candidate, best) > 0 })
}

// Min returns a least value under cmp. When several values tie for
// least, the first one pulled wins. Empty pipelines yield None.
func Min[T any](ctx context.Context, p *Pipeline[T], cmp Comparator[T]) (mo.Option[T], error) {
	return extremum(ctx, p, func(candidate, best T) bool { return cmp(candidate, best) < 0 })
}

// GroupBy partitions the values of p by key. Each group keeps the
// relative source order of its members. Every key present appears
// exactly once; map iteration order carries no meaning.
func GroupBy[T any, K comparable](ctx context.Context, p *Pipeline[T], key func(T) K) (map[K][]T, error) {
	groups := make(map[K][]T)
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		k := key(v)
		groups[k] = append(groups[k], v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func findFirst[T any](ctx context.Context, p *Pipeline[T], pred func(T) bool) (bool, error) {
	it := p.open(ctx)
	defer it.Close()
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		if pred(val) {
			return true, nil
		}
	}
}

func extremum[T any](ctx context.Context, p *Pipeline[T], better func(candidate, best T) bool) (mo.Option[T], error) {
	it := p.open(ctx)
	defer it.Close()
	var best T
	seen := false
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return mo.None[T](), err
		}
		if !ok {
			break
		}
		if !seen || better(val, best) {
			best = val
			seen = true
		}
	}
	if !seen {
		return mo.None[T](), nil
	}
	return mo.Some(best), nil
}
