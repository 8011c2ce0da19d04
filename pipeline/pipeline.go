package pipeline

import "context"

// Iterator is a pull-based cursor over a sequence of values. Next
// returns (zero, false, nil) once the sequence is exhausted.
type Iterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
	Close() error
}

// Pipeline is a lazy description of a sequence. Nothing is pulled until a
// terminal runs, and every run opens fresh iterators, so the same
// Pipeline can be run repeatedly.
type Pipeline[T any] struct {
	open func(ctx context.Context) Iterator[T]
}

// derive builds a stage on top of p that wraps each iterator p opens.
func derive[I, O any](p *Pipeline[I], wrap func(src Iterator[I]) Iterator[O]) *Pipeline[O] {
	return &Pipeline[O]{
		open: func(ctx context.Context) Iterator[O] {
			return wrap(p.open(ctx))
		},
	}
}

// FromSlice yields the elements of items in order. The slice is copied,
// so later writes to items are not observed.
func FromSlice[T any](items []T) *Pipeline[T] {
	snapshot := make([]T, len(items))
	copy(snapshot, items)
	return &Pipeline[T]{
		open: func(context.Context) Iterator[T] {
			return &sliceIter[T]{items: snapshot}
		},
	}
}

// From adapts a single existing iterator. Unlike FromSlice the result can
// only be consumed once.
func From[T any](it Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{
		open: func(context.Context) Iterator[T] { return it },
	}
}

// ForEach pulls every value of p and passes it to fn, stopping at the
// first error from either side.
func ForEach[T any](ctx context.Context, p *Pipeline[T], fn func(context.Context, T) error) error {
	it := p.open(ctx)
	defer it.Close()
	for {
		v, ok, err := it.Next(ctx)
		if err != nil || !ok {
			return err
		}
		if err := fn(ctx, v); err != nil {
			return err
		}
	}
}

// Collect returns every value of p in a new slice. An empty pipeline
// yields a non-nil empty slice.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	out := make([]T, 0)
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

type sliceIter[T any] struct {
	items []T
	pos   int
}

func (it *sliceIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if it.pos == len(it.items) {
		return zero, false, nil
	}
	v := it.items[it.pos]
	it.pos++
	return v, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
