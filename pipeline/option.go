package pipeline

import "github.com/samber/mo"

// MapOption applies fn to the value held by o. mo.Option.Map keeps the
// element type, so projections to another type go through here.
func MapOption[T, R any](o mo.Option[T], fn func(T) R) mo.Option[R] {
	v, ok := o.Get()
	if !ok {
		return mo.None[R]()
	}
	return mo.Some(fn(v))
}
