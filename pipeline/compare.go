package pipeline

import "cmp"

// Comparator orders two values: negative when a sorts before b, zero
// when they are equivalent, positive otherwise.
type Comparator[T any] func(a, b T) int

// Comparing builds a Comparator that orders values by an extracted key.
func Comparing[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// ThenComparing breaks ties of c with next.
func (c Comparator[T]) ThenComparing(next Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		if r := c(a, b); r != 0 {
			return r
		}
		return next(a, b)
	}
}

// Reversed inverts the whole ordering of c, tie-breakers included.
// Values c reports equal stay equal.
func (c Comparator[T]) Reversed() Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}
