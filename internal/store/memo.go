package store

import "sync"

// Selector derives a view from the state. Selectors never modify the state.
type Selector[T any] func(*State) T

// input is a selector together with the equality used to decide whether a
// memoized result is still valid
type input[T any] struct {
	sel Selector[T]
	eq  func(a, b T) bool
}

// ref compares inputs with ==. State slices are immutable snapshots, so
// pointer equality means nothing changed.
func ref[T comparable](sel Selector[T]) input[T] {
	return input[T]{sel: sel, eq: func(a, b T) bool { return a == b }}
}

// refSlice compares slices by identity: same length and same backing array
func refSlice[E any](sel Selector[[]E]) input[[]E] {
	return input[[]E]{sel: sel, eq: func(a, b []E) bool {
		if len(a) != len(b) {
			return false
		}
		return len(a) == 0 || &a[0] == &b[0]
	}}
}

type cache[K, T any] struct {
	mu    sync.Mutex
	valid bool
	key   K
	value T
}

func (c *cache[K, T]) get(key K, eq func(a, b K) bool, compute func() T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && eq(c.key, key) {
		return c.value
	}
	c.key, c.value, c.valid = key, compute(), true
	return c.value
}

func memo1[A, T any](a input[A], fn func(A) T) Selector[T] {
	var c cache[A, T]
	return func(s *State) T {
		av := a.sel(s)
		return c.get(av, a.eq, func() T { return fn(av) })
	}
}

type pair[A, B any] struct {
	a A
	b B
}

func memo2[A, B, T any](a input[A], b input[B], fn func(A, B) T) Selector[T] {
	var c cache[pair[A, B], T]
	eq := func(x, y pair[A, B]) bool { return a.eq(x.a, y.a) && b.eq(x.b, y.b) }
	return func(s *State) T {
		key := pair[A, B]{a.sel(s), b.sel(s)}
		return c.get(key, eq, func() T { return fn(key.a, key.b) })
	}
}

type triple[A, B, C any] struct {
	a A
	b B
	c C
}

func memo3[A, B, C, T any](a input[A], b input[B], c input[C], fn func(A, B, C) T) Selector[T] {
	var cc cache[triple[A, B, C], T]
	eq := func(x, y triple[A, B, C]) bool {
		return a.eq(x.a, y.a) && b.eq(x.b, y.b) && c.eq(x.c, y.c)
	}
	return func(s *State) T {
		key := triple[A, B, C]{a.sel(s), b.sel(s), c.sel(s)}
		return cc.get(key, eq, func() T { return fn(key.a, key.b, key.c) })
	}
}
