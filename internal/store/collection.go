package store

// Collection is a normalized set of entities: ids keep insertion order and
// entities are looked up by id. A Collection is never mutated in place; every
// change builds a new one.
type Collection[T any] struct {
	IDs      []string
	Entities map[string]T
}

// Get looks up an entity by id
func (c Collection[T]) Get(id string) (T, bool) {
	v, ok := c.Entities[id]
	return v, ok
}

// Len returns the number of entities
func (c Collection[T]) Len() int {
	return len(c.IDs)
}

// List returns the entities in id order
func (c Collection[T]) List() []T {
	out := make([]T, 0, len(c.IDs))
	for _, id := range c.IDs {
		out = append(out, c.Entities[id])
	}
	return out
}

func (c Collection[T]) clone() Collection[T] {
	ids := make([]string, len(c.IDs))
	copy(ids, c.IDs)
	entities := make(map[string]T, len(c.Entities))
	for k, v := range c.Entities {
		entities[k] = v
	}
	return Collection[T]{IDs: ids, Entities: entities}
}

// merge adds the items whose id is not known yet and keeps existing ones.
// The second result is false, and c is returned as is, when nothing was added.
func (c Collection[T]) merge(items []T, key func(T) string) (Collection[T], bool) {
	var next Collection[T]
	added := false
	for _, item := range items {
		id := key(item)
		if _, ok := c.Entities[id]; ok {
			continue
		}
		if !added {
			next = c.clone()
			added = true
		}
		if _, ok := next.Entities[id]; ok {
			continue
		}
		next.IDs = append(next.IDs, id)
		next.Entities[id] = item
	}
	if !added {
		return c, false
	}
	return next, true
}

// upsert replaces known items and appends unknown ones
func (c Collection[T]) upsert(items []T, key func(T) string) Collection[T] {
	next := c.clone()
	for _, item := range items {
		id := key(item)
		if _, ok := next.Entities[id]; !ok {
			next.IDs = append(next.IDs, id)
		}
		next.Entities[id] = item
	}
	return next
}

// update rewrites the entity with id through fn, if present
func (c Collection[T]) update(id string, fn func(T) T) Collection[T] {
	if _, ok := c.Entities[id]; !ok {
		return c
	}
	next := c.clone()
	next.Entities[id] = fn(next.Entities[id])
	return next
}

// remove drops every entity for which drop returns true
func (c Collection[T]) remove(drop func(T) bool) Collection[T] {
	next := Collection[T]{IDs: make([]string, 0, len(c.IDs)), Entities: make(map[string]T, len(c.Entities))}
	for _, id := range c.IDs {
		v := c.Entities[id]
		if drop(v) {
			continue
		}
		next.IDs = append(next.IDs, id)
		next.Entities[id] = v
	}
	return next
}

func emptyCollection[T any]() Collection[T] {
	return Collection[T]{IDs: []string{}, Entities: map[string]T{}}
}
