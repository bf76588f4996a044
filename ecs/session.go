package ecs

// Session gives typed access to the values of one component table.
//
// A Session owns nothing: opening and discarding one has no effect on any
// entity's lifetime. It must not be used after its Instance is abandoned.
//
// Every operation treats a stale entity, one that has been destroyed since
// the handle was taken, the same as an entity without a value.
type Session[T any] struct {
	inst  *Instance
	table *table[T]
}

// OpenSession returns a Session for the component table c identifies.
// It fails with an *UnregisteredComponentError if c was not returned by
// inst.
func OpenSession[T any](inst *Instance, c Component[T]) (*Session[T], error) {
	if c.instance != inst.id || int(c.index) >= len(inst.tables) {
		return nil, &UnregisteredComponentError{Index: int(c.index), Instance: inst.id}
	}

	t, ok := inst.tables[c.index].(*table[T])
	if !ok {
		return nil, &UnregisteredComponentError{Index: int(c.index), Instance: inst.id}
	}

	return &Session[T]{inst: inst, table: t}, nil
}

// MustOpenSession is like OpenSession but panics on error.
func MustOpenSession[T any](inst *Instance, c Component[T]) *Session[T] {
	s, err := OpenSession(inst, c)
	if err != nil {
		panic(err)
	}
	return s
}

// live reports whether e can be used as a key, panicking for entities of
// another Instance.
func (s *Session[T]) live(e *Entity) bool {
	if e.inst != s.inst {
		panic("ecs: " + e.String() + " belongs to another instance")
	}
	return s.inst.slots.isValid(e.id.Slot(), e.id.Generation())
}

// Get returns a pointer to the value stored for e. On a sparse table the
// pointer remains valid until the value is removed. On a dense table it is
// only valid until the table next grows, see AddDenseComponent.
func (s *Session[T]) Get(e *Entity) (*T, bool) {
	if !s.live(e) {
		return nil, false
	}
	val := s.table.get(e.id)
	return val, val != nil
}

// GetMut is Get for callers that intend to modify the value in place.
// It marks the table as modified.
func (s *Session[T]) GetMut(e *Entity) (*T, bool) {
	val, ok := s.Get(e)
	if ok {
		s.table.modified = true
	}
	return val, ok
}

// Value returns a copy of the value stored for e.
func (s *Session[T]) Value(e *Entity) (T, bool) {
	val, ok := s.Get(e)
	if !ok {
		var zero T
		return zero, false
	}
	return *val, true
}

// Has reports whether a value is stored for e.
func (s *Session[T]) Has(e *Entity) bool {
	_, ok := s.Get(e)
	return ok
}

// Set stores val for e, replacing any previous value. When T is *Entity the
// table takes its own reference to val, and gives up its reference to the
// value being replaced. Setting a value for a stale entity does nothing.
func (s *Session[T]) Set(e *Entity, val T) {
	if !s.live(e) {
		return
	}
	s.table.set(e.id, val)
}

// SetOpt sets val when ok is true and removes the value otherwise.
func (s *Session[T]) SetOpt(e *Entity, val T, ok bool) {
	if ok {
		s.Set(e, val)
		return
	}
	s.Remove(e)
}

// Remove deletes the value stored for e and returns it. An *Entity value
// is dropped before being returned; its ID is still readable, but the
// returned handle no longer holds a reference. Use Take to keep it.
func (s *Session[T]) Remove(e *Entity) (T, bool) {
	if !s.live(e) {
		var zero T
		return zero, false
	}
	return s.table.remove(e.id)
}

// Take deletes the value stored for e and returns it. An *Entity value
// keeps the table's reference, which the caller now owns and must Drop.
func (s *Session[T]) Take(e *Entity) (T, bool) {
	if !s.live(e) {
		var zero T
		return zero, false
	}
	return s.table.take(e.id)
}

// Clear removes every value in the table. Unlike the other operations it
// visits the whole table.
func (s *Session[T]) Clear() {
	s.table.clear()
}

// Len returns the number of values stored in the table.
func (s *Session[T]) Len() int {
	return s.table.len()
}

// IsModified reports whether the table has changed since the last call to
// ClearModified.
func (s *Session[T]) IsModified() bool {
	return s.table.modified
}

func (s *Session[T]) ClearModified() {
	s.table.modified = false
}

// Data returns the backing array of a dense table. Index it with
// Entity.Slot. Slots without a value hold the table's default.
//
// The slice is not updated when the table grows; call Data again after
// setting values for new entities.
func (s *Session[T]) Data() ([]T, error) {
	dense, ok := s.table.storage.(*sliceComponentStorage[T])
	if !ok {
		return nil, ErrNotDense
	}
	return dense.data(), nil
}
