package ecs

import "github.com/kamstrup/intmap"

const snapshotCapacity = 4

type pendingChange[T any] struct {
	entity  *Entity
	value   T
	present bool
}

// Snapshot records changes to one component table and applies them all at
// once on Commit. Until then the table is untouched and reads through the
// snapshot see the recorded changes layered over the table's values.
//
// The snapshot holds a reference to every entity it has a change for, so
// none of them can be destroyed before the change is committed or
// discarded.
type Snapshot[T any] struct {
	session *Session[T]
	pending *intmap.Map[uint32, *pendingChange[T]]
}

// Snapshot starts a new, empty snapshot of the session's table.
func (s *Session[T]) Snapshot() *Snapshot[T] {
	return &Snapshot[T]{
		session: s,
		pending: intmap.New[uint32, *pendingChange[T]](snapshotCapacity),
	}
}

func (sn *Snapshot[T]) lookup(e *Entity) (*pendingChange[T], bool) {
	change, ok := sn.pending.Get(e.Slot())
	if !ok || change.entity.id != e.id {
		return nil, false
	}
	return change, true
}

// record returns the pending change for e, creating one that starts from
// the table's current value.
func (sn *Snapshot[T]) record(e *Entity) *pendingChange[T] {
	if change, ok := sn.lookup(e); ok {
		return change
	}

	change := &pendingChange[T]{entity: sn.session.inst.handle(e.id)}
	if val := sn.session.table.get(e.id); val != nil {
		change.value = sn.session.table.retain(*val)
		change.present = true
	}
	sn.pending.Put(e.Slot(), change)
	return change
}

// Get returns the value e would have if the snapshot were committed now.
func (sn *Snapshot[T]) Get(e *Entity) (*T, bool) {
	if !sn.session.live(e) {
		return nil, false
	}
	if change, ok := sn.lookup(e); ok {
		if !change.present {
			return nil, false
		}
		return &change.value, true
	}
	return sn.session.Get(e)
}

// GetMut returns a pointer to the snapshot's own copy of e's value.
// Changes made through it are applied on Commit.
func (sn *Snapshot[T]) GetMut(e *Entity) (*T, bool) {
	if !sn.session.live(e) {
		return nil, false
	}
	change := sn.record(e)
	if !change.present {
		return nil, false
	}
	return &change.value, true
}

// Set records val as e's new value.
func (sn *Snapshot[T]) Set(e *Entity, val T) {
	if !sn.session.live(e) {
		return
	}
	change := sn.record(e)
	if change.present {
		sn.session.table.release(change.value)
	}
	change.value = sn.session.table.retain(val)
	change.present = true
}

// Remove records the removal of e's value and returns the value it had in
// the snapshot. As with Session.Remove, an *Entity value comes back dropped.
func (sn *Snapshot[T]) Remove(e *Entity) (T, bool) {
	var zero T
	if !sn.session.live(e) {
		return zero, false
	}
	change := sn.record(e)
	if !change.present {
		return zero, false
	}
	val := change.value
	sn.session.table.release(val)
	change.value = zero
	change.present = false
	return val, true
}

// IsModified reports whether the snapshot holds uncommitted changes.
func (sn *Snapshot[T]) IsModified() bool {
	return sn.pending.Len() > 0
}

// Commit applies every recorded change to the table and resets the
// snapshot so it can record the next batch.
func (sn *Snapshot[T]) Commit() {
	t := sn.session.table
	for _, change := range sn.drain() {
		if change.present {
			t.set(change.entity.id, change.value)
			t.release(change.value)
		} else {
			t.remove(change.entity.id)
		}
		change.entity.Drop()
	}
}

// Discard throws away every recorded change.
func (sn *Snapshot[T]) Discard() {
	t := sn.session.table
	for _, change := range sn.drain() {
		if change.present {
			t.release(change.value)
		}
		change.entity.Drop()
	}
}

func (sn *Snapshot[T]) drain() []*pendingChange[T] {
	changes := make([]*pendingChange[T], 0, sn.pending.Len())
	sn.pending.ForEach(func(_ uint32, change *pendingChange[T]) bool {
		changes = append(changes, change)
		return true
	})
	sn.pending.Clear()
	return changes
}
