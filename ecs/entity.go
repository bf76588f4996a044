package ecs

import "fmt"

// EntityID encodes both the generation (upper 32 bits) and the slot (lower 32 bits)
type EntityID uint64

// NewEntityID creates an EntityID from a slot and generation
func NewEntityID(slot uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(slot))
}

// Generation extracts the generation from the entity ID
func (id EntityID) Generation() uint32 {
	return uint32(id >> 32)
}

// Slot extracts the slot index from the entity ID
func (id EntityID) Slot() uint32 {
	return uint32(id & 0xFFFFFFFF)
}

func (id EntityID) String() string {
	return fmt.Sprintf("%d:%d", id.Slot(), id.Generation())
}

// Entity is a reference counted handle to an entity.
//
// Every handle owns one reference. Clone hands out another handle sharing
// the same count and Drop gives a reference back. When the last reference
// is dropped the entity's values are removed from every component table of
// its Instance and the slot is recycled under a new generation.
//
// A dropped handle no longer owns a reference but still names its entity.
// It can be read (ID, Valid, Equal) and used as a Session or Snapshot key,
// which finds the entity's values for as long as other references keep it
// alive. Clone and Drop panic on it, since both would touch a reference it
// no longer holds.
//
// An *Entity can itself be stored as a component value. The table keeps its
// own reference to it, so the stored entity lives at least as long as the
// entry does.
type Entity struct {
	inst    *Instance
	id      EntityID
	dropped bool
}

// ID returns the (slot, generation) pair identifying this entity.
func (e *Entity) ID() EntityID {
	return e.id
}

func (e *Entity) Slot() uint32 {
	return e.id.Slot()
}

func (e *Entity) Generation() uint32 {
	return e.id.Generation()
}

// Instance returns the Instance the entity was allocated from.
func (e *Entity) Instance() *Instance {
	return e.inst
}

// Clone returns a new handle for the same entity, adding one reference.
func (e *Entity) Clone() *Entity {
	if e.dropped {
		panic("ecs: clone of dropped entity " + e.id.String())
	}
	return e.inst.handle(e.id)
}

// Drop gives up this handle's reference. Dropping the last reference
// destroys the entity before Drop returns. A handle may only be dropped once.
func (e *Entity) Drop() {
	if e.dropped {
		panic("ecs: double drop of entity " + e.id.String())
	}
	e.dropped = true
	e.inst.release(e.id)
}

// Dropped reports whether Drop has been called on this handle.
func (e *Entity) Dropped() bool {
	return e.dropped
}

// Valid reports whether the entity is still alive in its Instance.
func (e *Entity) Valid() bool {
	return e.inst.slots.isValid(e.id.Slot(), e.id.Generation())
}

// RefCount returns the number of live references to the entity, including
// those held by component tables. It is zero once the entity is destroyed.
func (e *Entity) RefCount() int {
	if !e.Valid() {
		return 0
	}
	return int(e.inst.slots.refCount(e.id.Slot()))
}

// Equal reports whether both handles refer to the same entity. Handles
// sharing a slot but not a generation are never equal.
func (e *Entity) Equal(other *Entity) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.inst == other.inst && e.id == other.id
}

func (e *Entity) String() string {
	return "Entity(" + e.id.String() + ")"
}
