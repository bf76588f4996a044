package ecs

import "sync/atomic"

var nextInstanceID atomic.Uint64

// Instance owns the slot allocator and every component table. Entities and
// tables are only ever created through it.
//
// An Instance is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access themselves.
type Instance struct {
	id     uint64
	slots  slotAllocator
	tables []iComponentTable

	// Entities whose last reference is gone, waiting to be swept.
	doomed   []EntityID
	draining bool
	payloads []*Entity
}

// NewInstance creates an Instance with no entities and no components.
func NewInstance() *Instance {
	return &Instance{
		id: nextInstanceID.Add(1),
	}
}

// AddEntity allocates a new entity with a single reference, owned by the
// returned handle.
func (inst *Instance) AddEntity() *Entity {
	slot := inst.slots.allocate()
	return &Entity{
		inst: inst,
		id:   NewEntityID(slot, inst.slots.generation(slot)),
	}
}

// handle returns a new handle for id, adding one reference.
func (inst *Instance) handle(id EntityID) *Entity {
	inst.slots.retain(id.Slot())
	return &Entity{inst: inst, id: id}
}

// NumEntities returns the number of live entities.
func (inst *Instance) NumEntities() int {
	return inst.slots.live
}

// Capacity returns the number of slots ever allocated, live or free.
// Every slot index handed out is below this value.
func (inst *Instance) Capacity() int {
	return inst.slots.capacity()
}

// NumComponents returns the number of registered component tables.
func (inst *Instance) NumComponents() int {
	return len(inst.tables)
}

// release drops one reference to id and destroys the entity on its last
// one. Destroying an entity can release the entities stored in its
// component values, so destruction runs off a work list rather than
// recursing once per level of nesting.
func (inst *Instance) release(id EntityID) {
	if !inst.slots.release(id.Slot()) {
		return
	}

	inst.doomed = append(inst.doomed, id)
	if inst.draining {
		return
	}

	inst.draining = true
	defer func() { inst.draining = false }()

	for len(inst.doomed) > 0 {
		last := len(inst.doomed) - 1
		next := inst.doomed[last]
		inst.doomed = inst.doomed[:last]
		inst.destroy(next)
	}
}

// destroy sweeps every table for the entity's slot, recycles the slot and
// only then drops the entity payloads it found.
func (inst *Instance) destroy(id EntityID) {
	slot, generation := id.Slot(), id.Generation()

	payloads := inst.payloads[:0]
	for _, t := range inst.tables {
		if e, ok := t.evict(slot, generation); ok && e != nil {
			payloads = append(payloads, e)
		}
	}

	inst.slots.free(slot)

	for i, e := range payloads {
		payloads[i] = nil
		if !e.dropped {
			e.Drop()
		}
	}
	inst.payloads = payloads[:0]
}
