package ecs

import "reflect"

// iComponentTable is the type-erased view of a component table the Instance
// needs to sweep a destroyed entity and to report stats.
type iComponentTable interface {
	// evict removes the slot's value without releasing it. An entity
	// payload is returned so the caller can drop it once the sweep is done.
	evict(slot, generation uint32) (*Entity, bool)
	valueType() reflect.Type
	isDense() bool
	len() int
}

// componentStorage is the slot-indexed backing store of a table.
// Every entry records the generation it was written under and is only
// visible to callers asking with that same generation.
type componentStorage[T any] interface {
	get(slot, generation uint32) *T
	// set stores val. When a value was already stored under the same
	// generation it is returned with replaced set to true.
	set(slot, generation uint32, val T) (old T, replaced bool)
	take(slot, generation uint32) (T, bool)
	// clear empties the storage, handing each removed value to fn.
	clear(fn func(T))
	len() int
}
