// Package ecs is a small entity component store with reference counted
// entities and O(1) access to component values.
//
// An Instance hands out entities and registers component tables. Each
// table stores at most one value of a fixed type per entity, and is read
// and written through a Session:
//
//	inst := ecs.NewInstance()
//	name := ecs.AddComponent[string](inst)
//	names := ecs.MustOpenSession(inst, name)
//
//	e := inst.AddEntity()
//	names.Set(e, "Hola Lluvia")
//	v, _ := names.Value(e)
//
// Entities are reference counted handles. Clone adds a reference and Drop
// gives one back; when the last reference is dropped every value stored for
// the entity is removed and its slot is reused under a new generation, so
// handles to the old entity read as empty instead of aliasing the new one.
//
// Entities may be stored as component values of other entities. The table
// keeps its own reference to the stored entity, so destroying an owner
// releases everything it holds, recursively. Entities holding each other,
// directly or through a chain, keep each other alive until one of the
// values is removed.
//
// Nothing in this package is safe for concurrent use.
package ecs
