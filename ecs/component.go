package ecs

import (
	"fmt"
	"reflect"
)

// Component identifies a component table registered with an Instance.
// It is only meaningful to the Instance that returned it; the zero value
// is never registered.
type Component[T any] struct {
	instance uint64
	index    uint32
}

// Index returns the position of the table within its Instance.
func (c Component[T]) Index() int {
	return int(c.index)
}

// ComponentOption configures a component table.
type ComponentOption func(*componentConfig)

type componentConfig struct {
	blockSize int
	capacity  int
}

// WithBlockSize sets how many slots share one lazily allocated block.
// Small blocks suit tables only a few entities ever use.
func WithBlockSize(size int) ComponentOption {
	if size <= 0 {
		panic(fmt.Sprintf("ecs: invalid block size %d", size))
	}
	return func(cfg *componentConfig) {
		cfg.blockSize = size
	}
}

// WithCapacity reserves room for values of the first n slots up front.
// On a dense table, pointers and slices handed out for those slots stay
// valid while no slot at or above n is written.
func WithCapacity(n int) ComponentOption {
	if n < 0 {
		panic(fmt.Sprintf("ecs: invalid capacity %d", n))
	}
	return func(cfg *componentConfig) {
		cfg.capacity = n
	}
}

func newComponentConfig(opts []ComponentOption) componentConfig {
	cfg := componentConfig{blockSize: DefaultBlockSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// AddComponent registers a new, empty sparse table holding values of type T.
func AddComponent[T any](inst *Instance, opts ...ComponentOption) Component[T] {
	cfg := newComponentConfig(opts)
	return registerTable(inst, newTable[T](newGenericComponentStorage[T](cfg.blockSize, cfg.capacity)))
}

// AddDenseComponent registers a new table holding values of type T in one
// contiguous array. newDefault fills every slot that has no value, which
// lets the backing array be shared with other libraries without copying.
//
// The array is reallocated when a value is set for a slot beyond its
// capacity. Pointers and slices obtained from the table before that point
// no longer refer to it; fetch them again after adding entities, or reserve
// room with WithCapacity. WithBlockSize has no effect on dense tables.
func AddDenseComponent[T any](inst *Instance, newDefault func() T, opts ...ComponentOption) Component[T] {
	if newDefault == nil {
		panic("ecs: dense component needs a default value function")
	}
	cfg := newComponentConfig(opts)
	return registerTable(inst, newTable[T](newSliceComponentStorage(newDefault, cfg.capacity)))
}

func registerTable[T any](inst *Instance, t *table[T]) Component[T] {
	index := uint32(len(inst.tables))
	inst.tables = append(inst.tables, t)
	return Component[T]{instance: inst.id, index: index}
}

// table pairs a storage with the ownership rules for entity payloads:
// a table holding *Entity values keeps one reference per stored entity.
type table[T any] struct {
	storage       componentStorage[T]
	typ           reflect.Type
	holdsEntities bool
	modified      bool
}

var entityType = reflect.TypeOf((*Entity)(nil))

func newTable[T any](storage componentStorage[T]) *table[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return &table[T]{
		storage:       storage,
		typ:           t,
		holdsEntities: t == entityType,
	}
}

func (t *table[T]) payload(val T) *Entity {
	if !t.holdsEntities {
		return nil
	}
	e, _ := any(val).(*Entity)
	return e
}

// retain returns val with any entity payload replaced by a new reference.
func (t *table[T]) retain(val T) T {
	if e := t.payload(val); e != nil {
		return any(e.Clone()).(T)
	}
	return val
}

func (t *table[T]) release(val T) {
	if e := t.payload(val); e != nil && !e.dropped {
		e.Drop()
	}
}

func (t *table[T]) get(id EntityID) *T {
	return t.storage.get(id.Slot(), id.Generation())
}

func (t *table[T]) set(id EntityID, val T) {
	t.modified = true
	old, replaced := t.storage.set(id.Slot(), id.Generation(), t.retain(val))
	if replaced {
		t.release(old)
	}
}

// take removes the value without releasing it; ownership of an entity
// payload moves to the caller.
func (t *table[T]) take(id EntityID) (T, bool) {
	t.modified = true
	return t.storage.take(id.Slot(), id.Generation())
}

func (t *table[T]) remove(id EntityID) (T, bool) {
	val, ok := t.take(id)
	if ok {
		t.release(val)
	}
	return val, ok
}

func (t *table[T]) clear() {
	t.modified = true
	if !t.holdsEntities {
		t.storage.clear(func(T) {})
		return
	}

	// Payloads are dropped only once the storage is consistent again,
	// since each drop may destroy entities with values in this table.
	var payloads []*Entity
	t.storage.clear(func(val T) {
		if e := t.payload(val); e != nil {
			payloads = append(payloads, e)
		}
	})
	for _, e := range payloads {
		if !e.dropped {
			e.Drop()
		}
	}
}

func (t *table[T]) evict(slot, generation uint32) (*Entity, bool) {
	val, ok := t.storage.take(slot, generation)
	if !ok {
		return nil, false
	}
	t.modified = true
	return t.payload(val), true
}

func (t *table[T]) valueType() reflect.Type {
	return t.typ
}

func (t *table[T]) isDense() bool {
	_, ok := t.storage.(*sliceComponentStorage[T])
	return ok
}

func (t *table[T]) len() int {
	return t.storage.len()
}
