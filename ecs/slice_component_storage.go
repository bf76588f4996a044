package ecs

// sliceComponentStorage keeps every slot in one contiguous []T so the whole
// table can be handed to other libraries as a slice. Slots without a value
// hold whatever newDefault returns.
//
// Growing past the capacity of values moves the array, so pointers into it
// are only stable up to cap(values).
type sliceComponentStorage[T any] struct {
	newDefault  func() T
	values      []T
	generations []uint32
	filled      []bool
	count       int
}

func newSliceComponentStorage[T any](newDefault func() T, capacity int) *sliceComponentStorage[T] {
	return &sliceComponentStorage[T]{
		newDefault:  newDefault,
		values:      make([]T, 0, capacity),
		generations: make([]uint32, 0, capacity),
		filled:      make([]bool, 0, capacity),
	}
}

func (cs *sliceComponentStorage[T]) ensureSpace(slot uint32) {
	for int(slot) >= len(cs.values) {
		cs.values = append(cs.values, cs.newDefault())
		cs.generations = append(cs.generations, 0)
		cs.filled = append(cs.filled, false)
	}
}

func (cs *sliceComponentStorage[T]) get(slot, generation uint32) *T {
	if int(slot) >= len(cs.values) {
		return nil
	}
	if !cs.filled[slot] || cs.generations[slot] != generation {
		return nil
	}
	return &cs.values[slot]
}

func (cs *sliceComponentStorage[T]) set(slot, generation uint32, val T) (T, bool) {
	cs.ensureSpace(slot)

	var old T
	replaced := false
	if cs.filled[slot] {
		if cs.generations[slot] == generation {
			old = cs.values[slot]
			replaced = true
		}
	} else {
		cs.filled[slot] = true
		cs.count++
	}

	cs.values[slot] = val
	cs.generations[slot] = generation
	return old, replaced
}

// take removes the value at slot, putting a fresh default in its place.
func (cs *sliceComponentStorage[T]) take(slot, generation uint32) (T, bool) {
	if int(slot) >= len(cs.values) || !cs.filled[slot] || cs.generations[slot] != generation {
		var zero T
		return zero, false
	}

	val := cs.values[slot]
	cs.values[slot] = cs.newDefault()
	cs.filled[slot] = false
	cs.count--
	return val, true
}

func (cs *sliceComponentStorage[T]) clear(fn func(T)) {
	for slot := range cs.values {
		if cs.filled[slot] {
			fn(cs.values[slot])
			cs.filled[slot] = false
		}
		cs.values[slot] = cs.newDefault()
	}
	cs.count = 0
}

func (cs *sliceComponentStorage[T]) len() int {
	return cs.count
}

// data returns the backing array. Its length is the highest slot ever
// written plus one.
func (cs *sliceComponentStorage[T]) data() []T {
	return cs.values
}
