package ecs

// DefaultBlockSize is the number of slots in one block of sparse storage.
const DefaultBlockSize = 32

// genericBlock is one lazily allocated run of slots.
type genericBlock[T any] struct {
	values      []T
	generations []uint32
	filled      []bool
	count       int
}

func newGenericBlock[T any](size int) *genericBlock[T] {
	return &genericBlock[T]{
		values:      make([]T, size),
		generations: make([]uint32, size),
		filled:      make([]bool, size),
	}
}

// genericComponentStorage is the sparse storage used by default.
// It stores components of a specific type `T` in blocks that only exist
// while at least one of their slots holds a value, so a table used by a
// handful of entities stays small no matter how many slots exist.
type genericComponentStorage[T any] struct {
	blockSize int
	blocks    []*genericBlock[T]
	count     int
}

func newGenericComponentStorage[T any](blockSize, capacity int) *genericComponentStorage[T] {
	return &genericComponentStorage[T]{
		blockSize: blockSize,
		blocks:    make([]*genericBlock[T], 0, (capacity+blockSize-1)/blockSize),
	}
}

func (cs *genericComponentStorage[T]) locate(slot uint32) (*genericBlock[T], int) {
	blockIdx := int(slot) / cs.blockSize
	if blockIdx >= len(cs.blocks) {
		return nil, 0
	}
	return cs.blocks[blockIdx], int(slot) % cs.blockSize
}

// get returns a pointer to the component stored at slot. The pointer stays
// valid until the value is removed.
func (cs *genericComponentStorage[T]) get(slot, generation uint32) *T {
	block, slotIdx := cs.locate(slot)
	if block == nil {
		return nil
	}

	if !block.filled[slotIdx] || block.generations[slotIdx] != generation {
		return nil
	}

	return &block.values[slotIdx]
}

func (cs *genericComponentStorage[T]) set(slot, generation uint32, val T) (T, bool) {
	blockIdx := int(slot) / cs.blockSize
	slotIdx := int(slot) % cs.blockSize

	if blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, make([]*genericBlock[T], blockIdx+1-len(cs.blocks))...)
	}
	block := cs.blocks[blockIdx]
	if block == nil {
		block = newGenericBlock[T](cs.blockSize)
		cs.blocks[blockIdx] = block
	}

	var old T
	replaced := false
	if block.filled[slotIdx] {
		if block.generations[slotIdx] == generation {
			old = block.values[slotIdx]
			replaced = true
		}
	} else {
		block.filled[slotIdx] = true
		block.count++
		cs.count++
	}

	block.values[slotIdx] = val
	block.generations[slotIdx] = generation
	return old, replaced
}

// take removes the value at slot. A block left empty is freed.
func (cs *genericComponentStorage[T]) take(slot, generation uint32) (T, bool) {
	var zero T
	block, slotIdx := cs.locate(slot)
	if block == nil {
		return zero, false
	}

	if !block.filled[slotIdx] || block.generations[slotIdx] != generation {
		return zero, false
	}

	val := block.values[slotIdx]
	block.values[slotIdx] = zero // Zero out the value
	block.filled[slotIdx] = false
	block.count--
	cs.count--

	if block.count == 0 {
		cs.blocks[int(slot)/cs.blockSize] = nil
	}
	return val, true
}

func (cs *genericComponentStorage[T]) clear(fn func(T)) {
	for blockIdx, block := range cs.blocks {
		if block == nil {
			continue
		}
		for slotIdx, filled := range block.filled {
			if filled {
				fn(block.values[slotIdx])
			}
		}
		cs.blocks[blockIdx] = nil
	}
	cs.blocks = cs.blocks[:0]
	cs.count = 0
}

func (cs *genericComponentStorage[T]) len() int {
	return cs.count
}
