package ecs

import "fmt"

// slotAllocator hands out reusable entity slots and tracks the generation
// and shared reference count of each one.
type slotAllocator struct {
	generations []uint32
	refs        []uint32
	freeSlots   []uint32
	live        int
}

// allocate returns a free slot with a reference count of 1. Recycled slots
// keep the generation they were given when they were freed.
func (a *slotAllocator) allocate() uint32 {
	var slot uint32
	if n := len(a.freeSlots); n > 0 {
		slot = a.freeSlots[n-1]
		a.freeSlots = a.freeSlots[:n-1]
	} else {
		slot = uint32(len(a.generations))
		a.generations = append(a.generations, 0)
		a.refs = append(a.refs, 0)
	}

	a.refs[slot] = 1
	a.live++
	return slot
}

func (a *slotAllocator) retain(slot uint32) {
	if int(slot) >= len(a.refs) || a.refs[slot] == 0 {
		panic(fmt.Sprintf("ecs: retain of free slot %d", slot))
	}
	a.refs[slot]++
}

// release drops one reference and reports whether it was the last one.
// The slot stays allocated until free is called.
func (a *slotAllocator) release(slot uint32) bool {
	if int(slot) >= len(a.refs) || a.refs[slot] == 0 {
		panic(fmt.Sprintf("ecs: double release of slot %d", slot))
	}
	a.refs[slot]--
	return a.refs[slot] == 0
}

// free bumps the generation of a fully released slot and makes it
// available to allocate again.
func (a *slotAllocator) free(slot uint32) {
	if a.refs[slot] != 0 {
		panic(fmt.Sprintf("ecs: free of referenced slot %d", slot))
	}
	a.generations[slot]++
	a.freeSlots = append(a.freeSlots, slot)
	a.live--
}

func (a *slotAllocator) isValid(slot, generation uint32) bool {
	if int(slot) >= len(a.generations) {
		return false
	}
	return a.refs[slot] > 0 && a.generations[slot] == generation
}

func (a *slotAllocator) generation(slot uint32) uint32 {
	return a.generations[slot]
}

func (a *slotAllocator) refCount(slot uint32) uint32 {
	if int(slot) >= len(a.refs) {
		return 0
	}
	return a.refs[slot]
}

// capacity is the number of slots ever created, live or free.
func (a *slotAllocator) capacity() int {
	return len(a.generations)
}
