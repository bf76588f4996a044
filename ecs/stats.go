package ecs

// InstanceStats is a point-in-time summary of an Instance.
type InstanceStats struct {
	EntityCount        int
	SlotCapacity       int
	FreeSlotCount      int
	ComponentCount     int
	TotalValueCount    int
	ComponentBreakdown []ComponentStats
}

// ComponentStats describes one registered component table.
type ComponentStats struct {
	Index         int
	Type          string
	Dense         bool
	HoldsEntities bool
	ValueCount    int
}

// CollectStats gathers statistics about the Instance. It visits every
// table once and is meant for diagnostics, not hot paths.
func (inst *Instance) CollectStats() InstanceStats {
	stats := InstanceStats{
		EntityCount:        inst.slots.live,
		SlotCapacity:       inst.slots.capacity(),
		FreeSlotCount:      len(inst.slots.freeSlots),
		ComponentCount:     len(inst.tables),
		ComponentBreakdown: make([]ComponentStats, 0, len(inst.tables)),
	}

	for i, t := range inst.tables {
		typ := t.valueType()
		stats.ComponentBreakdown = append(stats.ComponentBreakdown, ComponentStats{
			Index:         i,
			Type:          typ.String(),
			Dense:         t.isDense(),
			HoldsEntities: typ == entityType,
			ValueCount:    t.len(),
		})
		stats.TotalValueCount += t.len()
	}

	return stats
}
