package ecs_test

import (
	"fmt"

	"github.com/plus3/lluvia/ecs"
)

// ExampleSnapshot batches several updates and applies them in one step.
// Readers of the table keep seeing the old values until Commit.
func ExampleSnapshot() {
	inst := ecs.NewInstance()
	positions := ecs.MustOpenSession(inst, ecs.AddComponent[Position](inst))

	window := inst.AddEntity()
	positions.Set(window, Position{X: 0, Y: 0})

	snap := positions.Snapshot()
	if pos, ok := snap.GetMut(window); ok {
		pos.X, pos.Y = 100, 50
	}

	current, _ := positions.Value(window)
	fmt.Printf("Before commit: (%.0f, %.0f)\n", current.X, current.Y)

	snap.Commit()
	current, _ = positions.Value(window)
	fmt.Printf("After commit: (%.0f, %.0f)\n", current.X, current.Y)

	// Output:
	// Before commit: (0, 0)
	// After commit: (100, 50)
}
