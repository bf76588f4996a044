package ecs_test

import (
	"testing"

	"github.com/plus3/lluvia/ecs"
	"github.com/stretchr/testify/require"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Surface struct {
	Width, Height int
	Damaged       bool
}

type Title string

// testWorld bundles an Instance with the sessions most tests need.
type testWorld struct {
	inst      *ecs.Instance
	positions *ecs.Session[Position]
	names     *ecs.Session[Name]
	titles    *ecs.Session[Title]
	children  *ecs.Session[*ecs.Entity]
}

func newTestWorld(t testing.TB) *testWorld {
	t.Helper()

	inst := ecs.NewInstance()
	positions, err := ecs.OpenSession(inst, ecs.AddComponent[Position](inst))
	require.NoError(t, err)
	names, err := ecs.OpenSession(inst, ecs.AddComponent[Name](inst))
	require.NoError(t, err)
	titles, err := ecs.OpenSession(inst, ecs.AddComponent[Title](inst))
	require.NoError(t, err)
	children, err := ecs.OpenSession(inst, ecs.AddComponent[*ecs.Entity](inst))
	require.NoError(t, err)

	return &testWorld{
		inst:      inst,
		positions: positions,
		names:     names,
		titles:    titles,
		children:  children,
	}
}
