package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotIsolatesChanges(t *testing.T) {
	w := newTestWorld(t)
	a := w.inst.AddEntity()
	b := w.inst.AddEntity()
	w.positions.Set(a, Position{X: 1})

	snap := w.positions.Snapshot()
	assert.False(t, snap.IsModified())

	pos, ok := snap.GetMut(a)
	require.True(t, ok)
	pos.X = 100
	snap.Set(b, Position{X: 2})

	assert.True(t, snap.IsModified())

	// The table is untouched until commit.
	val, _ := w.positions.Value(a)
	assert.Equal(t, float32(1), val.X)
	assert.False(t, w.positions.Has(b))

	// Reads through the snapshot see its changes.
	got, ok := snap.Get(a)
	require.True(t, ok)
	assert.Equal(t, float32(100), got.X)
	got, ok = snap.Get(b)
	require.True(t, ok)
	assert.Equal(t, float32(2), got.X)

	snap.Commit()
	assert.False(t, snap.IsModified())

	val, _ = w.positions.Value(a)
	assert.Equal(t, float32(100), val.X)
	val, _ = w.positions.Value(b)
	assert.Equal(t, float32(2), val.X)
}

func TestSnapshotRemove(t *testing.T) {
	w := newTestWorld(t)
	e := w.inst.AddEntity()
	w.names.Set(e, Name{Value: "keep?"})

	snap := w.names.Snapshot()
	removed, ok := snap.Remove(e)
	require.True(t, ok)
	assert.Equal(t, "keep?", removed.Value)

	_, ok = snap.Get(e)
	assert.False(t, ok)
	assert.True(t, w.names.Has(e))

	_, ok = snap.GetMut(e)
	assert.False(t, ok)

	snap.Commit()
	assert.False(t, w.names.Has(e))
}

func TestSnapshotDiscard(t *testing.T) {
	w := newTestWorld(t)
	e := w.inst.AddEntity()
	w.titles.Set(e, "original")

	snap := w.titles.Snapshot()
	snap.Set(e, "changed")
	snap.Discard()

	assert.False(t, snap.IsModified())
	val, _ := w.titles.Value(e)
	assert.Equal(t, Title("original"), val)
	assert.Equal(t, 1, e.RefCount())
}

func TestSnapshotKeepsEntitiesAlive(t *testing.T) {
	w := newTestWorld(t)
	e := w.inst.AddEntity()

	snap := w.titles.Snapshot()
	snap.Set(e, "pending")
	assert.Equal(t, 2, e.RefCount())

	clone := e.Clone()
	e.Drop()
	clone.Drop()
	assert.Equal(t, 1, w.inst.NumEntities(), "the snapshot still holds the entity")

	snap.Commit()
	assert.Equal(t, 0, w.inst.NumEntities())
	assert.Equal(t, 0, w.titles.Len())
}

func TestSnapshotEntityPayloads(t *testing.T) {
	w := newTestWorld(t)
	parent := w.inst.AddEntity()
	first := w.inst.AddEntity()
	second := w.inst.AddEntity()
	w.children.Set(parent, first)

	snap := w.children.Snapshot()
	snap.Set(parent, second)
	first.Drop()
	second.Drop()
	assert.Equal(t, 3, w.inst.NumEntities())

	snap.Commit()
	assert.Equal(t, 2, w.inst.NumEntities(), "replaced child is released on commit")

	stored, ok := w.children.Value(parent)
	require.True(t, ok)
	assert.Equal(t, second.ID(), stored.ID())
	assert.Equal(t, 1, stored.RefCount())

	parent.Drop()
	assert.Equal(t, 0, w.inst.NumEntities())
}

func TestSnapshotDiscardReleasesPayloads(t *testing.T) {
	w := newTestWorld(t)
	parent := w.inst.AddEntity()
	child := w.inst.AddEntity()

	snap := w.children.Snapshot()
	snap.Set(parent, child)
	child.Drop()
	assert.Equal(t, 2, w.inst.NumEntities())

	snap.Discard()
	assert.Equal(t, 1, w.inst.NumEntities())
	assert.Equal(t, 1, parent.RefCount())
}

func TestSnapshotReuseAfterCommit(t *testing.T) {
	w := newTestWorld(t)
	e := w.inst.AddEntity()

	snap := w.positions.Snapshot()
	for i := 1; i <= 3; i++ {
		snap.Set(e, Position{X: float32(i)})
		snap.Commit()

		val, ok := w.positions.Value(e)
		require.True(t, ok)
		assert.Equal(t, float32(i), val.X)
	}
	assert.Equal(t, 1, e.RefCount())
}

func TestSnapshotStaleEntity(t *testing.T) {
	w := newTestWorld(t)
	e := w.inst.AddEntity()
	e.Drop()

	snap := w.positions.Snapshot()
	snap.Set(e, Position{})
	assert.False(t, snap.IsModified())

	_, ok := snap.Get(e)
	assert.False(t, ok)
	_, ok = snap.Remove(e)
	assert.False(t, ok)
}
