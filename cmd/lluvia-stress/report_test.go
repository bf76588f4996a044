package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/lluvia/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()

	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestSpawnTreeTeardown(t *testing.T) {
	w, err := newWorld(4)
	require.NoError(t, err)

	var roots []*ecs.Entity
	for i := 0; i < 10; i++ {
		roots = append(roots, w.spawnTree(5))
	}
	assert.Equal(t, 60, w.inst.NumEntities())

	w.touch(roots[0])
	for _, root := range roots {
		root.Drop()
	}
	assert.Equal(t, 0, w.inst.NumEntities())
	assert.Equal(t, 0, w.inst.CollectStats().TotalValueCount)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{Duration: time.Second, Trees: 1, Depth: 2, Components: 3}
	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	assert.Contains(t, buf.String(), "Lluvia Stress Test Report")
	assert.Contains(t, buf.String(), "Tree Depth:** 2")
}

func TestRunRejectsUnknownProfile(t *testing.T) {
	err := run(options{duration: time.Millisecond, profileMode: "trace"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown profile mode "trace"`)
}

func TestRunShort(t *testing.T) {
	err := run(options{
		duration:       10 * time.Millisecond,
		entityCount:    4,
		depth:          3,
		componentCount: 2,
		profileMode:    "none",
	})
	require.NoError(t, err)
}
