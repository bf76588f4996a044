package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/lluvia/ecs"
)

type surface struct {
	Width, Height int
	Damaged       bool
}

type options struct {
	duration       time.Duration
	entityCount    int
	depth          int
	componentCount int
	profileMode    string
	gcPauseMetrics bool
}

func main() {
	var opts options
	flag.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flag.IntVar(&opts.entityCount, "entities", 10000, "The number of entity trees kept alive at any time.")
	flag.IntVar(&opts.depth, "depth", 8, "The number of nested entities below each tree root.")
	flag.IntVar(&opts.componentCount, "components", 32, "The number of integer component tables to register.")
	flag.StringVar(&opts.profileMode, "profile", "none", "Profile to record while running: cpu, mem or none.")
	flag.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
	log.Println("Stress test complete.")
}

// run executes the stress test and prints the report to stdout.
func run(opts options) error {
	switch opts.profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "none":
	default:
		return fmt.Errorf("unknown profile mode %q", opts.profileMode)
	}

	log.Println("Starting lluvia stress test...")

	// 1. Setup the Instance and its component tables
	w, err := newWorld(opts.componentCount)
	if err != nil {
		return fmt.Errorf("set up instance: %w", err)
	}

	// 2. Populate with the initial entity trees
	log.Printf("Populating instance with %d trees of depth %d...\n", opts.entityCount, opts.depth)
	roots := make([]*ecs.Entity, opts.entityCount)
	for i := range roots {
		roots[i] = w.spawnTree(opts.depth)
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       opts.duration,
		Trees:          opts.entityCount,
		Depth:          opts.depth,
		Components:     opts.componentCount,
		GCPauseMetrics: opts.gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", opts.duration)
	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	next := 0

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()

			// Replace the oldest tree and touch a random survivor.
			if len(roots) > 0 {
				roots[next].Drop()
				roots[next] = w.spawnTree(opts.depth)
				next = (next + 1) % len(roots)
				w.touch(roots[rand.Intn(len(roots))])
			}

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	for _, root := range roots {
		root.Drop()
	}
	report.Leaked = w.inst.NumEntities()
	report.Instance = w.inst.CollectStats()
	if report.Leaked != 0 {
		log.Printf("%d entities still alive after dropping every root", report.Leaked)
	}

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}

type world struct {
	inst     *ecs.Instance
	surfaces *ecs.Session[surface]
	children *ecs.Session[*ecs.Entity]
	values   []*ecs.Session[int]
}

func newWorld(componentCount int) (*world, error) {
	inst := ecs.NewInstance()

	surfaces, err := ecs.OpenSession(inst, ecs.AddComponent[surface](inst))
	if err != nil {
		return nil, err
	}
	children, err := ecs.OpenSession(inst, ecs.AddComponent[*ecs.Entity](inst))
	if err != nil {
		return nil, err
	}

	w := &world{inst: inst, surfaces: surfaces, children: children}
	for i := 0; i < componentCount; i++ {
		values, err := ecs.OpenSession(inst, ecs.AddComponent[int](inst, ecs.WithBlockSize(8)))
		if err != nil {
			return nil, err
		}
		w.values = append(w.values, values)
	}
	return w, nil
}

// spawnTree creates a root owning a chain of depth nested entities, each
// with a surface and 1 to 5 random integer components.
func (w *world) spawnTree(depth int) *ecs.Entity {
	root := w.inst.AddEntity()
	w.decorate(root)

	parent := root
	for i := 0; i < depth; i++ {
		child := w.inst.AddEntity()
		w.decorate(child)
		w.children.Set(parent, child)
		child.Drop()
		parent = child
	}
	return root
}

func (w *world) decorate(e *ecs.Entity) {
	w.surfaces.Set(e, surface{Width: rand.Intn(1920), Height: rand.Intn(1080)})
	if len(w.values) == 0 {
		return
	}
	for n := rand.Intn(5) + 1; n > 0; n-- {
		w.values[rand.Intn(len(w.values))].Set(e, rand.Int())
	}
}

// touch walks a tree from its root, marking every surface damaged.
func (w *world) touch(root *ecs.Entity) {
	for e := root; e != nil; {
		if s, ok := w.surfaces.GetMut(e); ok {
			s.Damaged = true
		}
		child, ok := w.children.Value(e)
		if !ok {
			break
		}
		e = child
	}
}
