package engine

import (
	"fmt"

	"cablemesh/internal/cable"
	"cablemesh/internal/meshing"
	"cablemesh/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Config configures an Engine.
type Config struct {
	// Workers and ChunkSize tune the vertex dispatcher; zero means the
	// configured defaults.
	Workers   int
	ChunkSize int
	// Ready is checked after every successful registration; when it
	// returns true the engine seals itself. Nil means seal only via
	// SealNow.
	Ready func(registered int) bool
}

// ReadyAfter returns a readiness predicate that seals once n cables have
// registered.
func ReadyAfter(n int) func(int) bool {
	return func(registered int) bool { return registered >= n }
}

// Engine owns the cable registry, the shared buffers and the dispatcher,
// and drives the per-frame refresh/dispatch/distribute cycle. It is
// explicitly constructed and torn down; there is no ambient global instance.
type Engine struct {
	registry   *cable.Registry
	dispatcher *meshing.Dispatcher
	buffers    *meshing.BufferSet
	topologies []meshing.Topology
	surfaces   []Surface
	poses      []cable.Pose
	ready      func(int) bool
}

// New creates an open engine accepting registrations.
func New(cfg Config) *Engine {
	return &Engine{
		registry:   cable.NewRegistry(),
		dispatcher: meshing.NewDispatcher(cfg.Workers, cfg.ChunkSize),
		ready:      cfg.Ready,
	}
}

// Register adds a cable. When the readiness predicate is satisfied by the
// new registration count the engine seals itself.
func (e *Engine) Register(name string, p cable.Params) (cable.ID, error) {
	id, err := e.registry.Register(name, p)
	if err != nil {
		return 0, err
	}
	e.surfaces = append(e.surfaces, nil)
	if e.ready != nil && e.ready(e.registry.Len()) {
		if err := e.seal(); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// SealNow fixes the topology immediately, regardless of the readiness
// predicate.
func (e *Engine) SealNow() error {
	return e.seal()
}

// Sealed reports whether the engine has a fixed topology.
func (e *Engine) Sealed() bool {
	return e.registry.Sealed()
}

func (e *Engine) seal() error {
	if err := e.registry.Seal(); err != nil {
		return err
	}

	table := e.registry.Table()
	e.topologies = make([]meshing.Topology, len(table))
	for i := range table {
		e.topologies[i] = meshing.BuildTubeTopology(table[i].Segments, table[i].RadialSegments)
	}
	e.buffers = meshing.NewBufferSet(e.registry.TotalVertexCount(), e.registry.MaxVertexCount())
	e.poses = make([]cable.Pose, len(table))
	return nil
}

// Attach binds a mesh surface to a cable. The surface supplies the cable's
// endpoint pose each frame and receives the evaluated vertex positions.
func (e *Engine) Attach(id cable.ID, s Surface) error {
	if id < 0 || int(id) >= len(e.surfaces) {
		return fmt.Errorf("attach %d: %w", id, cable.ErrUnknownCable)
	}
	e.surfaces[id] = s
	return nil
}

// Update refreshes the descriptor table from the given poses and dispatches
// the vertex kernel over the shared buffer. On error the previous frame's
// buffer contents are left untouched.
func (e *Engine) Update(poses []cable.Pose) error {
	stopRefresh := profiling.Track("engine.Refresh")
	err := e.registry.Refresh(poses)
	stopRefresh()
	if err != nil {
		return err
	}

	defer profiling.Track("engine.Dispatch")()
	e.dispatcher.Run(e.registry.Table(), e.buffers.Vertices())
	return nil
}

// Step runs one full frame over the attached surfaces: gather poses,
// refresh, dispatch, then hand each surface its private vertex slice. Every
// cable must have a surface attached.
func (e *Engine) Step() error {
	if !e.registry.Sealed() {
		return fmt.Errorf("step: %w", cable.ErrNotSealed)
	}
	for i, s := range e.surfaces {
		if s == nil {
			return fmt.Errorf("step: cable %d has no surface attached", i)
		}
		e.poses[i] = s.Pose()
	}
	if err := e.Update(e.poses); err != nil {
		return err
	}

	defer profiling.Track("engine.Distribute")()
	table := e.registry.Table()
	for i, s := range e.surfaces {
		view, err := e.buffers.Extract(table[i])
		if err != nil {
			return err
		}
		s.UpdatePositions(view)
	}
	return nil
}

// Extract copies the cable's current vertex region into the shared scratch
// buffer and returns it. The view is valid until the next Extract or Step.
func (e *Engine) Extract(id cable.ID) ([]mgl32.Vec3, error) {
	if !e.registry.Sealed() {
		return nil, fmt.Errorf("extract: %w", cable.ErrNotSealed)
	}
	d, err := e.registry.Descriptor(id)
	if err != nil {
		return nil, err
	}
	return e.buffers.Extract(d)
}

// Topology returns the cable's fixed triangle/UV layout, built at seal time.
func (e *Engine) Topology(id cable.ID) (meshing.Topology, error) {
	if !e.registry.Sealed() {
		return meshing.Topology{}, fmt.Errorf("topology: %w", cable.ErrNotSealed)
	}
	if id < 0 || int(id) >= len(e.topologies) {
		return meshing.Topology{}, fmt.Errorf("topology %d: %w", id, cable.ErrUnknownCable)
	}
	return e.topologies[id], nil
}

// Registry exposes the underlying registry, mainly for inspection.
func (e *Engine) Registry() *cable.Registry {
	return e.registry
}

// Close stops the dispatcher workers and releases the shared buffers.
func (e *Engine) Close() {
	e.dispatcher.Shutdown()
	if e.buffers != nil {
		e.buffers.Release()
	}
}
