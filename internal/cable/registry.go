package cable

import (
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// ID identifies a registered cable. IDs are dense indices into the
// descriptor table, issued in registration order.
type ID int

// Registry owns the descriptor table and the shared-buffer layout. It is
// two-phase: open (accepting registrations) until Seal, then fixed-topology
// (only per-frame value refresh permitted).
//
// Buffer allocation and the kernel's index arithmetic both need a fixed
// layout, so offsets are assigned exactly once, at seal time.
type Registry struct {
	mu          sync.Mutex
	descriptors []Descriptor
	names       map[string]ID
	sealed      bool

	totalVertexCount int
	maxVertexCount   int
}

// NewRegistry creates an empty, open registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]ID),
	}
}

// Register adds a cable and returns its ID. Registration is rejected for
// invalid params, for a name that is already registered, and after Seal.
// The descriptor's vertex offset stays unassigned until Seal.
func (r *Registry) Register(name string, p Params) (ID, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return 0, fmt.Errorf("register %q: %w", name, ErrSealed)
	}
	if _, ok := r.names[name]; ok {
		return 0, fmt.Errorf("register %q: %w", name, ErrDuplicate)
	}

	id := ID(len(r.descriptors))
	r.descriptors = append(r.descriptors, Descriptor{
		Segments:       p.Segments,
		RadialSegments: p.RadialSegments,
		Radius:         p.Radius,
		Slack:          p.Slack,
		LookRotation:   mgl32.QuatIdent(),
		VertexOffset:   -1,
	})
	r.names[name] = id
	return id, nil
}

// Seal fixes the topology: assigns each descriptor its vertex offset as the
// running sum of prior region sizes, in registration order, and computes the
// total and per-cable-maximum vertex counts. Callable exactly once.
func (r *Registry) Seal() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("seal: %w", ErrSealed)
	}

	offset := 0
	maxCount := 0
	for i := range r.descriptors {
		d := &r.descriptors[i]
		d.VertexOffset = offset
		n := d.VertexCount()
		offset += n
		if n > maxCount {
			maxCount = n
		}
	}
	r.totalVertexCount = offset
	r.maxVertexCount = maxCount
	r.sealed = true
	return nil
}

// Sealed reports whether Seal has run.
func (r *Registry) Sealed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sealed
}

// Len returns the number of registered cables.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.descriptors)
}

// TotalVertexCount is the length of the shared vertex buffer. Zero before Seal.
func (r *Registry) TotalVertexCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalVertexCount
}

// MaxVertexCount is the largest single-cable region, used to size the
// extraction scratch buffer. Zero before Seal.
func (r *Registry) MaxVertexCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxVertexCount
}

// Descriptor returns a copy of the descriptor for id.
func (r *Registry) Descriptor(id ID) (Descriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id < 0 || int(id) >= len(r.descriptors) {
		return Descriptor{}, fmt.Errorf("descriptor %d: %w", id, ErrUnknownCable)
	}
	return r.descriptors[id], nil
}

// Table returns the live descriptor table. The table is read-only during
// dispatch; callers must not retain it across a structural change.
func (r *Registry) Table() []Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.descriptors
}
