package meshing

import (
	"context"
	"sync"

	"cablemesh/internal/cable"
	"cablemesh/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// chunkJob is one contiguous span of the global vertex index space. Spans
// from a single Run never overlap, so each output slot has exactly one
// writer and the kernel needs no locks.
type chunkJob struct {
	table      []cable.Descriptor
	out        []mgl32.Vec3
	start, end int
	done       *sync.WaitGroup
}

// Dispatcher evaluates the vertex kernel over the whole shared buffer using
// a persistent pool of workers. Workers outlive individual frames; only the
// per-frame chunk jobs flow through the queue.
type Dispatcher struct {
	jobs      chan chunkJob
	chunkSize int
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewDispatcher starts a dispatcher with the given worker count and chunk
// size. Zero or negative values fall back to the configured defaults. Chunk
// size is a batching knob only; it never changes the output.
func NewDispatcher(workers, chunkSize int) *Dispatcher {
	if workers <= 0 {
		workers = config.GetDispatchWorkers()
	}
	if chunkSize <= 0 {
		chunkSize = config.GetDispatchChunkSize()
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		jobs:      make(chan chunkJob, 256),
		chunkSize: chunkSize,
		ctx:       ctx,
		cancel:    cancel,
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobs:
			for k := job.start; k < job.end; k++ {
				job.out[k] = Evaluate(k, job.table)
			}
			job.done.Done()
		case <-d.ctx.Done():
			return
		}
	}
}

// Run evaluates every index of out against the descriptor table. It blocks
// until all chunks have been written, so the caller always observes a fully
// populated buffer; the join is the only synchronization on the hot path.
func (d *Dispatcher) Run(table []cable.Descriptor, out []mgl32.Vec3) {
	if len(out) == 0 {
		return
	}

	var done sync.WaitGroup
	for start := 0; start < len(out); start += d.chunkSize {
		end := start + d.chunkSize
		if end > len(out) {
			end = len(out)
		}
		done.Add(1)
		d.jobs <- chunkJob{table: table, out: out, start: start, end: end, done: &done}
	}
	done.Wait()
}

// Shutdown stops the workers. Pending Run calls must have returned.
func (d *Dispatcher) Shutdown() {
	d.cancel()
	d.wg.Wait()
}
