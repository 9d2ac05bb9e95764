package config

import (
	"runtime"
	"sync"
)

// DispatchSettings holds the tunables of the per-frame vertex dispatch.
type DispatchSettings struct {
	mu        sync.RWMutex
	workers   int
	chunkSize int
}

var globalDispatchSettings = &DispatchSettings{
	workers:   max(runtime.NumCPU(), 1),
	chunkSize: 512,
}

// GetDispatchWorkers returns the worker count for the vertex dispatcher.
func GetDispatchWorkers() int {
	globalDispatchSettings.mu.RLock()
	defer globalDispatchSettings.mu.RUnlock()
	return globalDispatchSettings.workers
}

// SetDispatchWorkers sets the dispatcher worker count, clamped to [1, 256].
func SetDispatchWorkers(n int) {
	globalDispatchSettings.mu.Lock()
	defer globalDispatchSettings.mu.Unlock()

	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}
	globalDispatchSettings.workers = n
}

// GetDispatchChunkSize returns the per-job index span. Batching granularity
// only; output is identical for any chunk size.
func GetDispatchChunkSize() int {
	globalDispatchSettings.mu.RLock()
	defer globalDispatchSettings.mu.RUnlock()
	return globalDispatchSettings.chunkSize
}

// SetDispatchChunkSize sets the per-job index span, clamped to [16, 65536].
func SetDispatchChunkSize(n int) {
	globalDispatchSettings.mu.Lock()
	defer globalDispatchSettings.mu.Unlock()

	if n < 16 {
		n = 16
	}
	if n > 65536 {
		n = 65536
	}
	globalDispatchSettings.chunkSize = n
}

// FPSSettings holds the viewer frame cap.
type FPSSettings struct {
	mu    sync.RWMutex
	limit int
}

var globalFPSSettings = &FPSSettings{
	limit: 120,
}

// GetFPSLimit returns the viewer frame cap; 0 disables limiting.
func GetFPSLimit() int {
	globalFPSSettings.mu.RLock()
	defer globalFPSSettings.mu.RUnlock()
	return globalFPSSettings.limit
}

// SetFPSLimit sets the viewer frame cap. Values below 0 disable limiting.
func SetFPSLimit(limit int) {
	globalFPSSettings.mu.Lock()
	defer globalFPSSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalFPSSettings.limit = limit
}
