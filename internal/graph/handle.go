package graph

import "sync"

// Handle is a thread-safe indirection over the current GraphOps. Request
// handlers read through it while a reload (SIGHUP) swaps in a freshly
// loaded snapshot; the old graph stays valid for in-flight requests.
type Handle struct {
	mu      sync.RWMutex
	current *GraphOps
}

func NewHandle(initial *GraphOps) *Handle {
	return &Handle{current: initial}
}

// Swap atomically replaces the current ops.
func (h *Handle) Swap(ops *GraphOps) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = ops
}

// Ops returns the current query surface.
func (h *Handle) Ops() *GraphOps {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}
