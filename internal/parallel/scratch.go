package parallel

import "sync"

// ScratchPool provides reuse of per-task scratch slices via sync.Pool.
//
// Row tasks build a candidate list every frame. Reusing the backing arrays
// keeps the per-frame kernel free of steady-state allocations. Slices are
// returned with length zero and whatever capacity they grew to.
//
// Thread safety: ScratchPool is safe for concurrent use.
type ScratchPool[T any] struct {
	pool sync.Pool
}

// NewScratchPool creates a pool whose fresh slices have the given capacity.
func NewScratchPool[T any](capacity int) *ScratchPool[T] {
	if capacity < 0 {
		capacity = 0
	}
	p := &ScratchPool[T]{}
	p.pool.New = func() any {
		s := make([]T, 0, capacity)
		return &s
	}
	return p
}

// Get retrieves an empty slice from the pool or creates a new one.
func (p *ScratchPool[T]) Get() *[]T {
	s := p.pool.Get().(*[]T)
	*s = (*s)[:0]
	return s
}

// Put returns a slice to the pool for reuse.
// If s is nil, this is a no-op.
func (p *ScratchPool[T]) Put(s *[]T) {
	if s == nil {
		return
	}
	clear(*s)
	*s = (*s)[:0]
	p.pool.Put(s)
}
