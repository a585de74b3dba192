// Package pool provides a bounded arena of reusable off-screen rendering
// resources (CPU pixmap surfaces or GPU texture pairs).
//
// Resources are addressed through generation-checked handles: a slot's
// generation is bumped on every release, so a handle kept past its
// release can never reach a recycled resource. This replaces the naive
// free-list-of-objects approach where a released-then-reacquired surface
// could still be written through a stale pointer.
//
// A Pool is confined to the single rendering goroutine; it is not safe
// for concurrent use.
package pool

import "errors"

// ErrStaleHandle indicates a handle whose slot was released (and possibly
// reacquired) since the handle was issued.
var ErrStaleHandle = errors.New("pool: stale handle")

// ErrDisposed indicates use of a pool after Dispose.
var ErrDisposed = errors.New("pool: disposed")

// DefaultCapacity is the maximum number of idle resources a pool retains.
// This caps GPU/CPU memory residency during rapid pan/zoom/paint without
// a general GC; acquiring beyond it simply allocates unpooled.
const DefaultCapacity = 16

// Resource is a pooled off-screen surface.
type Resource interface {
	// Width and Height report the resource capacity in pixels.
	Width() int
	Height() int

	// Clear resets the resource to fully transparent before reuse.
	Clear()

	// Dispose frees the underlying storage.
	Dispose()
}

// Factory constructs a new resource of at least the given size.
type Factory[T Resource] func(width, height int) T

// Handle references an acquired resource. The zero Handle is invalid.
type Handle struct {
	index int // slot index + 1, or -1-index for unpooled entries
	gen   uint32
}

// Valid reports whether h was issued by an Acquire call.
func (h Handle) Valid() bool { return h.index != 0 }

// Pool is a bounded arena of reusable resources.
type Pool[T Resource] struct {
	factory  Factory[T]
	capacity int
	slots    []slot[T]
	disposed bool

	// unpooled tracks resources handed out past capacity; they are
	// disposed, not retained, on release.
	unpooled []unpooledEntry[T]
}

type unpooledEntry[T Resource] struct {
	res  T
	gen  uint32
	live bool
}

type slot[T Resource] struct {
	res    T
	gen    uint32
	inUse  bool
	hasRes bool
}

// New creates a pool with DefaultCapacity.
func New[T Resource](factory Factory[T]) *Pool[T] {
	return NewWithCapacity(factory, DefaultCapacity)
}

// NewWithCapacity creates a pool retaining at most capacity idle
// resources.
func NewWithCapacity[T Resource](factory Factory[T], capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool[T]{factory: factory, capacity: capacity}
}

// Acquire returns a resource with capacity at least (width, height):
// the first idle slot whose dimensions suffice (cleared before reuse), or
// a newly constructed resource. Acquire never fails for lack of space;
// past-capacity acquisitions are satisfied with unpooled allocations.
//
// Every Acquire must be paired with a Release on all exit paths.
func (p *Pool[T]) Acquire(width, height int) (T, Handle, error) {
	var zero T
	if p.disposed {
		return zero, Handle{}, ErrDisposed
	}

	// First fit: any idle slot big enough.
	for i := range p.slots {
		s := &p.slots[i]
		if s.inUse || !s.hasRes {
			continue
		}
		if s.res.Width() >= width && s.res.Height() >= height {
			s.res.Clear()
			s.inUse = true
			return s.res, Handle{index: i + 1, gen: s.gen}, nil
		}
	}

	res := p.factory(width, height)

	// Reuse a dead slot entry or grow the arena while under capacity.
	for i := range p.slots {
		s := &p.slots[i]
		if !s.inUse && !s.hasRes {
			s.res = res
			s.hasRes = true
			s.inUse = true
			return res, Handle{index: i + 1, gen: s.gen}, nil
		}
	}
	if len(p.slots) < p.capacity {
		p.slots = append(p.slots, slot[T]{res: res, hasRes: true, inUse: true})
		return res, Handle{index: len(p.slots), gen: 0}, nil
	}

	// Arena full: hand out an unpooled resource, disposed on release.
	// Dead entries are recycled so the slice stays bounded by the peak
	// number of simultaneously live overflow resources.
	for i := range p.unpooled {
		e := &p.unpooled[i]
		if !e.live {
			e.res = res
			e.live = true
			return res, Handle{index: -(i + 1), gen: e.gen}, nil
		}
	}
	p.unpooled = append(p.unpooled, unpooledEntry[T]{res: res, live: true})
	return res, Handle{index: -len(p.unpooled)}, nil
}

// Release returns the resource behind h to the pool. Idle resources are
// retained for reuse; unpooled ones are disposed immediately. A stale or
// double-released handle yields ErrStaleHandle.
func (p *Pool[T]) Release(h Handle) error {
	if p.disposed {
		return ErrDisposed
	}
	if !h.Valid() {
		return ErrStaleHandle
	}

	if h.index < 0 {
		i := -h.index - 1
		if i >= len(p.unpooled) || !p.unpooled[i].live || p.unpooled[i].gen != h.gen {
			return ErrStaleHandle
		}
		e := &p.unpooled[i]
		e.res.Dispose()
		var zero T
		e.res = zero
		e.live = false
		e.gen++ // invalidate outstanding copies of h before the entry recycles
		return nil
	}

	i := h.index - 1
	if i >= len(p.slots) {
		return ErrStaleHandle
	}
	s := &p.slots[i]
	if !s.inUse || s.gen != h.gen {
		return ErrStaleHandle
	}
	s.inUse = false
	s.gen++ // invalidate outstanding copies of h
	return nil
}

// Get revalidates a handle and returns its resource. It fails with
// ErrStaleHandle once the handle has been released.
func (p *Pool[T]) Get(h Handle) (T, error) {
	var zero T
	if p.disposed {
		return zero, ErrDisposed
	}
	if h.index > 0 {
		i := h.index - 1
		if i < len(p.slots) {
			s := &p.slots[i]
			if s.inUse && s.gen == h.gen {
				return s.res, nil
			}
		}
		return zero, ErrStaleHandle
	}
	if h.index < 0 {
		i := -h.index - 1
		if i < len(p.unpooled) && p.unpooled[i].live && p.unpooled[i].gen == h.gen {
			return p.unpooled[i].res, nil
		}
	}
	return zero, ErrStaleHandle
}

// IdleCount returns the number of retained idle resources.
func (p *Pool[T]) IdleCount() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].hasRes && !p.slots[i].inUse {
			n++
		}
	}
	return n
}

// Dispose frees every pooled resource. Outstanding handles become
// permanently stale.
func (p *Pool[T]) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	for i := range p.slots {
		if p.slots[i].hasRes {
			p.slots[i].res.Dispose()
			p.slots[i].hasRes = false
		}
	}
	p.slots = nil
	for i := range p.unpooled {
		if p.unpooled[i].live {
			p.unpooled[i].res.Dispose()
		}
		p.unpooled[i] = unpooledEntry[T]{}
	}
	p.unpooled = nil
}
