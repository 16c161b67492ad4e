package buffer

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/rawtransfer/errors"
)

const defaultMaxIdle = 4

// Pool hands out buffers for one decode call at a time and caches them for reuse.
//
// The mutex only guards the free list and checkout bookkeeping. Callers that
// share a Pool across goroutines still own each checked-out Buffer exclusively.
type Pool struct {
	free    []*Buffer
	mu      sync.Mutex
	size    int
	maxIdle int
	maxLive int
	live    int
	nextID  int
	stats   Stats
	scrub   bool
}

// Stats reports pool activity.
type Stats struct {
	Allocated int // buffers ever allocated
	Reused    int // acquisitions served from the cache
	Released  int // successful releases
	InUse     int // currently checked out
	Idle      int // currently cached
}

// Option configures a Pool.
type Option func(*Pool)

// WithSize sets the capacity of every buffer the pool allocates.
func WithSize(size int) Option {
	return func(p *Pool) { p.size = clampSize(size) }
}

// WithMaxIdle caps the number of cached buffers. Extra releases are dropped.
func WithMaxIdle(n int) Option {
	return func(p *Pool) { p.maxIdle = n }
}

// WithMaxBuffers caps the number of buffers alive at once (0 means unlimited).
func WithMaxBuffers(n int) Option {
	return func(p *Pool) { p.maxLive = n }
}

// WithScrub zeroes the whole region on release instead of only the trailer.
func WithScrub(scrub bool) Option {
	return func(p *Pool) { p.scrub = scrub }
}

// NewPool creates a buffer pool.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		size:    DefaultSize,
		maxIdle: defaultMaxIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the capacity of buffers handed out by the pool.
func (p *Pool) Size() int { return p.size }

// Acquire returns a cached buffer or allocates a fresh one.
func (p *Pool) Acquire() (*Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n := len(p.free); n > 0 {
		b := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		b.out = true
		p.stats.Reused++
		p.stats.InUse++
		Logger().Debug("buffer reused",
			zap.Int("id", b.id),
			zap.Uint64("generation", b.gen))
		return b, nil
	}

	if p.maxLive > 0 && p.live >= p.maxLive {
		return nil, errors.New(errors.PhasePool, errors.KindExhausted).
			Detail("all %d buffers are checked out", p.maxLive).
			Build()
	}

	p.nextID++
	b := &Buffer{
		pool: p,
		data: make([]byte, p.size),
		id:   p.nextID,
		out:  true,
	}
	p.live++
	p.stats.Allocated++
	p.stats.InUse++
	Logger().Debug("buffer allocated",
		zap.Int("id", b.id),
		zap.Int("size", p.size))
	return b, nil
}

// Release returns b to the cache. The buffer's generation is bumped so any
// node reference still pointing into it belongs to a dead generation.
func (p *Pool) Release(b *Buffer) error {
	if b == nil {
		return errors.InvalidInput(errors.PhasePool, "release of nil buffer")
	}
	if b.pool != p {
		return errors.New(errors.PhasePool, errors.KindForeignBuffer).
			Detail("buffer %d does not belong to this pool", b.id).
			Build()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !b.out {
		return errors.New(errors.PhasePool, errors.KindDoubleRelease).
			Detail("buffer %d released twice", b.id).
			Value(b.gen).
			Build()
	}

	b.out = false
	b.gen++
	if p.scrub {
		clear(b.data)
	} else {
		clear(b.data[len(b.data)-TrailerSize:])
	}
	p.stats.InUse--
	p.stats.Released++

	if len(p.free) >= p.maxIdle {
		p.live--
		Logger().Debug("buffer dropped",
			zap.Int("id", b.id),
			zap.Int("idle", len(p.free)))
		return nil
	}
	p.free = append(p.free, b)
	Logger().Debug("buffer released",
		zap.Int("id", b.id),
		zap.Uint64("generation", b.gen))
	return nil
}

// Stats returns a snapshot of pool counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.Idle = len(p.free)
	return s
}
