// Copyright 2024 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pool

import (
	"go.uber.org/zap"

	"github.com/matrixorigin/segdeque/pkg/common/moerr"
	"github.com/matrixorigin/segdeque/pkg/logutil"
	v2 "github.com/matrixorigin/segdeque/pkg/util/metric/v2"
)

// Pool recycles fixed-size blocks of type T. Blocks handed out never hold a
// live object: they are either fresh or have been through the reset hook.
// Idle blocks are reused LIFO and at most maxIdle of them are retained.
//
// A Pool is not safe for concurrent use. Several owners may share one pool
// only if their accesses are serialized.
type Pool[T any] struct {
	name    string
	maxIdle int
	// idle blocks, most recently released last
	idle    []*T

	allocate func() (*T, error)
	reset    func(*T)
	prealloc int

	stats   Stats
	metrics v2.PoolMetrics
	logger  *zap.Logger
}

// Stats counts block traffic through a pool.
type Stats struct {
	// Allocated is the number of blocks obtained from the allocator.
	Allocated uint64
	// Reused is the number of acquires served from the idle list.
	Reused uint64
	// Released is the number of blocks returned to the idle list.
	Released uint64
	// Dropped is the number of released blocks discarded because the idle
	// list was full, plus those discarded by Close.
	Dropped uint64
}

type Option[T any] func(*Pool[T])

// WithAllocator sets the raw block source. An error from fn is treated as
// an out of memory condition.
func WithAllocator[T any](fn func() (*T, error)) Option[T] {
	return func(p *Pool[T]) {
		p.allocate = fn
	}
}

// WithReset sets the hook run on every released block before it is kept
// or dropped.
func WithReset[T any](fn func(*T)) Option[T] {
	return func(p *Pool[T]) {
		p.reset = fn
	}
}

// WithLogger sets the logger of the pool, the global logger by default.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(p *Pool[T]) {
		p.logger = logger
	}
}

// WithPrealloc fills the idle list with n fresh blocks, capped at maxIdle.
func WithPrealloc[T any](n int) Option[T] {
	return func(p *Pool[T]) {
		p.prealloc = n
	}
}

func defaultAllocate[T any]() (*T, error) {
	return new(T), nil
}

func defaultReset[T any](v *T) {
	var zero T
	*v = zero
}

// New creates a pool retaining at most maxIdle idle blocks. The name labels
// the pool in logs and metrics.
func New[T any](name string, maxIdle int, opts ...Option[T]) *Pool[T] {
	if maxIdle < 0 {
		panic(moerr.NewInvalidArgNoCtx("pool "+name+" max idle", maxIdle))
	}
	p := &Pool[T]{
		name:     name,
		maxIdle:  maxIdle,
		idle:     make([]*T, 0, maxIdle),
		allocate: defaultAllocate[T],
		reset:    defaultReset[T],
		metrics:  v2.GetPoolMetrics(name),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logutil.GetNamedLogger("pool")
	}
	p.Reserve(p.prealloc)
	p.logger.Debug("pool created",
		zap.String("pool", name),
		zap.Int("max-idle", maxIdle),
		zap.Int("idle", len(p.idle)),
	)
	return p
}

func (p *Pool[T]) mustAllocate() *T {
	ptr, err := p.allocate()
	if err != nil || ptr == nil {
		p.logger.Error("pool allocation failed",
			zap.String("pool", p.name),
			zap.Error(err),
		)
		panic(moerr.NewOOMNoCtx())
	}
	p.stats.Allocated++
	return ptr
}

// Acquire hands out a block, running init on it when init is not nil.
// The returned handle owns the block until Release.
func (p *Pool[T]) Acquire(init func(*T)) Handle[T] {
	var ptr *T
	if n := len(p.idle); n > 0 {
		ptr = p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
		p.stats.Reused++
		p.metrics.AcquireReuse.Inc()
		p.metrics.Idle.Dec()
	} else {
		ptr = p.mustAllocate()
		p.metrics.AcquireAlloc.Inc()
	}
	if init != nil {
		init(ptr)
	}
	return Handle[T]{ptr: ptr, pool: p}
}

func (p *Pool[T]) put(ptr *T) {
	p.reset(ptr)
	if len(p.idle) < p.maxIdle {
		p.idle = append(p.idle, ptr)
		p.stats.Released++
		p.metrics.ReleaseIdle.Inc()
		p.metrics.Idle.Inc()
		return
	}
	p.stats.Dropped++
	p.metrics.ReleaseDrop.Inc()
	p.logger.Debug("pool drop",
		zap.String("pool", p.name),
		zap.Int("max-idle", p.maxIdle),
	)
}

// Reserve allocates fresh blocks until at least n are idle, never going
// beyond maxIdle.
func (p *Pool[T]) Reserve(n int) {
	before := len(p.idle)
	for len(p.idle) < min(n, p.maxIdle) {
		p.idle = append(p.idle, p.mustAllocate())
	}
	p.metrics.Idle.Add(float64(len(p.idle) - before))
}

// Idle returns the number of retained idle blocks.
func (p *Pool[T]) Idle() int {
	return len(p.idle)
}

// MaxIdle returns the idle list limit.
func (p *Pool[T]) MaxIdle() int {
	return p.maxIdle
}

func (p *Pool[T]) Name() string {
	return p.name
}

func (p *Pool[T]) Stats() Stats {
	return p.stats
}

// Close drops every idle block. Outstanding handles may still be released
// afterwards; they are kept up to maxIdle again.
func (p *Pool[T]) Close() {
	n := len(p.idle)
	clear(p.idle)
	p.idle = p.idle[:0]
	p.stats.Dropped += uint64(n)
	p.metrics.ReleaseDrop.Add(float64(n))
	p.metrics.Idle.Sub(float64(n))
	p.logger.Info("pool closed",
		zap.String("pool", p.name),
		zap.Uint64("allocated", p.stats.Allocated),
		zap.Uint64("reused", p.stats.Reused),
		zap.Uint64("released", p.stats.Released),
		zap.Uint64("dropped", p.stats.Dropped),
	)
}
