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

package deque

import (
	"github.com/matrixorigin/segdeque/pkg/container/pool"
)

// DefaultMaxIdleSegments is the idle segment limit of the private pool a
// deque creates when no pool is given.
const DefaultMaxIdleSegments = 120

// DefaultPoolName labels private segment pools in logs and metrics.
const DefaultPoolName = "deque"

// SegmentPool recycles segments for deques of T. Every segment it hands out
// has the capacity fixed when the pool was created, and holds only zero
// values.
//
// A SegmentPool may be shared by several deques as long as all of them are
// used from a single goroutine at a time.
type SegmentPool[T any] struct {
	pool   *pool.Pool[segment[T]]
	segCap int
}

func NewSegmentPool[T any](name string, maxIdle int) *SegmentPool[T] {
	segCap := segmentCapacity[T]()
	return &SegmentPool[T]{
		segCap: segCap,
		pool: pool.New(name, maxIdle,
			pool.WithAllocator(func() (*segment[T], error) {
				return &segment[T]{items: make([]T, segCap)}, nil
			}),
			pool.WithReset((*segment[T]).reset),
		),
	}
}

func (p *SegmentPool[T]) acquire() pool.Handle[segment[T]] {
	return p.pool.Acquire(nil)
}

// Reserve preallocates idle segments, up to the pool limit.
func (p *SegmentPool[T]) Reserve(n int) {
	p.pool.Reserve(n)
}

func (p *SegmentPool[T]) SegmentCapacity() int {
	return p.segCap
}

func (p *SegmentPool[T]) Idle() int {
	return p.pool.Idle()
}

func (p *SegmentPool[T]) Stats() pool.Stats {
	return p.pool.Stats()
}

// Close drops the idle segments. Segments still held by deques go back to
// the pool when those deques release them.
func (p *SegmentPool[T]) Close() {
	p.pool.Close()
}
