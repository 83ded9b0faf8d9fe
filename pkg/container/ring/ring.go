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

package ring

import (
	"iter"

	"github.com/matrixorigin/segdeque/pkg/common/moerr"
)

const minCapacity = 8

// Ring is a growable circular buffer with O(1) access by index and O(1)
// amortized push and pop at both ends. Element i lives at physical slot
// (start+i) mod cap.
//
// Growing or shrinking repacks the live elements into a new backing slice
// starting at slot 0 and clears the old one, so pointers returned by Ptr do
// not survive a push or pop that changes Cap.
type Ring[T any] struct {
	buf   []T
	start int
	count int
}

// New creates an empty ring with the given initial capacity.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		panic(moerr.NewInvalidArgNoCtx("ring capacity", capacity))
	}
	return &Ring[T]{
		buf: make([]T, capacity),
	}
}

// Of creates a ring holding values in order.
func Of[T any](values ...T) *Ring[T] {
	r := New[T](max(len(values), minCapacity))
	for _, v := range values {
		r.PushBack(v)
	}
	return r
}

func (r *Ring[T]) Len() int {
	return r.count
}

func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

func (r *Ring[T]) Empty() bool {
	return r.count == 0
}

func (r *Ring[T]) slot(i int) int {
	i += r.start
	if i >= len(r.buf) {
		i -= len(r.buf)
	}
	return i
}

func (r *Ring[T]) repack(capacity int) {
	buf := make([]T, capacity)
	n := copy(buf, r.buf[r.start:min(r.start+r.count, len(r.buf))])
	if n < r.count {
		copy(buf[n:], r.buf[:r.count-n])
	}
	clear(r.buf)
	r.buf = buf
	r.start = 0
}

func (r *Ring[T]) grow() {
	if r.count == len(r.buf) {
		r.repack(max(len(r.buf)*2, minCapacity))
	}
}

func (r *Ring[T]) shrink() {
	if r.count < len(r.buf)/4 && len(r.buf) > minCapacity {
		r.repack(max(len(r.buf)/2, minCapacity))
	}
}

func (r *Ring[T]) PushBack(v T) {
	r.grow()
	r.buf[r.slot(r.count)] = v
	r.count++
}

func (r *Ring[T]) PushFront(v T) {
	r.grow()
	r.start--
	if r.start < 0 {
		r.start += len(r.buf)
	}
	r.buf[r.start] = v
	r.count++
}

// PopBack removes and returns the last element. It panics on an empty ring.
func (r *Ring[T]) PopBack() T {
	if r.count == 0 {
		panic(moerr.NewInvalidStateNoCtx("pop back on empty ring"))
	}
	var zero T
	i := r.slot(r.count - 1)
	v := r.buf[i]
	r.buf[i] = zero
	r.count--
	r.shrink()
	return v
}

// PopFront removes and returns the first element. It panics on an empty
// ring.
func (r *Ring[T]) PopFront() T {
	if r.count == 0 {
		panic(moerr.NewInvalidStateNoCtx("pop front on empty ring"))
	}
	var zero T
	v := r.buf[r.start]
	r.buf[r.start] = zero
	r.start = r.slot(1)
	r.count--
	if r.count == 0 {
		r.start = 0
	}
	r.shrink()
	return v
}

func (r *Ring[T]) checkIndex(i int) {
	if i < 0 || i >= r.count {
		panic(moerr.NewOutOfRangeNoCtx("ring index", "%d not in [0, %d)", i, r.count))
	}
}

func (r *Ring[T]) At(i int) T {
	r.checkIndex(i)
	return r.buf[r.slot(i)]
}

// Ptr returns a pointer to element i, valid until the next repack.
func (r *Ring[T]) Ptr(i int) *T {
	r.checkIndex(i)
	return &r.buf[r.slot(i)]
}

func (r *Ring[T]) Set(i int, v T) {
	r.checkIndex(i)
	r.buf[r.slot(i)] = v
}

func (r *Ring[T]) Front() T {
	if r.count == 0 {
		panic(moerr.NewInvalidStateNoCtx("front of empty ring"))
	}
	return r.buf[r.start]
}

func (r *Ring[T]) Back() T {
	if r.count == 0 {
		panic(moerr.NewInvalidStateNoCtx("back of empty ring"))
	}
	return r.buf[r.slot(r.count-1)]
}

// Clear drops every element and keeps the capacity.
func (r *Ring[T]) Clear() {
	for i := 0; i < r.count; i++ {
		var zero T
		r.buf[r.slot(i)] = zero
	}
	r.start = 0
	r.count = 0
}

// All iterates front to back.
func (r *Ring[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < r.count; i++ {
			if !yield(i, r.buf[r.slot(i)]) {
				return
			}
		}
	}
}

// Backward iterates back to front.
func (r *Ring[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := r.count - 1; i >= 0; i-- {
			if !yield(i, r.buf[r.slot(i)]) {
				return
			}
		}
	}
}
