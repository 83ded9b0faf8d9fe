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

import "github.com/matrixorigin/segdeque/pkg/common/moerr"

// Iterator is a bidirectional position in a Deque that walks segment links.
// End is represented by a nil segment, which no element position can have.
// An iterator stays valid while the element it points at is in the deque;
// popping that element or clearing the deque invalidates it.
type Iterator[T any] struct {
	d   *Deque[T]
	seg *segment[T]
	off int
}

// Begin returns the position of the first element, or End when empty.
func (d *Deque[T]) Begin() Iterator[T] {
	if d.size == 0 {
		return d.End()
	}
	return Iterator[T]{d: d, seg: d.head(), off: d.first}
}

func (d *Deque[T]) End() Iterator[T] {
	return Iterator[T]{d: d}
}

// Valid reports whether the iterator points at an element.
func (it Iterator[T]) Valid() bool {
	return it.seg != nil
}

func (it Iterator[T]) mustValid() {
	if it.seg == nil {
		panic(moerr.NewOutOfRangeNoCtx("deque iterator", "dereference of end"))
	}
}

func (it Iterator[T]) Value() T {
	it.mustValid()
	return it.seg.items[it.off]
}

func (it Iterator[T]) Ptr() *T {
	it.mustValid()
	return &it.seg.items[it.off]
}

// Next advances to the following element, or to End after the last one.
func (it Iterator[T]) Next() Iterator[T] {
	it.mustValid()
	it.off++
	switch {
	case it.seg.next == nil && it.off == it.d.last:
		it.seg = nil
		it.off = 0
	case it.off == it.d.segCap:
		it.seg = it.seg.next
		it.off = 0
	}
	return it
}

// Prev moves to the preceding element. Prev of End is the last element;
// Prev of Begin panics.
func (it Iterator[T]) Prev() Iterator[T] {
	if it.seg == nil {
		if it.d.size == 0 {
			panic(moerr.NewOutOfRangeNoCtx("deque iterator", "prev of begin"))
		}
		it.seg = it.d.tail()
		it.off = it.d.last - 1
		return it
	}
	if it.seg.prev == nil && it.off == it.d.first {
		panic(moerr.NewOutOfRangeNoCtx("deque iterator", "prev of begin"))
	}
	it.off--
	if it.off < 0 {
		it.seg = it.seg.prev
		it.off = it.d.segCap - 1
	}
	return it
}

func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.d == o.d && it.seg == o.seg && it.off == o.off
}
