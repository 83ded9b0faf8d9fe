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

import "github.com/matrixorigin/segdeque/pkg/common/moerr"

// Iterator is a random access position in a Ring. It holds an index, not a
// slot: after the ring repacks, an iterator resolves to whatever element
// now sits at its index. End is the position one past the last element.
type Iterator[T any] struct {
	r   *Ring[T]
	idx int
}

func (r *Ring[T]) Begin() Iterator[T] {
	return Iterator[T]{r: r}
}

func (r *Ring[T]) End() Iterator[T] {
	return Iterator[T]{r: r, idx: r.count}
}

// IteratorAt returns the position of element i. i may equal Len, giving
// End.
func (r *Ring[T]) IteratorAt(i int) Iterator[T] {
	if i < 0 || i > r.count {
		panic(moerr.NewOutOfRangeNoCtx("ring iterator", "%d not in [0, %d]", i, r.count))
	}
	return Iterator[T]{r: r, idx: i}
}

func (it Iterator[T]) Index() int {
	return it.idx
}

func (it Iterator[T]) Value() T {
	return it.r.At(it.idx)
}

func (it Iterator[T]) Ptr() *T {
	return it.r.Ptr(it.idx)
}

func (it Iterator[T]) Set(v T) {
	it.r.Set(it.idx, v)
}

func (it Iterator[T]) Next() Iterator[T] {
	it.idx++
	return it
}

func (it Iterator[T]) Prev() Iterator[T] {
	it.idx--
	return it
}

func (it Iterator[T]) Add(n int) Iterator[T] {
	it.idx += n
	return it
}

func (it Iterator[T]) Sub(n int) Iterator[T] {
	it.idx -= n
	return it
}

func (it Iterator[T]) mustSameRing(o Iterator[T]) {
	if it.r != o.r {
		panic(moerr.NewInvalidInputNoCtx("iterators of different rings"))
	}
}

// Distance returns o - it in elements.
func (it Iterator[T]) Distance(o Iterator[T]) int {
	it.mustSameRing(o)
	return o.idx - it.idx
}

// Compare returns -1, 0 or 1 as it is before, at or after o.
func (it Iterator[T]) Compare(o Iterator[T]) int {
	it.mustSameRing(o)
	switch {
	case it.idx < o.idx:
		return -1
	case it.idx > o.idx:
		return 1
	}
	return 0
}

func (it Iterator[T]) Equal(o Iterator[T]) bool {
	return it.r == o.r && it.idx == o.idx
}
