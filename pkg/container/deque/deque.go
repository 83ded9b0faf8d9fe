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
	"iter"

	"github.com/matrixorigin/segdeque/pkg/common/moerr"
	"github.com/matrixorigin/segdeque/pkg/container/pool"
	"github.com/matrixorigin/segdeque/pkg/container/ring"
)

// initialRingCapacity is the starting capacity of the segment ring.
const initialRingCapacity = 8

// noCopy marks a type that go vet's copylocks check refuses to copy.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Deque is a double-ended queue stored in fixed-capacity segments. Pushes
// and pops at either end are O(1) amortized, indexing is O(1), and an
// element never moves once stored: pointers from Ptr, FrontPtr, BackPtr and
// the Emplace methods stay valid until that element is popped or the deque
// is cleared.
//
// The segments are kept in order in a ring of pool handles. first is the
// first occupied slot of the head segment and last is one past the last
// occupied slot of the tail segment. An empty deque keeps a single segment
// with first == last.
//
// A Deque must not be copied; use Take to move one. It is not safe for
// concurrent use.
type Deque[T any] struct {
	noCopy noCopy

	pool    *SegmentPool[T]
	ownPool bool
	segs    *ring.Ring[pool.Handle[segment[T]]]
	segCap  int
	first   int
	last    int
	size    int
}

type Option[T any] func(*Deque[T])

// WithPool makes the deque take its segments from p instead of a private
// pool.
func WithPool[T any](p *SegmentPool[T]) Option[T] {
	return func(d *Deque[T]) {
		d.pool = p
	}
}

func New[T any](opts ...Option[T]) *Deque[T] {
	d := &Deque[T]{}
	for _, opt := range opts {
		opt(d)
	}
	if d.pool == nil {
		d.pool = NewSegmentPool[T](DefaultPoolName, DefaultMaxIdleSegments)
		d.ownPool = true
	}
	d.segCap = d.pool.SegmentCapacity()
	d.init()
	return d
}

// Of returns a deque holding values in order.
func Of[T any](values ...T) *Deque[T] {
	d := New[T]()
	for _, v := range values {
		d.PushBack(v)
	}
	return d
}

// FromSeq returns a deque holding the values of seq in order.
func FromSeq[T any](seq iter.Seq[T], opts ...Option[T]) *Deque[T] {
	d := New(opts...)
	for v := range seq {
		d.PushBack(v)
	}
	return d
}

func (d *Deque[T]) init() {
	d.segs = ring.New[pool.Handle[segment[T]]](initialRingCapacity)
	d.segs.PushBack(d.pool.acquire())
	d.first = 0
	d.last = 0
	d.size = 0
}

// mustOpen rejects use after Close.
func (d *Deque[T]) mustOpen() {
	if d.segs == nil {
		panic(moerr.NewInvalidStateNoCtx("deque closed"))
	}
}

func (d *Deque[T]) head() *segment[T] {
	d.mustOpen()
	return d.segs.Front().Get()
}

func (d *Deque[T]) tail() *segment[T] {
	d.mustOpen()
	return d.segs.Back().Get()
}

func (d *Deque[T]) Len() int {
	return d.size
}

func (d *Deque[T]) Empty() bool {
	return d.size == 0
}

// SegmentCapacity returns the number of slots per segment.
func (d *Deque[T]) SegmentCapacity() int {
	return d.segCap
}

// Segments returns the number of segments currently held.
func (d *Deque[T]) Segments() int {
	d.mustOpen()
	return d.segs.Len()
}

// backSlot makes room after the last element and returns its slot.
func (d *Deque[T]) backSlot() *T {
	d.mustOpen()
	if d.last == d.segCap {
		h := d.pool.acquire()
		tail := d.tail()
		tail.next = h.Get()
		h.Get().prev = tail
		d.segs.PushBack(h)
		d.last = 0
	}
	p := &d.tail().items[d.last]
	d.last++
	d.size++
	return p
}

// frontSlot makes room before the first element and returns its slot.
func (d *Deque[T]) frontSlot() *T {
	d.mustOpen()
	if d.size == 0 {
		// anchor at the end of the only segment so the back stays open
		d.first = d.segCap
		d.last = d.segCap
	}
	if d.first == 0 {
		h := d.pool.acquire()
		head := d.head()
		head.prev = h.Get()
		h.Get().next = head
		d.segs.PushFront(h)
		d.first = d.segCap
	}
	d.first--
	d.size++
	return &d.head().items[d.first]
}

func (d *Deque[T]) PushBack(v T) {
	*d.backSlot() = v
	d.assertInvariants()
}

func (d *Deque[T]) PushFront(v T) {
	*d.frontSlot() = v
	d.assertInvariants()
}

// EmplaceBack appends a zero element, runs init on it in place and returns
// its stable address. init may be nil.
func (d *Deque[T]) EmplaceBack(init func(*T)) *T {
	p := d.backSlot()
	if init != nil {
		init(p)
	}
	d.assertInvariants()
	return p
}

// EmplaceFront is the front counterpart of EmplaceBack.
func (d *Deque[T]) EmplaceFront(init func(*T)) *T {
	p := d.frontSlot()
	if init != nil {
		init(p)
	}
	d.assertInvariants()
	return p
}

// PopBack removes and returns the last element. It panics on an empty
// deque.
func (d *Deque[T]) PopBack() T {
	d.mustOpen()
	if d.size == 0 {
		panic(moerr.NewInvalidStateNoCtx("pop back on empty deque"))
	}
	var zero T
	tail := d.tail()
	d.last--
	v := tail.items[d.last]
	tail.items[d.last] = zero
	d.size--
	switch {
	case d.size == 0:
		d.first = 0
		d.last = 0
	case d.last == 0:
		h := d.segs.PopBack()
		d.tail().next = nil
		h.Release()
		d.last = d.segCap
	}
	d.assertInvariants()
	return v
}

// PopFront removes and returns the first element. It panics on an empty
// deque.
func (d *Deque[T]) PopFront() T {
	d.mustOpen()
	if d.size == 0 {
		panic(moerr.NewInvalidStateNoCtx("pop front on empty deque"))
	}
	var zero T
	head := d.head()
	v := head.items[d.first]
	head.items[d.first] = zero
	d.first++
	d.size--
	switch {
	case d.size == 0:
		d.first = 0
		d.last = 0
	case d.first == d.segCap:
		h := d.segs.PopFront()
		d.head().prev = nil
		h.Release()
		d.first = 0
	}
	d.assertInvariants()
	return v
}

// locate maps a logical index to its segment and slot.
func (d *Deque[T]) locate(i int) (*segment[T], int) {
	if i < 0 || i >= d.size {
		panic(moerr.NewOutOfRangeNoCtx("deque index", "%d not in [0, %d)", i, d.size))
	}
	span := d.segCap - d.first
	if i < span {
		return d.head(), d.first + i
	}
	adj := i - span
	return d.segs.At(adj/d.segCap + 1).Get(), adj % d.segCap
}

func (d *Deque[T]) At(i int) T {
	seg, off := d.locate(i)
	return seg.items[off]
}

// Ptr returns the stable address of element i.
func (d *Deque[T]) Ptr(i int) *T {
	seg, off := d.locate(i)
	return &seg.items[off]
}

func (d *Deque[T]) Set(i int, v T) {
	seg, off := d.locate(i)
	seg.items[off] = v
}

func (d *Deque[T]) mustNotEmpty(op string) {
	if d.size == 0 {
		panic(moerr.NewInvalidStateNoCtx("%s of empty deque", op))
	}
}

func (d *Deque[T]) Front() T {
	d.mustNotEmpty("front")
	return d.head().items[d.first]
}

func (d *Deque[T]) Back() T {
	d.mustNotEmpty("back")
	return d.tail().items[d.last-1]
}

func (d *Deque[T]) FrontPtr() *T {
	d.mustNotEmpty("front")
	return &d.head().items[d.first]
}

func (d *Deque[T]) BackPtr() *T {
	d.mustNotEmpty("back")
	return &d.tail().items[d.last-1]
}

// Clear drops every element and gives all segments but one back to the
// pool.
func (d *Deque[T]) Clear() {
	d.mustOpen()
	for d.segs.Len() > 1 {
		h := d.segs.PopBack()
		h.Release()
	}
	d.head().reset()
	d.first = 0
	d.last = 0
	d.size = 0
	d.assertInvariants()
}

// Close gives every segment back to the pool and closes a private pool.
// Any later use of the deque, a second Close included, panics.
func (d *Deque[T]) Close() {
	d.mustOpen()
	for !d.segs.Empty() {
		h := d.segs.PopBack()
		h.Release()
	}
	if d.ownPool {
		d.pool.Close()
	}
	d.segs = nil
	d.first = 0
	d.last = 0
	d.size = 0
}

// Take moves the contents of d into a new deque and leaves d empty, as if
// freshly created on the same pool. A private pool moves with the contents.
func (d *Deque[T]) Take() *Deque[T] {
	d.mustOpen()
	moved := &Deque[T]{
		pool:    d.pool,
		ownPool: d.ownPool,
		segs:    d.segs,
		segCap:  d.segCap,
		first:   d.first,
		last:    d.last,
		size:    d.size,
	}
	d.ownPool = false
	d.init()
	return moved
}

// bounds returns the occupied slot range of seg, telling the head and the
// tail apart by their missing links.
func (d *Deque[T]) bounds(seg *segment[T]) (lo, hi int) {
	lo, hi = 0, d.segCap
	if seg.prev == nil {
		lo = d.first
	}
	if seg.next == nil {
		hi = d.last
	}
	return
}

// All iterates front to back with logical indices, following segment links.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		idx := 0
		for seg := d.head(); seg != nil; seg = seg.next {
			lo, hi := d.bounds(seg)
			for _, v := range seg.items[lo:hi] {
				if !yield(idx, v) {
					return
				}
				idx++
			}
		}
	}
}

// Backward iterates back to front with logical indices.
func (d *Deque[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		idx := d.size - 1
		for seg := d.tail(); seg != nil; seg = seg.prev {
			lo, hi := d.bounds(seg)
			for j := hi - 1; j >= lo; j-- {
				if !yield(idx, seg.items[j]) {
					return
				}
				idx--
			}
		}
	}
}

// Values iterates the elements front to back.
func (d *Deque[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range d.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Refs iterates the element addresses front to back.
func (d *Deque[T]) Refs() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for seg := d.head(); seg != nil; seg = seg.next {
			lo, hi := d.bounds(seg)
			for j := lo; j < hi; j++ {
				if !yield(&seg.items[j]) {
					return
				}
			}
		}
	}
}
