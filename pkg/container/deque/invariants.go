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

// verify checks the structural invariants of d.
func (d *Deque[T]) verify() error {
	n := d.segs.Len()
	if n == 0 {
		return moerr.NewInternalErrorNoCtx("deque holds no segment")
	}
	if d.size == 0 {
		if n != 1 || d.first != d.last {
			return moerr.NewInternalErrorNoCtx("empty deque with %d segments, first %d, last %d", n, d.first, d.last)
		}
	} else {
		if d.first < 0 || d.first >= d.segCap || d.last <= 0 || d.last > d.segCap {
			return moerr.NewInternalErrorNoCtx("offsets out of range: first %d, last %d", d.first, d.last)
		}
		want := d.last - d.first
		if n > 1 {
			want = (d.segCap - d.first) + (n-2)*d.segCap + d.last
		}
		if d.size != want {
			return moerr.NewInternalErrorNoCtx("size %d, segments account for %d", d.size, want)
		}
	}
	var prev *segment[T]
	for i, h := range d.segs.All() {
		seg := h.Get()
		if seg == nil {
			return moerr.NewInternalErrorNoCtx("segment %d released", i)
		}
		if len(seg.items) != d.segCap {
			return moerr.NewInternalErrorNoCtx("segment %d capacity %d", i, len(seg.items))
		}
		if seg.prev != prev {
			return moerr.NewInternalErrorNoCtx("segment %d prev link broken", i)
		}
		if prev != nil && prev.next != seg {
			return moerr.NewInternalErrorNoCtx("segment %d next link broken", i-1)
		}
		prev = seg
	}
	if prev.next != nil {
		return moerr.NewInternalErrorNoCtx("tail segment has a next link")
	}
	return nil
}

func (d *Deque[T]) assertInvariants() {
	if !checkInvariants {
		return
	}
	if err := d.verify(); err != nil {
		panic(err)
	}
}
