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

import "unsafe"

// minSegmentCapacity keeps segments useful for element types larger than a
// page.
const minSegmentCapacity = 16

// segment is a fixed-capacity block of element slots. Links are only used
// for traversal; position lookups go through the deque's ring.
type segment[T any] struct {
	items []T
	next  *segment[T]
	prev  *segment[T]
}

// segmentCapacity returns the number of T fitting in one page, at least
// minSegmentCapacity.
func segmentCapacity[T any]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		size = 1
	}
	return max((pageSize+size-1)/size, minSegmentCapacity)
}

func (s *segment[T]) reset() {
	clear(s.items)
	s.next = nil
	s.prev = nil
}
