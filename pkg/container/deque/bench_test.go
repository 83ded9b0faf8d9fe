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
	"testing"

	queue "github.com/yireyun/go-queue"
)

const benchBatch = 1024

func BenchmarkDequeFIFO(b *testing.B) {
	d := New[int]()
	defer d.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < benchBatch; j++ {
			d.PushBack(j)
		}
		for j := 0; j < benchBatch; j++ {
			if d.PopFront() != j {
				b.Fatal("out of order")
			}
		}
	}
}

func BenchmarkDequeLIFO(b *testing.B) {
	d := New[int]()
	defer d.Close()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < benchBatch; j++ {
			d.PushFront(j)
		}
		for j := 0; j < benchBatch; j++ {
			d.PopFront()
		}
	}
}

func BenchmarkDequeAt(b *testing.B) {
	d := New[int]()
	defer d.Close()
	for j := 0; j < benchBatch*16; j++ {
		d.PushBack(j)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.At(i % d.Len())
	}
}

func BenchmarkSliceFIFO(b *testing.B) {
	for i := 0; i < b.N; i++ {
		var s []int
		for j := 0; j < benchBatch; j++ {
			s = append(s, j)
		}
		for len(s) > 0 {
			s = s[1:]
		}
	}
}

// BenchmarkEsQueueFIFO runs the same workload on a bounded lock-free queue.
func BenchmarkEsQueueFIFO(b *testing.B) {
	q := queue.NewQueue(benchBatch)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < benchBatch; j++ {
			if ok, _ := q.Put(j); !ok {
				b.Fatal("queue full")
			}
		}
		for j := 0; j < benchBatch; j++ {
			v, ok, _ := q.Get()
			if !ok || v.(int) != j {
				b.Fatal("out of order")
			}
		}
	}
}
