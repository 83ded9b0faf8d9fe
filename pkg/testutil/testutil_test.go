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

package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	var tr Tracker
	a := tr.New(1)
	var b Tracked
	tr.Init(2)(&b)
	require.Equal(t, 2, tr.Constructed)
	require.Equal(t, 2, tr.Live())

	c := tr.Move(a)
	require.Equal(t, 1, tr.Moved)
	require.Equal(t, 1, c.ID)

	tr.Destroy(&b)
	require.False(t, b.Live())
	tr.Destroy(&b)
	require.Equal(t, 1, tr.Destructed)
	require.Equal(t, 1, tr.Live())
}

func TestSequences(t *testing.T) {
	require.Equal(t, []int32{0, 1, 2, 3}, Iota[int32](4))
	require.Equal(t, []uint8{3, 2, 1, 0}, Reversed[uint8](4))
	require.Empty(t, Iota[int](0))
}

func TestRandomOps(t *testing.T) {
	ops := RandomOps(42, 1000)
	require.Equal(t, ops, RandomOps(42, 1000))
	size := 0
	for _, op := range ops {
		if op.Push {
			size++
		} else {
			size--
		}
		require.GreaterOrEqual(t, size, 0)
	}
}
