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
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Iota returns [0, n) as a slice of T.
func Iota[T constraints.Integer](n int) []T {
	ret := make([]T, n)
	for i := range ret {
		ret[i] = T(i)
	}
	return ret
}

// Reversed returns (n, 0] as a slice of T, the order produced by pushing
// Iota(n) to the front one by one.
func Reversed[T constraints.Integer](n int) []T {
	ret := make([]T, n)
	for i := range ret {
		ret[i] = T(n - 1 - i)
	}
	return ret
}

// Op is one step of a random push/pop script.
type Op struct {
	Front bool
	Push  bool
}

// RandomOps returns a reproducible script of n operations. Pops are only
// scheduled when the running size is positive.
func RandomOps(seed int64, n int) []Op {
	r := rand.New(rand.NewSource(seed))
	ops := make([]Op, 0, n)
	size := 0
	for i := 0; i < n; i++ {
		op := Op{Front: r.Intn(2) == 0, Push: size == 0 || r.Intn(3) != 0}
		if op.Push {
			size++
		} else {
			size--
		}
		ops = append(ops, op)
	}
	return ops
}
