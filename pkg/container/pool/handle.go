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

package pool

import "github.com/matrixorigin/segdeque/pkg/common/moerr"

// Handle owns one block acquired from a Pool. The zero Handle is invalid.
// Handles are moved by value; after Release every copy is dead, so only one
// copy may ever be released.
type Handle[T any] struct {
	ptr  *T
	pool *Pool[T]
}

func (h Handle[T]) Get() *T {
	return h.ptr
}

func (h Handle[T]) Valid() bool {
	return h.ptr != nil
}

// Release gives the block back to its pool and invalidates the handle.
func (h *Handle[T]) Release() {
	if h.ptr == nil || h.pool == nil {
		panic(moerr.NewInvalidStateNoCtx("release of invalid handle"))
	}
	h.pool.put(h.ptr)
	h.ptr = nil
	h.pool = nil
}
