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

// Tracker counts constructions, destructions and moves of tracked values so
// that tests can check every value placed into a container is cleaned up
// exactly once.
type Tracker struct {
	Constructed int
	Destructed  int
	Moved       int
}

// Tracked is an element type carrying a back reference to its tracker.
type Tracked struct {
	ID      int
	tracker *Tracker
}

// New returns a live value registered with the tracker.
func (t *Tracker) New(id int) Tracked {
	t.Constructed++
	return Tracked{ID: id, tracker: t}
}

// Init constructs a value in place.
func (t *Tracker) Init(id int) func(*Tracked) {
	return func(v *Tracked) {
		*v = t.New(id)
	}
}

// Destroy is the release hook for tracked values. Zero values are ignored.
func (t *Tracker) Destroy(v *Tracked) {
	if v.tracker == nil {
		return
	}
	v.tracker.Destructed++
	*v = Tracked{}
}

// Move records a move out of v and returns the moved value.
func (t *Tracker) Move(v Tracked) Tracked {
	t.Moved++
	return v
}

// Live returns the number of constructed values not yet destroyed.
func (t *Tracker) Live() int {
	return t.Constructed - t.Destructed
}

// Live reports whether v was constructed by a tracker.
func (v Tracked) Live() bool {
	return v.tracker != nil
}
