// Copyright 2026 The nbodykit Authors.
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

package comm

var current Communicator

// Current returns the communicator collective operations use when their
// call site does not name one. If none has ever been set it resolves to
// World() and caches that resolution, so repeated calls return the same
// handle.
func Current() Communicator {
	if current == nil {
		current = World()
	}
	return current
}

// SetCurrent unconditionally replaces the current communicator. The handle
// is stored as given: no validation happens here, and an unusable handle
// surfaces later as whatever error the runtime produces. The replacement is
// visible to every subsequent operation in the process, not just the call
// site that issued it.
func SetCurrent(c Communicator) {
	current = c
}
