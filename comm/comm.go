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

// Package comm tracks which communicator the process currently uses for
// collective operations.
//
// A Communicator is an opaque handle onto a group of cooperating processes.
// The handle itself is supplied by a message-passing runtime binding; this
// package only decides which handle is current, the way the collective
// machinery sees it. Operations are written against an explicit communicator
// argument, and call sites that pass nil transparently pick up the
// process-wide default via Resolve or the Enable wrappers.
//
// All state here is process-wide and unsynchronized. Calls are expected from
// a single logical thread of control; concurrent use must be serialized by
// the caller.
package comm

// Communicator identifies a named group of cooperating processes capable of
// collective message passing. Collective semantics (broadcast, reduce,
// barrier) belong to the runtime binding that produced the handle; nothing
// in this package invokes or validates them.
type Communicator interface {
	// Rank returns this process's identity within the group, starting at 0.
	Rank() int

	// Size returns the number of processes in the group.
	Size() int

	// Name returns the group's label, for diagnostics.
	Name() string
}

// self is the world of a process running without a message-passing runtime:
// a group of one, mirroring a program launched without a launcher.
type self struct{}

func (self) Rank() int    { return 0 }
func (self) Size() int    { return 1 }
func (self) Name() string { return "self" }

var world Communicator

// RegisterWorld installs the runtime's world group. A message-passing
// binding calls this once during program initialization, before any
// operation resolves a communicator.
func RegisterWorld(c Communicator) {
	world = c
}

// World returns the ambient world group. When no runtime binding has been
// registered it resolves to a process-local group of one and caches that
// resolution.
func World() Communicator {
	if world == nil {
		world = self{}
	}
	return world
}
