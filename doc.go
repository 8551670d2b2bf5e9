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

// Package nbodykit is the process-wide coordination state shared by the
// library's array-parallel operations, one process per rank under a
// message-passing runtime.
//
// The state layer is split across four packages:
//
//   - comm holds the current communicator, lazily defaulting to the world
//     group, and injects it into operations whose call sites omit one;
//   - options is the global tunables table with scoped override-and-restore
//     semantics;
//   - logging attaches the single elapsed-and-rank prefixed sink to the
//     process-wide log stream;
//   - cache is the byte-capacity result cache sized from the options table,
//     consumed by catalog and the other numerical operations.
//
// Every rank holds its own independent copy of this state; cross-process
// coordination is entirely the message-passing runtime's business. Within a
// rank the state is unsynchronized and expects a single logical thread of
// control.
package nbodykit
