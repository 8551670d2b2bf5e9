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

// Package options holds the library's global tunables as a single
// process-wide table with scoped override-and-restore semantics.
//
// Consumers read the table directly wherever they need configuration; a
// transient override enters through Set, which overlays only the keys it is
// given and returns a guard that restores the exact prior table, including
// keys the overlay never touched:
//
//	defer options.Set(options.Table{options.CacheCapacityBytes: 100}).Restore()
//
// Exactly one table is visible at a time. Guards compose as long as scopes
// are strictly nested; entering and leaving scopes from concurrent
// goroutines corrupts the table and must be serialized by the caller, like
// all state in this layer.
package options

import "maps"

// Recognized option names. Foreign keys are stored verbatim and ignored by
// consumers that do not look for them; they are never an error here.
const (
	// CacheCapacityBytes is the ceiling on bytes retained by the global
	// result cache.
	CacheCapacityBytes = "cache_capacity_bytes"

	// DefaultChunkElements is the default granularity for partitioning
	// array-like inputs. Chunks should usually hold between 10 MB and
	// 100 MB of data.
	DefaultChunkElements = "default_chunk_elements"
)

// Table maps option names to their values.
type Table map[string]any

var global = Table{
	CacheCapacityBytes:   1e9,
	DefaultChunkElements: int(5e6),
}

// Value returns the current value of the named option.
func Value(name string) (any, bool) {
	v, ok := global[name]
	return v, ok
}

// Float reads a numeric option as a float64, accepting int-typed values.
// Absent or non-numeric options read as 0.
func Float(name string) float64 {
	switch v := global[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// Int reads a numeric option as an int, accepting float-typed values.
// Absent or non-numeric options read as 0.
func Int(name string) int {
	switch v := global[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Scope is one live override of the global table. Each Scope owns the
// snapshot taken when it was created, so strictly nested scopes restore
// exactly, innermost first.
type Scope struct {
	saved Table
}

// Set snapshots the full current table, overlays the supplied keys onto it,
// and returns the guard that undoes the overlay. Callers defer Restore so
// the prior table comes back on every exit path, early returns and panics
// included.
func Set(overlay Table) *Scope {
	s := &Scope{saved: maps.Clone(global)}
	for k, v := range overlay {
		global[k] = v
	}
	return s
}

// Restore puts back the table captured when this Scope was created,
// discarding the overlay and anything layered on top of it since. Calling
// Restore again on the same Scope does nothing.
func (s *Scope) Restore() {
	if s.saved == nil {
		return
	}
	clear(global)
	maps.Copy(global, s.saved)
	s.saved = nil
}
