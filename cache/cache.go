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

// Package cache retains computed results up to a byte capacity, evicting
// the least recently used entries first.
//
// The process-wide cache returned by Global is sized from the
// options.CacheCapacityBytes tunable; ApplyOptions re-reads that tunable so
// a transient override takes effect on the retained total immediately.
//
// Like the rest of this state layer, a Cache has no internal locking and is
// meant for a single logical thread of control.
package cache

import (
	"container/list"

	"github.com/dustin/go-humanize"
	gol "github.com/op/go-logging"

	"github.com/caoxiaoyue/nbodykit/options"
)

var log = gol.MustGetLogger("cache")

// entry is one retained result.
type entry struct {
	key   string
	value any
	size  int64
}

// Cache is an LRU over opaque values with per-entry byte sizes. The
// retained total stays strictly below the capacity at all times.
type Cache struct {
	capacity int64
	total    int64
	ll       *list.List // most recently used at the front
	entries  map[string]*list.Element
}

// New returns an empty cache with the given byte capacity.
func New(capacity int64) *Cache {
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		entries:  map[string]*list.Element{},
	}
}

// Get returns the value retained under key, refreshing its recency.
func (c *Cache) Get(key string) (any, bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(e)
	return e.Value.(*entry).value, true
}

// Put retains value under key, accounting size bytes against the capacity.
// The oldest entries are evicted until the retained total is below the
// capacity again; a value at least as large as the whole capacity therefore
// does not stay retained.
func (c *Cache) Put(key string, value any, size int64) {
	if e, ok := c.entries[key]; ok {
		ent := e.Value.(*entry)
		c.total += size - ent.size
		ent.value = value
		ent.size = size
		c.ll.MoveToFront(e)
	} else {
		c.entries[key] = c.ll.PushFront(&entry{key: key, value: value, size: size})
		c.total += size
	}
	c.evict()
}

// Delete drops key, if retained.
func (c *Cache) Delete(key string) {
	if e, ok := c.entries[key]; ok {
		c.removeElement(e)
	}
}

// Resize replaces the byte capacity and evicts down to it.
func (c *Cache) Resize(capacity int64) {
	c.capacity = capacity
	c.evict()
}

// Len returns the number of retained entries.
func (c *Cache) Len() int { return c.ll.Len() }

// TotalBytes returns the retained total.
func (c *Cache) TotalBytes() int64 { return c.total }

// Capacity returns the current byte ceiling.
func (c *Cache) Capacity() int64 { return c.capacity }

func (c *Cache) evict() {
	for c.total >= c.capacity && c.ll.Len() > 0 {
		ent := c.removeElement(c.ll.Back())
		log.Debugf("evicted %s (%s), %s retained",
			ent.key, humanize.Bytes(uint64(ent.size)), humanize.Bytes(uint64(c.total)))
	}
}

func (c *Cache) removeElement(e *list.Element) *entry {
	ent := e.Value.(*entry)
	c.ll.Remove(e)
	delete(c.entries, ent.key)
	c.total -= ent.size
	return ent
}

var global *Cache

// Global returns the process-wide result cache, created on first use with
// the capacity configured under options.CacheCapacityBytes.
func Global() *Cache {
	if global == nil {
		global = New(int64(options.Float(options.CacheCapacityBytes)))
	}
	return global
}

// ApplyOptions resizes the global cache to the currently configured
// capacity. Consumers call this after overlaying options so a shrunken
// ceiling evicts retained results right away.
func ApplyOptions() {
	Global().Resize(int64(options.Float(options.CacheCapacityBytes)))
}
