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

// Package catalog builds object catalogs whose derived columns are computed
// in chunks and retained in the process-wide result cache.
//
// It is the consumer side of the library's state layer: chunk granularity
// and cache capacity come from the options table, and the statistics
// operations resolve their communicator through the comm registry when the
// call site does not pass one.
package catalog

import (
	"fmt"

	gol "github.com/op/go-logging"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/caoxiaoyue/nbodykit/cache"
	"github.com/caoxiaoyue/nbodykit/options"
)

var log = gol.MustGetLogger("UniformCatalog")

// catalogSeq distinguishes cache keys of distinct catalog instances, whose
// derived columns may differ even for one seed.
var catalogSeq int

type derived struct {
	source string
	fn     func(chunk []float64) []float64
}

// Catalog is a set of objects with named per-object columns. Base columns
// hold data directly; derived columns are evaluated on demand and retained
// in the global result cache.
type Catalog struct {
	id      string
	size    int
	columns map[string][]float64
	derived map[string]derived
}

// UniformCatalog returns a catalog of uniformly distributed objects in a
// periodic box. The object count is Poisson-drawn around nbar*boxSize^3,
// with x, y and z positions uniform over the box, so every rank can
// generate an independent realization from its own seed.
func UniformCatalog(nbar, boxSize float64, seed uint64) *Catalog {
	src := rand.NewSource(seed)
	n := int(distuv.Poisson{Lambda: nbar * boxSize * boxSize * boxSize, Src: src}.Rand())
	u := distuv.Uniform{Min: 0, Max: boxSize, Src: src}

	catalogSeq++
	c := &Catalog{
		id:      fmt.Sprintf("uniform-%d-%d", seed, catalogSeq),
		size:    n,
		columns: map[string][]float64{},
		derived: map[string]derived{},
	}
	for _, name := range []string{"x", "y", "z"} {
		col := make([]float64, n)
		for i := range col {
			col[i] = u.Rand()
		}
		c.columns[name] = col
	}
	log.Debugf("generated %d objects in a box of side %g", n, boxSize)
	return c
}

// Size returns the number of objects in the catalog.
func (c *Catalog) Size() int { return c.size }

// Columns returns the names of the base columns.
func (c *Catalog) Columns() []string {
	names := make([]string, 0, len(c.columns))
	for name := range c.columns {
		names = append(names, name)
	}
	return names
}

// AddDerived registers a column computed elementwise from source. The
// function receives one chunk of the source column at a time and must
// return a slice of the same length. Evaluation happens on the first
// Compute; the result is retained in the global cache afterwards.
func (c *Catalog) AddDerived(name, source string, fn func(chunk []float64) []float64) {
	c.derived[name] = derived{source: source, fn: fn}
}

// Compute returns the named column. Derived columns are evaluated in chunks
// of options.DefaultChunkElements, fanned out over disjoint ranges of the
// output, and the result is retained in the global cache keyed by catalog
// and column; later calls return the retained value.
func (c *Catalog) Compute(name string) ([]float64, error) {
	if col, ok := c.columns[name]; ok {
		return col, nil
	}

	key := c.id + "/" + name
	if v, ok := cache.Global().Get(key); ok {
		return v.([]float64), nil
	}

	d, ok := c.derived[name]
	if !ok {
		return nil, fmt.Errorf("catalog: no column %q", name)
	}
	src, err := c.Compute(d.source)
	if err != nil {
		return nil, err
	}

	chunk := options.Int(options.DefaultChunkElements)
	if chunk <= 0 {
		chunk = len(src)
	}
	out := make([]float64, len(src))
	var g errgroup.Group
	for lo := 0; lo < len(src); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(src))
		g.Go(func() error {
			copy(out[lo:hi], d.fn(src[lo:hi]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cache.Global().Put(key, out, 8*int64(len(out)))
	return out, nil
}
