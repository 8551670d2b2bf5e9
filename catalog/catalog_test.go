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

package catalog

import (
	"math"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/caoxiaoyue/nbodykit/cache"
	"github.com/caoxiaoyue/nbodykit/comm"
	"github.com/caoxiaoyue/nbodykit/options"
)

func pow5(chunk []float64) []float64 {
	out := make([]float64, len(chunk))
	for i, v := range chunk {
		out[i] = math.Pow(v, 5)
	}
	return out
}

func TestUniformCatalog(t *testing.T) {
	Convey(`A uniform catalog`, t, func() {
		cat := UniformCatalog(1e4, 1.0, 42)

		Convey(`holds positions inside the box`, func() {
			So(cat.Size(), ShouldBeGreaterThan, 0)
			So(cat.Columns(), ShouldHaveLength, 3)
			xs, err := cat.Compute("x")
			So(err, ShouldBeNil)
			So(len(xs), ShouldEqual, cat.Size())
			for _, v := range xs {
				So(v, ShouldBeBetweenOrEqual, 0, 1)
			}
		})

		Convey(`reproduces a realization from its seed`, func() {
			other := UniformCatalog(1e4, 1.0, 42)
			So(other.Size(), ShouldEqual, cat.Size())
		})

		Convey(`rejects unknown columns`, func() {
			_, err := cat.Compute("nope")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDerivedColumns(t *testing.T) {
	Convey(`A derived column`, t, func() {
		cat := UniformCatalog(1e3, 1.0, 7)
		cat.AddDerived("test", "x", pow5)

		Convey(`computes elementwise over the source`, func() {
			xs, err := cat.Compute("x")
			So(err, ShouldBeNil)
			col, err := cat.Compute("test")
			So(err, ShouldBeNil)
			So(len(col), ShouldEqual, len(xs))
			So(col[0], ShouldAlmostEqual, math.Pow(xs[0], 5))
		})

		Convey(`is partitioned by the configured chunk granularity`, func() {
			var calls atomic.Int64
			cat.AddDerived("counted", "x", func(chunk []float64) []float64 {
				calls.Add(1)
				return pow5(chunk)
			})

			outer := options.Set(options.Table{options.DefaultChunkElements: 10})
			defer outer.Restore()
			inner := options.Set(options.Table{options.CacheCapacityBytes: 5e8})
			defer inner.Restore()

			_, err := cat.Compute("counted")
			So(err, ShouldBeNil)
			want := (cat.Size() + 9) / 10
			So(calls.Load(), ShouldEqual, int64(want))

			Convey(`with nested overlays restoring inside-out`, func() {
				inner.Restore()
				So(options.Int(options.DefaultChunkElements), ShouldEqual, 10)
				So(options.Float(options.CacheCapacityBytes), ShouldEqual, 1e9)

				outer.Restore()
				So(options.Int(options.DefaultChunkElements), ShouldEqual, 5000000)
			})
		})
	})
}

func TestCacheResizeTakesEffect(t *testing.T) {
	Convey(`Shrinking the configured cache capacity`, t, func() {
		cache.ApplyOptions() // sync the ceiling with the default table
		cat := UniformCatalog(1e4, 1.0, 42)
		cat.AddDerived("test", "x", pow5)

		col, err := cat.Compute("test")
		So(err, ShouldBeNil)
		So(len(col), ShouldEqual, cat.Size())
		So(cache.Global().TotalBytes(), ShouldBeGreaterThanOrEqualTo, 100)

		s := options.Set(options.Table{options.CacheCapacityBytes: 100})
		defer s.Restore()
		cache.ApplyOptions()

		So(cache.Global().TotalBytes(), ShouldBeLessThan, 100)

		Convey(`and restoring it grows the ceiling back`, func() {
			s.Restore()
			cache.ApplyOptions()
			So(cache.Global().Capacity(), ShouldEqual, int64(1e9))
		})
	})
}

func TestStatistics(t *testing.T) {
	Convey(`Statistics operations`, t, func() {
		comm.SetCurrent(comm.World())
		xs := []float64{1, 2, 3, 4}

		Convey(`reduce locally over a group of one`, func() {
			m, err := Mean(nil, xs)
			So(err, ShouldBeNil)
			So(m, ShouldEqual, 2.5)

			v, err := Variance(nil, xs)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 5.0/3.0)

			w, err := MeanWeighted(nil, xs, []float64{1, 0, 0, 1})
			So(err, ShouldBeNil)
			So(w, ShouldEqual, 2.5)
		})

		Convey(`fail on a multi-rank group without a reducing binding`, func() {
			pair := fakeComm{size: 2, name: "pair"}

			Convey(`passed explicitly, regardless of the registry`, func() {
				_, err := Mean(pair, xs)
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, `"pair"`)
			})

			Convey(`or picked up from the registry at call time`, func() {
				comm.SetCurrent(pair)
				defer comm.SetCurrent(comm.World())
				_, err := Mean(nil, xs)
				So(err, ShouldNotBeNil)
			})
		})
	})
}

type fakeComm struct {
	rank, size int
	name       string
}

func (f fakeComm) Rank() int    { return f.rank }
func (f fakeComm) Size() int    { return f.size }
func (f fakeComm) Name() string { return f.name }
