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
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/caoxiaoyue/nbodykit/comm"
)

// Summary statistics over catalog columns. Each operation takes the
// communicator its reduction runs over; the exported forms are decorated so
// a nil argument resolves to the process-wide current communicator, while
// an explicit one always wins.
//
// Cross-rank reduction belongs to the runtime binding. A group of one is
// complete locally; a larger group without a reducing binding is an error,
// surfaced as-is.
var (
	Mean         = comm.Enable(mean)
	Variance     = comm.Enable(variance)
	MeanWeighted = comm.Enable2(meanWeighted)
)

func requireLocal(c comm.Communicator, op string) error {
	if c.Size() > 1 {
		return fmt.Errorf("catalog: %s over group %q of %d ranks needs a reducing runtime binding",
			op, c.Name(), c.Size())
	}
	return nil
}

func mean(c comm.Communicator, xs []float64) (float64, error) {
	if err := requireLocal(c, "mean"); err != nil {
		return 0, err
	}
	return stat.Mean(xs, nil), nil
}

func variance(c comm.Communicator, xs []float64) (float64, error) {
	if err := requireLocal(c, "variance"); err != nil {
		return 0, err
	}
	return stat.Variance(xs, nil), nil
}

func meanWeighted(c comm.Communicator, xs, weights []float64) (float64, error) {
	if err := requireLocal(c, "weighted mean"); err != nil {
		return 0, err
	}
	return stat.Mean(xs, weights), nil
}
