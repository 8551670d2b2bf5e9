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

// Resolve returns c when the caller supplied one, and the process-wide
// current communicator otherwise. Operations with an optional communicator
// argument call this first, so an explicit argument always wins and a nil
// one picks up Current() at call time.
func Resolve(c Communicator) Communicator {
	if c != nil {
		return c
	}
	return Current()
}

// Enable wraps an operation over one value so that a nil communicator
// argument is substituted with the process-wide current one before the
// operation runs. The wrapped operation's errors propagate unchanged.
func Enable[A, R any](fn func(Communicator, A) (R, error)) func(Communicator, A) (R, error) {
	return func(c Communicator, a A) (R, error) {
		return fn(Resolve(c), a)
	}
}

// Enable2 is Enable for operations over two values.
func Enable2[A, B, R any](fn func(Communicator, A, B) (R, error)) func(Communicator, A, B) (R, error) {
	return func(c Communicator, a A, b B) (R, error) {
		return fn(Resolve(c), a, b)
	}
}
