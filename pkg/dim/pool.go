// Copyright Opesci Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package dim

// Conventional dimension names.  Unlike the usual textbook presentation
// where these are process-wide singletons, every pool is freshly
// constructed: open dimensions carry resolution state, so sharing them
// between unrelated grids would leak observations across problems.

// DefaultSpace returns fresh x, y, z space dimensions, in that order.
func DefaultSpace() []*Dimension {
	return []*Dimension{
		Open("x"),
		Open("y"),
		Open("z"),
	}
}

// DefaultTime returns a fresh time dimension together with its conventional
// double-buffered view t.
func DefaultTime() (time, t *Dimension) {
	time = Open("time", WithSpacing("s"))
	t = Buffered("t", time, 2)
	//
	return time, t
}

// DefaultTimeBuffer returns time and t with a caller-chosen ring depth, used
// by time-varying fields of higher time order.
func DefaultTimeBuffer(modulo int) (time, t *Dimension) {
	time = Open("time", WithSpacing("s"))
	t = Buffered("t", time, modulo)
	//
	return time, t
}

// DefaultDerivative returns a fresh derivative-order dimension d, used when
// expanding cross-derivative stencils.
func DefaultDerivative() *Dimension {
	return Open("d")
}

// DefaultPoint returns a fresh point dimension p, indexing sparse point
// collections such as sources and receivers.
func DefaultPoint() *Dimension {
	return Open("p")
}
