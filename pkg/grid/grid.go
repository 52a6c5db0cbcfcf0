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

// Package grid describes the physical cartesian domain over which fields are
// discretised.  Constructing a grid is what brings the axis dimensions into
// existence; every field built over the grid shares them by reference, which
// is how the resolution engine reconciles extents across fields.
package grid

import (
	"fmt"

	"github.com/opesci/gostencil/pkg/dim"
)

// Grid is a cartesian grid composed of a shape in grid points, a physical
// extent, an origin, and one dimension entity per axis.
type Grid struct {
	shape  []int
	extent []float64
	origin []float64
	dims   []*dim.Dimension
}

// Option customises grid construction.
type Option func(*Grid)

// WithExtent sets the physical extent per axis.  Default is a unit box.
func WithExtent(extent ...float64) Option {
	return func(g *Grid) { g.extent = extent }
}

// WithOrigin sets the physical coordinate of the domain origin.  Default is
// zero on every axis.
func WithOrigin(origin ...float64) Option {
	return func(g *Grid) { g.origin = origin }
}

// WithDimensions supplies the axis dimensions explicitly.  At least
// len(shape) dimensions must be given; the pool is sliced to the problem
// rank.  Default is a fresh x, y, z pool, so unrelated grids never share
// resolution state.
func WithDimensions(dims ...*dim.Dimension) Option {
	return func(g *Grid) { g.dims = dims }
}

// New constructs a grid over the given shape.
func New(shape []int, opts ...Option) (*Grid, error) {
	if len(shape) == 0 || len(shape) > 3 {
		return nil, fmt.Errorf("unsupported grid rank %d", len(shape))
	}
	//
	g := &Grid{shape: append([]int(nil), shape...)}
	//
	for _, opt := range opts {
		opt(g)
	}
	//
	if g.extent == nil {
		g.extent = ones(len(shape))
	}
	//
	if g.origin == nil {
		g.origin = make([]float64, len(shape))
	}
	//
	if g.dims == nil {
		g.dims = dim.DefaultSpace()
	}
	//
	if len(g.extent) != len(shape) || len(g.origin) != len(shape) {
		return nil, fmt.Errorf("grid shape %v, extent %v and origin %v must agree in rank",
			shape, g.extent, g.origin)
	}
	//
	if len(g.dims) < len(shape) {
		return nil, fmt.Errorf("grid requires %d dimensions, got %d", len(shape), len(g.dims))
	}
	// Slice the dimension pool down to the problem rank.
	g.dims = g.dims[:len(shape)]
	//
	return g, nil
}

// Dim returns the problem rank (number of spatial dimensions).
func (g *Grid) Dim() int { return len(g.shape) }

// Shape returns the domain shape in grid points.
func (g *Grid) Shape() []int { return g.shape }

// Extent returns the physical extent per axis.
func (g *Grid) Extent() []float64 { return g.extent }

// Origin returns the physical coordinate of the domain origin.
func (g *Grid) Origin() []float64 { return g.origin }

// Dimensions returns the axis dimensions, one per axis.
func (g *Grid) Dimensions() []*dim.Dimension { return g.dims }

// Spacing returns the distance between grid points per axis.
func (g *Grid) Spacing() []float64 {
	spacing := make([]float64, len(g.shape))
	//
	for i := range g.shape {
		spacing[i] = g.extent[i] / float64(g.shape[i])
	}
	//
	return spacing
}

func ones(n int) []float64 {
	out := make([]float64, n)
	//
	for i := range out {
		out[i] = 1.0
	}
	//
	return out
}
