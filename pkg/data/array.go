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

// Package data provides the tensor-backed symbolic fields consumed by the
// argument resolution engine: dense space-varying fields, ring-buffered
// time-varying fields, and scalar constants.  Fields are providers of runtime
// arguments; their backing arrays are the arguments' default values.
package data

import "fmt"

// Array is a flat, contiguous, row-major float32 buffer with a logical
// multi-dimensional shape.  It is the concrete runtime value tensor
// arguments resolve to.
type Array struct {
	shape   []int
	strides []int
	values  []float32
}

// NewArray allocates a zeroed array of the given shape.
func NewArray(shape ...int) *Array {
	if len(shape) == 0 {
		panic("array requires at least one dimension")
	}
	//
	size := 1
	//
	for _, n := range shape {
		if n <= 0 {
			panic(fmt.Sprintf("invalid array extent %d", n))
		}
		//
		size *= n
	}
	// Row-major strides, innermost axis contiguous.
	strides := make([]int, len(shape))
	stride := 1
	//
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	//
	return &Array{
		shape:   append([]int(nil), shape...),
		strides: strides,
		values:  make([]float32, size),
	}
}

// Shape returns the logical extents of this array.
func (a *Array) Shape() []int { return a.shape }

// Strides returns the row-major element strides.
func (a *Array) Strides() []int { return a.strides }

// Len returns the total number of elements.
func (a *Array) Len() int { return len(a.values) }

// Values exposes the flat backing slice.
func (a *Array) Values() []float32 { return a.values }

// At reads the element at the given multi-index.
func (a *Array) At(index ...int) float32 {
	return a.values[a.offset(index)]
}

// Set writes the element at the given multi-index.
func (a *Array) Set(value float32, index ...int) {
	a.values[a.offset(index)] = value
}

// Fill assigns value to every element.
func (a *Array) Fill(value float32) {
	for i := range a.values {
		a.values[i] = value
	}
}

func (a *Array) offset(index []int) int {
	if len(index) != len(a.shape) {
		panic(fmt.Sprintf("rank mismatch: %d indices for shape %v", len(index), a.shape))
	}
	//
	offset := 0
	//
	for i, idx := range index {
		if idx < 0 || idx >= a.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for axis %d (extent %d)", idx, i, a.shape[i]))
		}
		//
		offset += idx * a.strides[i]
	}
	//
	return offset
}

// PadEdges returns a copy of this array grown by layers points on every side
// of every axis, with the boundary filled by replicating the nearest interior
// value.  Used to embed physical parameter fields into the damped
// computational domain.
func (a *Array) PadEdges(layers int) *Array {
	if layers < 0 {
		panic(fmt.Sprintf("invalid padding %d", layers))
	}
	//
	if layers == 0 {
		out := NewArray(a.shape...)
		copy(out.values, a.values)
		//
		return out
	}
	//
	shape := make([]int, len(a.shape))
	//
	for i, n := range a.shape {
		shape[i] = n + 2*layers
	}
	//
	out := NewArray(shape...)
	index := make([]int, len(shape))
	src := make([]int, len(shape))
	//
	for i := 0; i < out.Len(); i++ {
		for axis := range index {
			s := index[axis] - layers
			//
			if s < 0 {
				s = 0
			} else if s >= a.shape[axis] {
				s = a.shape[axis] - 1
			}
			//
			src[axis] = s
		}
		//
		out.values[i] = a.At(src...)
		increment(index, shape)
	}
	//
	return out
}

// increment advances a row-major multi-index by one position.
func increment(index, shape []int) {
	for axis := len(index) - 1; axis >= 0; axis-- {
		index[axis]++
		//
		if index[axis] < shape[axis] {
			return
		}
		//
		index[axis] = 0
	}
}
