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
package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opesci/gostencil/pkg/codegen"
	"github.com/opesci/gostencil/pkg/dim"
)

func Test_Array_01(t *testing.T) {
	a := NewArray(3, 4)
	//
	assert.Equal(t, []int{3, 4}, a.Shape())
	assert.Equal(t, []int{4, 1}, a.Strides())
	assert.Equal(t, 12, a.Len())
}

func Test_Array_02(t *testing.T) {
	a := NewArray(3, 4)
	a.Set(2.5, 1, 2)
	//
	assert.Equal(t, float32(2.5), a.At(1, 2))
	// Row-major: offset = 1*4 + 2.
	assert.Equal(t, float32(2.5), a.Values()[6])
}

func Test_Array_03(t *testing.T) {
	a := NewArray(2, 2)
	//
	assert.Panics(t, func() { a.At(2, 0) })
	assert.Panics(t, func() { a.At(0) })
	assert.Panics(t, func() { NewArray() })
	assert.Panics(t, func() { NewArray(0) })
}

func Test_Array_04(t *testing.T) {
	a := NewArray(2, 2)
	a.Set(1, 0, 0)
	a.Set(2, 0, 1)
	a.Set(3, 1, 0)
	a.Set(4, 1, 1)
	//
	p := a.PadEdges(1)
	assert.Equal(t, []int{4, 4}, p.Shape())
	// Corners replicate the nearest interior value.
	assert.Equal(t, float32(1), p.At(0, 0))
	assert.Equal(t, float32(4), p.At(3, 3))
	assert.Equal(t, float32(2), p.At(0, 3))
	// Interior is preserved.
	assert.Equal(t, float32(3), p.At(2, 1))
}

func Test_Array_05(t *testing.T) {
	a := NewArray(2)
	a.Fill(7)
	//
	p := a.PadEdges(0)
	assert.Equal(t, a.Shape(), p.Shape())
	assert.Equal(t, float32(7), p.At(1))
	// A copy, not a view.
	p.Set(0, 1)
	assert.Equal(t, float32(7), a.At(1))
}

func Test_Dense_01(t *testing.T) {
	x := dim.Open("x")
	f := NewDense("damp", []*dim.Dimension{x}, []int{40}, codegen.Float32)
	//
	assert.Equal(t, "damp", f.Name())
	assert.Equal(t, []int{40}, f.Shape())
	// The field's argument defaults to its own backing store: ready at once.
	set := f.RuntimeArgs()
	assert.Len(t, set, 1)
	assert.True(t, set[0].Ready())
	assert.Equal(t, "float *restrict damp_vec", set[0].Decl().String())
}

func Test_Dense_02(t *testing.T) {
	x := dim.Open("x")
	assert.Panics(t, func() {
		NewDense("u", []*dim.Dimension{x}, []int{40, 50}, codegen.Float32)
	})
}

func Test_TimeVarying_01(t *testing.T) {
	time, bt := dim.DefaultTime()
	x := dim.Open("x")
	//
	u := NewTimeVarying("u", bt, []*dim.Dimension{x}, []int{40}, codegen.Float32)
	// Ring storage: the leading extent is the buffering period.
	assert.Equal(t, []int{2, 40}, u.Shape())
	assert.Equal(t, bt, u.Time())
	assert.Len(t, u.Indices(), 2)
	// The cast drops the buffered leading axis.
	assert.Equal(t, []string{"x_size"}, u.Arg().Cast().Extents)
	// Verifying the field's own default resolves both axes.
	arg := u.Arg()
	assert.True(t, arg.Verify(nil))
	//
	v, ok := time.Value()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	v, ok = x.Value()
	assert.True(t, ok)
	assert.Equal(t, 40, v)
}

func Test_TimeVarying_02(t *testing.T) {
	time := dim.Open("time")
	x := dim.Open("x")
	// The leading index must be buffered.
	assert.Panics(t, func() {
		NewTimeVarying("u", time, []*dim.Dimension{x}, []int{40}, codegen.Float32)
	})
}

func Test_Sparse_01(t *testing.T) {
	time := dim.Open("time", dim.WithSpacing("s"))
	rec := NewSparse("rec", time, 500, 101, 2, codegen.Float32)
	//
	assert.Equal(t, []int{500, 101}, rec.Shape())
	assert.Equal(t, []int{101, 2}, rec.Coordinates().Shape())
	// Data and coordinates resolve as two arguments of one provider.
	set := rec.RuntimeArgs()
	assert.Len(t, set, 2)
	assert.Equal(t, "rec", set[0].Name())
	assert.Equal(t, "rec_coords", set[1].Name())
	// Verifying the defaults resolves time, point and axis dimensions.
	assert.True(t, rec.Arg().Verify(nil))
	assert.True(t, rec.Coordinates().Arg().Verify(nil))
	//
	v, ok := time.Value()
	assert.True(t, ok)
	assert.Equal(t, 500, v)
	v, ok = rec.Point().Value()
	assert.True(t, ok)
	assert.Equal(t, 101, v)
}

func Test_Sparse_02(t *testing.T) {
	_, bt := dim.DefaultTime()
	// Ring-buffered time axes cannot index saved sparse data.
	assert.Panics(t, func() {
		NewSparse("rec", bt, 500, 101, 2, codegen.Float32)
	})
}

func Test_Constant_01(t *testing.T) {
	c := NewConstant("m", 0.25, codegen.Float32)
	//
	assert.Equal(t, 0.25, c.Value())
	set := c.RuntimeArgs()
	assert.Len(t, set, 1)
	assert.True(t, set[0].Ready())
	assert.Equal(t, "const float m", set[0].Decl().String())
}
