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
package kernel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opesci/gostencil/pkg/codegen"
	"github.com/opesci/gostencil/pkg/data"
	"github.com/opesci/gostencil/pkg/dim"
)

func Test_Kernel_01(t *testing.T) {
	// A dimension shared by two tensors of different declared extents
	// resolves to the larger one.
	x := dim.Open("x")
	a := data.NewDense("a", []*dim.Dimension{x}, []int{40}, codegen.Float32)
	b := data.NewDense("b", []*dim.Dimension{x}, []int{50}, codegen.Float32)
	//
	k := New("axpy", a, b, x)
	//
	res, errs := k.Resolve(nil)
	assert.Empty(t, errs)
	assert.NotNil(t, res)
	//
	v, ok := x.Value()
	assert.True(t, ok)
	assert.Equal(t, 50, v)
	// Both tensors report ready.
	for _, arg := range k.Arguments() {
		assert.True(t, arg.Ready())
	}
}

func Test_Kernel_02(t *testing.T) {
	// An open dimension with no tensors and no keyword value stays
	// unresolved: the launch is refused.
	x := dim.Open("x")
	k := New("empty", x)
	//
	res, errs := k.Resolve(nil)
	assert.Nil(t, res)
	assert.Len(t, errs, 1)
	//
	unready, ok := errs[0].(*UnreadyError)
	assert.True(t, ok)
	assert.Equal(t, "x_size", unready.Arg)
	assert.Equal(t, "x", unready.Provider)
}

func Test_Kernel_03(t *testing.T) {
	// Keyword values merge with tensor observations through the reducer.
	x := dim.Open("x")
	a := data.NewDense("a", []*dim.Dimension{x}, []int{40}, codegen.Float32)
	//
	k := New("fwd", a, x)
	//
	_, errs := k.Resolve(map[string]any{"x_size": 120})
	assert.Empty(t, errs)
	//
	arg := x.SizeArg()
	v, _ := arg.Value()
	assert.Equal(t, 120, v)
}

func Test_Kernel_04(t *testing.T) {
	// Resolution state never leaks across invocations.
	x := dim.Open("x")
	k := New("fwd", x)
	//
	_, errs := k.Resolve(map[string]any{"x_size": 100})
	assert.Empty(t, errs)
	//
	_, errs = k.Resolve(nil)
	assert.Len(t, errs, 1)
	assert.IsType(t, &UnreadyError{}, errs[0])
}

func Test_Kernel_05(t *testing.T) {
	// A runtime tensor smaller than a fixed dimension violates the floor.
	x := dim.Fixed("x", 10)
	a := data.NewDense("a", []*dim.Dimension{x}, []int{8}, codegen.Float32)
	//
	k := New("fwd", a, x)
	//
	res, errs := k.Resolve(nil)
	assert.Nil(t, res)
	assert.NotEmpty(t, errs)
	assert.IsType(t, &ConflictError{}, errs[0])
	// Padded allocations clear the floor.
	x2 := dim.Fixed("x", 10)
	b := data.NewDense("b", []*dim.Dimension{x2}, []int{12}, codegen.Float32)
	//
	_, errs = New("fwd", b, x2).Resolve(nil)
	assert.Empty(t, errs)
}

func Test_Kernel_06(t *testing.T) {
	// A supplied tensor of the wrong shape is rejected with both shapes.
	x := dim.Open("x")
	a := data.NewDense("a", []*dim.Dimension{x}, []int{40}, codegen.Float32)
	//
	k := New("fwd", a, x)
	//
	res, errs := k.Resolve(map[string]any{"a": data.NewArray(50)})
	assert.Nil(t, res)
	assert.NotEmpty(t, errs)
	//
	shape, ok := errs[0].(*ShapeError)
	assert.True(t, ok)
	assert.Equal(t, []int{40}, shape.Expected)
	assert.Equal(t, []int{50}, shape.Actual)
}

func Test_Kernel_07(t *testing.T) {
	// A field supplied as a value commits its raw backing store.
	x := dim.Open("x")
	a := data.NewDense("a", []*dim.Dimension{x}, []int{40}, codegen.Float32)
	override := data.NewDense("a2", []*dim.Dimension{x}, []int{40}, codegen.Float32)
	//
	k := New("fwd", a, x)
	//
	_, errs := k.Resolve(map[string]any{"a": override})
	assert.Empty(t, errs)
	assert.Equal(t, override.Array(), a.Arg().Value())
}

func Test_Kernel_08(t *testing.T) {
	// Unsupported value types fail closed.
	x := dim.Open("x")
	k := New("fwd", x)
	//
	_, errs := k.Resolve(map[string]any{"x_size": "wide"})
	assert.NotEmpty(t, errs)
	assert.IsType(t, &BadValueError{}, errs[0])
}

func Test_Kernel_09(t *testing.T) {
	// Ring-buffered wavefield over a shared time dimension: the buffer
	// depth and the keyword timestep count reconcile through max.
	time, bt := dim.DefaultTime()
	x := dim.Open("x")
	u := data.NewTimeVarying("u", bt, []*dim.Dimension{x}, []int{40}, codegen.Float32)
	//
	k := New("fwd", u, time, x)
	//
	_, errs := k.Resolve(map[string]any{"time_size": 500})
	assert.Empty(t, errs)
	//
	v, ok := time.Value()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	// The size argument carries the merged timestep count.
	sz, _ := time.SizeArg().Value()
	assert.Equal(t, 500, sz)
}

func Test_Resolution_01(t *testing.T) {
	x := dim.Open("x")
	y := dim.Open("y")
	u := data.NewDense("u", []*dim.Dimension{x, y}, []int{40, 30}, codegen.Float32)
	//
	k := New("fwd", u, x, y)
	//
	res, errs := k.Resolve(nil)
	assert.Empty(t, errs)
	//
	decls := res.Signature()
	assert.Len(t, decls, 3)
	assert.Equal(t, "float *restrict u_vec", decls[0].String())
	assert.Equal(t, "const int x_size", decls[1].String())
	assert.Equal(t, "const int y_size", decls[2].String())
	// One cast, dropping the leading axis.
	casts := res.Casts()
	assert.Len(t, casts, 1)
	assert.Equal(t, []string{"y_size"}, casts[0].Extents)
}

func Test_Resolution_02(t *testing.T) {
	x := dim.Open("x")
	a := data.NewDense("a", []*dim.Dimension{x}, []int{40}, codegen.Float32)
	//
	res, errs := New("fwd", a, x).Resolve(nil)
	assert.Empty(t, errs)
	//
	bytes, err := res.Summary()
	assert.NoError(t, err)
	//
	summary := string(bytes)
	assert.True(t, strings.Contains(summary, `"kernel": "fwd"`))
	assert.True(t, strings.Contains(summary, `"x_size"`))
	assert.True(t, strings.Contains(summary, `"shape"`))
}

func Test_Resolution_03(t *testing.T) {
	x := dim.Open("x")
	a := data.NewDense("a", []*dim.Dimension{x}, []int{40}, codegen.Float32)
	//
	res, errs := New("fwd", a, x).Resolve(nil)
	assert.Empty(t, errs)
	//
	bindings := res.Bindings()
	assert.Len(t, bindings, 2)
	assert.Equal(t, "tensor", bindings[0].Kind)
	assert.Equal(t, []int{40}, bindings[0].Shape)
	assert.Equal(t, "scalar", bindings[1].Kind)
	assert.Equal(t, 40, *bindings[1].Size)
}
