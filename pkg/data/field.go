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
	"fmt"

	"github.com/opesci/gostencil/pkg/args"
	"github.com/opesci/gostencil/pkg/codegen"
	"github.com/opesci/gostencil/pkg/dim"
)

// Dense is a space-varying tensor field over a set of grid dimensions.  It
// is a symbolic entity: kernels reference it by name, and at invocation time
// its tensor argument resolves to the field's own backing array unless a
// caller supplies an override.
type Dense struct {
	name    string
	dtype   codegen.DType
	indices []*dim.Dimension
	array   *Array
	// arg is this field's single runtime argument, created once here.
	arg *args.TensorArgument
}

// NewDense allocates a dense field of the given shape, indexed by the given
// dimensions (one per axis).
func NewDense(name string, indices []*dim.Dimension, shape []int, dtype codegen.DType) *Dense {
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("field %s: %d dimensions for shape %v", name, len(indices), shape))
	}
	//
	f := &Dense{
		name:    name,
		dtype:   dtype,
		indices: indices,
		array:   NewArray(shape...),
	}
	f.arg = args.NewTensorArgument(f, dtype)
	//
	return f
}

// Name returns the field's symbolic name.
func (f *Dense) Name() string { return f.name }

// DType returns the element type tag.
func (f *Dense) DType() codegen.DType { return f.dtype }

// Shape returns the declared extents.
func (f *Dense) Shape() []int { return f.array.Shape() }

// Indices returns the dimensions indexing this field, one per axis.
func (f *Dense) Indices() []args.Index {
	out := make([]args.Index, len(f.indices))
	//
	for i, d := range f.indices {
		out[i] = d
	}
	//
	return out
}

// Dimensions returns the concrete dimension entities indexing this field.
func (f *Dense) Dimensions() []*dim.Dimension { return f.indices }

// Data returns the field's own backing store.
func (f *Dense) Data() args.TensorValue { return f.array }

// RawData exposes the raw-buffer capability: assigning a field as a tensor
// value commits its backing array.
func (f *Dense) RawData() args.TensorValue { return f.array }

// Array returns the backing array for initialisation.
func (f *Dense) Array() *Array { return f.array }

// Arg returns the field's tensor argument.
func (f *Dense) Arg() *args.TensorArgument { return f.arg }

// RuntimeArgs surfaces the field's single tensor argument.  The size
// arguments of its dimensions belong to the dimensions themselves, which
// register as providers in their own right.
func (f *Dense) RuntimeArgs() []args.Argument {
	return []args.Argument{f.arg}
}

// Reset is required by the provider contract; dense fields keep no
// resolution state outside their argument.
func (f *Dense) Reset() {}

// TimeVarying is a dense field whose leading axis is a buffered time
// dimension: storage along that axis is a ring of depth equal to the
// buffering period.
type TimeVarying struct {
	Dense
	time *dim.Dimension
}

// NewTimeVarying allocates a time-varying field.  The leading index must be
// a buffered dimension; the ring depth is its modulo period.  Space indices
// and extents follow.
func NewTimeVarying(name string, t *dim.Dimension, space []*dim.Dimension,
	shape []int, dtype codegen.DType) *TimeVarying {
	if t.Kind() != dim.KindBuffered {
		panic(fmt.Sprintf("field %s: leading index %s must be buffered", name, t.Name()))
	}
	//
	indices := append([]*dim.Dimension{t}, space...)
	full := append([]int{t.Modulo()}, shape...)
	//
	f := &TimeVarying{time: t}
	f.Dense = Dense{
		name:    name,
		dtype:   dtype,
		indices: indices,
		array:   NewArray(full...),
	}
	f.arg = args.NewTensorArgument(f, dtype)
	//
	return f
}

// Time returns the buffered leading dimension.
func (f *TimeVarying) Time() *dim.Dimension { return f.time }

// Constant is a scalar-valued symbolic parameter, e.g. a homogeneous
// material property.  It resolves to a single constant argument.
type Constant struct {
	name  string
	dtype codegen.DType
	arg   *args.ValueArgument
}

// NewConstant constructs a constant with the given default value.
func NewConstant(name string, value float64, dtype codegen.DType) *Constant {
	return &Constant{
		name:  name,
		dtype: dtype,
		arg:   args.NewValueArgument(name, name, dtype, &value),
	}
}

// Name returns the constant's symbolic name.
func (c *Constant) Name() string { return c.name }

// DType returns the element type tag.
func (c *Constant) DType() codegen.DType { return c.dtype }

// Value returns the current resolved value.
func (c *Constant) Value() float64 {
	v, _ := c.arg.Value()
	//
	return v
}

// Arg returns the constant's runtime argument.
func (c *Constant) Arg() *args.ValueArgument { return c.arg }

// RuntimeArgs surfaces the constant's single argument.
func (c *Constant) RuntimeArgs() []args.Argument {
	return []args.Argument{c.arg}
}

// Reset is required by the provider contract; constants keep no resolution
// state outside their argument.
func (c *Constant) Reset() {}
