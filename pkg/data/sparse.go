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

// Sparse is a collection of off-grid points, such as seismic sources or
// receivers.  Its data varies over the full saved time axis and a point
// index; the physical position of every point lives in a companion
// coordinates field indexed by the point and a per-axis dimension.
type Sparse struct {
	Dense
	point  *dim.Dimension
	coords *Dense
}

// NewSparse allocates a sparse field of npoint points over ntime saved
// timesteps in an ndim-dimensional domain.  The time index must be an open
// dimension: sparse data is saved per timestep, never ring-buffered.
func NewSparse(name string, time *dim.Dimension, ntime, npoint, ndim int, dtype codegen.DType) *Sparse {
	if time.Kind() != dim.KindOpen {
		panic(fmt.Sprintf("field %s: time index %s must be open", name, time.Name()))
	}
	//
	p := dim.DefaultPoint()
	d := dim.DefaultDerivative()
	//
	f := &Sparse{
		point:  p,
		coords: NewDense(name+"_coords", []*dim.Dimension{p, d}, []int{npoint, ndim}, dtype),
	}
	f.Dense = Dense{
		name:    name,
		dtype:   dtype,
		indices: []*dim.Dimension{time, p},
		array:   NewArray(ntime, npoint),
	}
	f.arg = args.NewTensorArgument(f, dtype)
	//
	return f
}

// Point returns the point dimension indexing this collection.
func (f *Sparse) Point() *dim.Dimension { return f.point }

// Coordinates returns the companion coordinates field, shaped
// (npoint, ndim).
func (f *Sparse) Coordinates() *Dense { return f.coords }

// RuntimeArgs surfaces the data argument together with the coordinates
// argument; a sparse field cannot be interpolated without its positions.
func (f *Sparse) RuntimeArgs() []args.Argument {
	return []args.Argument{f.arg, f.coords.arg}
}
