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
package args

import (
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/opesci/gostencil/pkg/codegen"
)

// TensorValue is any shaped runtime value that can back a tensor argument.
// The resolution engine only ever inspects the shape; element access is the
// kernel's business.
type TensorValue interface {
	Shape() []int
}

// DataCarrier is the raw-buffer capability: a symbolic object whose runtime
// value lives in a separate backing store exposes it here.  The capability is
// resolved once at verification time, so the committed value is always the
// underlying buffer.
type DataCarrier interface {
	RawData() TensorValue
}

// Index is the per-axis contract a tensor argument delegates verification to.
// Dimensions implement it.
type Index interface {
	Name() string
	// Verify reconciles an observed extent along this axis.
	Verify(value *int) bool
	// SymbolicSize is the name or literal under which this axis appears in
	// generated code.
	SymbolicSize() string
}

// Tensor describes the symbolic tensor a TensorArgument stands for: its
// declared shape, the dimensions indexing it, and its own backing store.
type Tensor interface {
	Name() string
	Shape() []int
	Indices() []Index
	Data() TensorValue
}

// TensorArgument holds a dense multi-dimensional kernel parameter.  Its
// default value is the source tensor's own backing store, so a tensor
// argument is ready before any override is supplied.
type TensorArgument struct {
	name   string
	source Tensor
	dtype  codegen.DType
	value  TensorValue
	// defaultValue is the source's own storage, captured at construction.
	defaultValue TensorValue
}

// NewTensorArgument constructs a tensor argument for the given source.
func NewTensorArgument(source Tensor, dtype codegen.DType) *TensorArgument {
	data := source.Data()
	//
	return &TensorArgument{
		name:         source.Name(),
		source:       source,
		dtype:        dtype,
		value:        data,
		defaultValue: data,
	}
}

// Name returns the argument's identity within the kernel signature.
func (a *TensorArgument) Name() string { return a.name }

// Source returns the identity of the owning provider.
func (a *TensorArgument) Source() string { return a.source.Name() }

// DType returns the element type passed through to the declaration layer.
func (a *TensorArgument) DType() codegen.DType { return a.dtype }

// Ready reports whether a value has been resolved.
func (a *TensorArgument) Ready() bool { return a.value != nil }

// Value returns the committed buffer.
func (a *TensorArgument) Value() TensorValue { return a.value }

// DeclaredShape returns the source tensor's symbolic shape.
func (a *TensorArgument) DeclaredShape() []int { return a.source.Shape() }

// Verify reconciles an incoming tensor with the declared symbolic shape.  A
// nil value re-checks the currently held one.  The shape comparison is exact;
// in addition every owning dimension verifies its corresponding extent.  The
// new value is committed only when all checks pass: partial dimension
// agreement never mutates this argument.
func (a *TensorArgument) Verify(value TensorValue) bool {
	if value == nil {
		value = a.value
	}
	//
	if value == nil {
		return false
	}
	// Resolve the raw-buffer capability once, up front.
	if carrier, ok := value.(DataCarrier); ok {
		value = carrier.RawData()
	}
	//
	declared := a.source.Shape()
	observed := value.Shape()
	//
	if !slices.Equal(declared, observed) {
		log.Debugf("tensor %s: shape mismatch, declared %v observed %v", a.name, declared, observed)
		//
		return false
	}
	//
	verified := true
	//
	for i, d := range a.source.Indices() {
		extent := observed[i]
		verified = d.Verify(&extent) && verified
	}
	//
	if !verified {
		return false
	}
	//
	a.value = value
	//
	return true
}

// Reset restores the source tensor's own backing store as the value.
func (a *TensorArgument) Reset() {
	a.value = a.defaultValue
}

// Decl returns a restrict-qualified pointer declaration named "<name>_vec".
func (a *TensorArgument) Decl() codegen.Decl {
	return codegen.VecPointer(a.name, a.dtype)
}

// Cast returns the declaration reinterpreting the flat "<name>_vec" pointer
// as a shaped, aligned array.  The leading index is excluded: it is the
// per-timestep/buffer axis handled separately by the iteration engine.
func (a *TensorArgument) Cast() codegen.Cast {
	indices := a.source.Indices()
	extents := make([]string, 0, len(indices))
	//
	for _, d := range indices[1:] {
		extents = append(extents, d.SymbolicSize())
	}
	//
	return codegen.Cast{Name: a.name, Type: a.dtype.CType(), Extents: extents}
}
