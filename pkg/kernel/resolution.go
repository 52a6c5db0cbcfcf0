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
	"github.com/segmentio/encoding/json"

	"github.com/opesci/gostencil/pkg/args"
	"github.com/opesci/gostencil/pkg/codegen"
)

// Binding records one resolved argument of a successful resolution pass.
type Binding struct {
	// Name of the argument in the kernel signature.
	Name string `json:"name"`
	// Kind is "scalar", "constant" or "tensor".
	Kind string `json:"kind"`
	// Provider identifies the owning provider.
	Provider string `json:"provider"`
	// Size is the resolved value of a scalar argument.
	Size *int `json:"size,omitempty"`
	// Value is the resolved value of a constant argument.
	Value *float64 `json:"value,omitempty"`
	// Shape is the resolved shape of a tensor argument.
	Shape []int `json:"shape,omitempty"`
	// Decl is the rendered C declaration.
	Decl string `json:"decl"`
}

// Resolution is the outcome of a successful resolution pass: an ordered set
// of bindings plus the declaration seam for the low-level emitter.
type Resolution struct {
	kernel    string
	bindings  []Binding
	arguments []args.Argument
}

func newResolution(kernel string, arguments []args.Argument) *Resolution {
	bindings := make([]Binding, 0, len(arguments))
	//
	for _, a := range arguments {
		b := Binding{Name: a.Name(), Provider: a.Source(), Decl: a.Decl().String()}
		//
		switch arg := a.(type) {
		case *args.ScalarArgument:
			b.Kind = "scalar"
			//
			if v, ok := arg.Value(); ok {
				b.Size = &v
			}
		case *args.ValueArgument:
			b.Kind = "constant"
			//
			if v, ok := arg.Value(); ok {
				b.Value = &v
			}
		case *args.TensorArgument:
			b.Kind = "tensor"
			b.Shape = arg.Value().Shape()
		}
		//
		bindings = append(bindings, b)
	}
	//
	return &Resolution{kernel: kernel, bindings: bindings, arguments: arguments}
}

// Kernel returns the kernel this resolution belongs to.
func (r *Resolution) Kernel() string { return r.kernel }

// Bindings returns the resolved bindings in signature order.
func (r *Resolution) Bindings() []Binding { return r.bindings }

// Signature returns the declaration descriptors for the kernel's parameter
// list, in signature order.
func (r *Resolution) Signature() []codegen.Decl {
	out := make([]codegen.Decl, len(r.arguments))
	//
	for i, a := range r.arguments {
		out[i] = a.Decl()
	}
	//
	return out
}

// Casts returns the shaped, aligned reinterpretations of every tensor
// argument with more than one index.
func (r *Resolution) Casts() []codegen.Cast {
	var out []codegen.Cast
	//
	for _, a := range r.arguments {
		if t, ok := a.(*args.TensorArgument); ok {
			cast := t.Cast()
			//
			if len(cast.Extents) > 0 {
				out = append(out, cast)
			}
		}
	}
	//
	return out
}

// Summary renders the bindings as JSON for external tooling.
func (r *Resolution) Summary() ([]byte, error) {
	return json.MarshalIndent(struct {
		Kernel   string    `json:"kernel"`
		Bindings []Binding `json:"bindings"`
	}{r.kernel, r.bindings}, "", "  ")
}
