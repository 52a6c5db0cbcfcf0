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
package codegen

import (
	"fmt"
	"strings"
)

// Alignment is the byte boundary tensor casts are aligned to.
const Alignment = 64

// Decl describes one parameter of a generated kernel signature.  It is a
// structured descriptor; rendering to C happens in String so that external
// emitters can also consume the fields directly.
type Decl struct {
	// Name of the parameter as it appears in the signature.
	Name string
	// Type is the C element type (e.g. "int", "float").
	Type string
	// Const marks a value parameter as read-only.
	Const bool
	// Pointer marks the parameter as a pointer to Type.
	Pointer bool
	// Restrict adds the restrict qualifier (pointers only).
	Restrict bool
}

// ConstValue returns the declaration used for scalar arguments.
func ConstValue(name string, dtype DType) Decl {
	return Decl{Name: name, Type: dtype.CType(), Const: true}
}

// VecPointer returns the declaration used for tensor arguments: a
// restrict-qualified pointer named after the argument with a "_vec" suffix.
func VecPointer(name string, dtype DType) Decl {
	return Decl{Name: name + "_vec", Type: dtype.CType(), Pointer: true, Restrict: true}
}

func (d Decl) String() string {
	var sb strings.Builder
	//
	if d.Const {
		sb.WriteString("const ")
	}
	//
	sb.WriteString(d.Type)
	sb.WriteString(" ")
	//
	if d.Pointer {
		sb.WriteString("*")
		if d.Restrict {
			sb.WriteString("restrict ")
		}
	}
	//
	sb.WriteString(d.Name)
	//
	return sb.String()
}

// Cast describes the reinterpretation of a flat "<name>_vec" kernel pointer
// as a shaped, aligned multi-dimensional array.  Extents hold the symbolic
// sizes of every index except the leading one, which is assumed to be a
// per-timestep or buffer axis handled separately by the iteration engine.
type Cast struct {
	// Name of the tensor argument being cast.
	Name string
	// Type is the C element type.
	Type string
	// Extents are the symbolic per-axis sizes, outermost first.
	Extents []string
}

// Dims renders the bracketed extent suffix, e.g. "[x_size][y_size]".
func (c Cast) Dims() string {
	var sb strings.Builder
	for _, e := range c.Extents {
		sb.WriteString("[")
		sb.WriteString(e)
		sb.WriteString("]")
	}
	//
	return sb.String()
}

func (c Cast) String() string {
	dims := c.Dims()
	//
	return fmt.Sprintf("%s (*restrict %s)%s __attribute__((aligned(%d))) = (%s (*)%s) %s_vec;",
		c.Type, c.Name, dims, Alignment, c.Type, dims, c.Name)
}
