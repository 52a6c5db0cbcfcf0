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

import "fmt"

// DType identifies the element type of a runtime value as seen by generated
// kernel code.  Scalar size arguments are always Int32; tensor element types
// are caller-supplied and passed through to the declaration layer unmodified.
type DType uint

const (
	// Int32 is a 4-byte signed integer.
	Int32 DType = iota
	// Float32 is a single-precision float.
	Float32
	// Float64 is a double-precision float.
	Float64
)

// CType returns the C spelling of this element type.
func (t DType) CType() string {
	switch t {
	case Int32:
		return "int"
	case Float32:
		return "float"
	case Float64:
		return "double"
	default:
		panic(fmt.Sprintf("unknown dtype (%d)", t))
	}
}

func (t DType) String() string {
	switch t {
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("dtype(%d)", t)
	}
}

// ParseDType maps a textual dtype name (as found in model description files)
// to its tag.
func ParseDType(name string) (DType, error) {
	switch name {
	case "int32":
		return Int32, nil
	case "float32", "":
		return Float32, nil
	case "float64":
		return Float64, nil
	default:
		return 0, fmt.Errorf("unknown dtype %q", name)
	}
}
