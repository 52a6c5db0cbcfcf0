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

import "fmt"

// UnreadyError reports an argument whose value remained unset after a
// resolution pass.
type UnreadyError struct {
	// Arg is the unresolved argument's name.
	Arg string
	// Provider identifies the owning provider.
	Provider string
}

func (e *UnreadyError) Error() string {
	return fmt.Sprintf("argument %s (provided by %s) could not be resolved", e.Arg, e.Provider)
}

// ShapeError reports a tensor whose runtime shape disagrees with its declared
// symbolic shape.
type ShapeError struct {
	// Arg is the tensor argument's name.
	Arg string
	// Expected is the declared symbolic shape.
	Expected []int
	// Actual is the shape of the supplied value.
	Actual []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("tensor %s: expected shape %v, got %v", e.Arg, e.Expected, e.Actual)
}

// ConflictError reports a value rejected by per-dimension verification, e.g.
// an extent below a fixed dimension's declared size or a parent constraint
// refusing a propagated value.
type ConflictError struct {
	// Arg is the rejected argument's name.
	Arg string
	// Provider identifies the owning provider.
	Provider string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("argument %s (provided by %s) conflicts with accumulated state", e.Arg, e.Provider)
}

// BadValueError reports a supplied value of a type the argument cannot
// accept.
type BadValueError struct {
	// Arg is the argument's name.
	Arg string
	// Value is the offending value.
	Value any
}

func (e *BadValueError) Error() string {
	return fmt.Sprintf("argument %s: unsupported value %v (%T)", e.Arg, e.Value, e.Value)
}
