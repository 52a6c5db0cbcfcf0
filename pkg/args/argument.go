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

// Package args provides placeholders for the runtime arguments of generated
// stencil kernels.  Symbolic entities (dimensions, scalar parameters, tensor
// fields) surface one or more Argument values through the Provider contract;
// at kernel-invocation time each Argument reconciles supplied values with its
// accumulated state, derives defaults where possible, and reports readiness.
// Value reconciliation lives entirely here, regardless of provider kind.
package args

import "github.com/opesci/gostencil/pkg/codegen"

// Argument is a placeholder for a single resolved quantity passed to a
// generated kernel.  Its value is only ever set through the concrete type's
// Verify method, and cleared by Reset; it is never mutated directly.
type Argument interface {
	// Name returns the process-unique identity of this argument within its
	// kernel signature.
	Name() string
	// Source returns the identity of the provider this argument belongs to.
	// This is a non-owning back-reference: the argument never manages its
	// provider's lifetime.
	Source() string
	// Ready reports whether a value has been resolved.
	Ready() bool
	// Reset restores the default value, discarding any binding from the
	// previous kernel call.  Reset is idempotent.
	Reset()
	// Decl returns the structured declaration descriptor for this argument.
	Decl() codegen.Decl
}

// Reducer merges two observations of the same scalar argument within one
// resolution pass.  Reducers must be binary, associative and commutative.
type Reducer func(a, b int) int

// Max is the reducer used for dimension sizes: a shared dimension always
// grows to the largest observed extent, never shrinks.
func Max(a, b int) int {
	if a > b {
		return a
	}
	//
	return b
}
