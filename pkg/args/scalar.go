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

import "github.com/opesci/gostencil/pkg/codegen"

// ScalarArgument holds a single int32-semantic kernel parameter, most
// commonly a dimension size.  When several callers supply values for the same
// argument within one resolution pass, observations are merged through the
// reducer rather than overwritten.
type ScalarArgument struct {
	name    string
	source  string
	reducer Reducer
	value   *int
	// fallback applied by Reset; nil means "unset".
	defaultValue *int
}

// NewScalarArgument constructs a scalar argument owned by the named provider.
// A nil defaultValue leaves the argument unready until verified.
func NewScalarArgument(name, source string, reducer Reducer, defaultValue *int) *ScalarArgument {
	a := &ScalarArgument{name: name, source: source, reducer: reducer}
	//
	if defaultValue != nil {
		a.defaultValue = copyInt(defaultValue)
		a.value = copyInt(defaultValue)
	}
	//
	return a
}

// Name returns the argument's identity within the kernel signature.
func (a *ScalarArgument) Name() string { return a.name }

// Source returns the identity of the owning provider.
func (a *ScalarArgument) Source() string { return a.source }

// Ready reports whether a value has been resolved.
func (a *ScalarArgument) Ready() bool { return a.value != nil }

// Value returns the resolved value, if any.
func (a *ScalarArgument) Value() (int, bool) {
	if a.value == nil {
		return 0, false
	}
	//
	return *a.value, true
}

// Verify reconciles an incoming observation with current state.  A nil value
// is a no-op which reports current readiness; otherwise the observation is
// merged with any prior value through the reducer.  Returns true iff the
// resulting value is non-null.
func (a *ScalarArgument) Verify(value *int) bool {
	if value != nil {
		if a.value != nil {
			merged := a.reducer(*a.value, *value)
			a.value = &merged
		} else {
			a.value = copyInt(value)
		}
	}
	//
	return a.value != nil
}

// Reset restores the default value.
func (a *ScalarArgument) Reset() {
	a.value = copyInt(a.defaultValue)
}

// Decl returns a constant-int declaration for this argument.
func (a *ScalarArgument) Decl() codegen.Decl {
	return codegen.ConstValue(a.name, codegen.Int32)
}

// ValueArgument carries a caller-tunable numeric constant, such as a scalar
// material parameter.  Unlike ScalarArgument there is nothing to merge: a
// supplied value replaces the current one.
type ValueArgument struct {
	name         string
	source       string
	dtype        codegen.DType
	value        *float64
	defaultValue *float64
}

// NewValueArgument constructs a constant argument with the given default.
func NewValueArgument(name, source string, dtype codegen.DType, defaultValue *float64) *ValueArgument {
	a := &ValueArgument{name: name, source: source, dtype: dtype}
	//
	if defaultValue != nil {
		a.defaultValue = copyFloat(defaultValue)
		a.value = copyFloat(defaultValue)
	}
	//
	return a
}

// Name returns the argument's identity within the kernel signature.
func (a *ValueArgument) Name() string { return a.name }

// Source returns the identity of the owning provider.
func (a *ValueArgument) Source() string { return a.source }

// Ready reports whether a value has been resolved.
func (a *ValueArgument) Ready() bool { return a.value != nil }

// Value returns the resolved value, if any.
func (a *ValueArgument) Value() (float64, bool) {
	if a.value == nil {
		return 0, false
	}
	//
	return *a.value, true
}

// Verify adopts a supplied value, or keeps the current one when nil.
func (a *ValueArgument) Verify(value *float64) bool {
	if value != nil {
		a.value = copyFloat(value)
	}
	//
	return a.value != nil
}

// Reset restores the default value.
func (a *ValueArgument) Reset() {
	a.value = copyFloat(a.defaultValue)
}

// Decl returns a constant declaration in the argument's element type.
func (a *ValueArgument) Decl() codegen.Decl {
	return codegen.ConstValue(a.name, a.dtype)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	//
	c := *v
	//
	return &c
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	//
	c := *v
	//
	return &c
}
