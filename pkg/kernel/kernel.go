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

// Package kernel orchestrates argument resolution for one generated kernel.
// A kernel holds the set of providers referenced by its equations; each
// invocation supplies keyword values by argument name, and a resolution pass
// reconciles them against every argument's accumulated state.  The pass is
// synchronous and all-or-nothing: either every argument reports ready and a
// Resolution is produced, or the launch is refused with the full list of
// failures.
package kernel

import (
	"fmt"
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/opesci/gostencil/pkg/args"
)

// Kernel is the launch-side handle for a generated stencil kernel.
type Kernel struct {
	name     string
	registry *args.Registry
}

// New constructs a kernel over the given providers.  Each provider's
// argument set is materialised immediately and stays fixed for the kernel's
// lifetime.
func New(name string, providers ...args.Provider) *Kernel {
	k := &Kernel{name: name, registry: args.NewRegistry()}
	//
	for _, p := range providers {
		k.registry.ArgsFor(p)
	}
	//
	return k
}

// Name returns the kernel's name.
func (k *Kernel) Name() string { return k.name }

// Arguments returns every distinct runtime argument of this kernel, in
// provider registration order.
func (k *Kernel) Arguments() []args.Argument {
	return k.registry.Arguments()
}

// Reset clears all argument state accumulated by a previous resolution pass.
// Idempotent.
func (k *Kernel) Reset() {
	k.registry.Reset()
}

// Resolve runs one resolution pass.  kwargs maps argument names to values;
// absent or nil entries mean "use the default or derived value".  On success
// the returned Resolution describes every binding; on failure the pass
// reports all detected problems and the kernel must not be launched.
//
// State from any previous pass is cleared first, so repeated invocations
// never leak observations across calls.
func (k *Kernel) Resolve(kwargs map[string]any) (*Resolution, []error) {
	k.registry.Reset()
	//
	var errs []error
	//
	log.Debugf("kernel %s: resolving %d arguments", k.name, len(k.Arguments()))
	//
	for _, a := range k.Arguments() {
		raw, supplied := kwargs[a.Name()]
		//
		if err := k.verify(a, raw, supplied); err != nil {
			errs = append(errs, err)
		}
	}
	// Fail closed: every argument must be ready before launch.
	for _, a := range k.Arguments() {
		if !a.Ready() {
			errs = append(errs, &UnreadyError{Arg: a.Name(), Provider: a.Source()})
		}
	}
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return newResolution(k.name, k.Arguments()), nil
}

func (k *Kernel) verify(a args.Argument, raw any, supplied bool) error {
	switch arg := a.(type) {
	case *args.ScalarArgument:
		value, err := intValue(a.Name(), raw, supplied)
		if err != nil {
			return err
		}
		//
		arg.Verify(value)
		//
		return nil
	case *args.ValueArgument:
		value, err := floatValue(a.Name(), raw, supplied)
		if err != nil {
			return err
		}
		//
		arg.Verify(value)
		//
		return nil
	case *args.TensorArgument:
		value, err := tensorValue(a.Name(), raw, supplied)
		if err != nil {
			return err
		}
		//
		if arg.Verify(value) {
			return nil
		}
		// Classify the refusal for the launch report.
		if value != nil {
			if carrier, ok := value.(args.DataCarrier); ok {
				value = carrier.RawData()
			}
			//
			observed := value.Shape()
			declared := arg.DeclaredShape()
			//
			if !slices.Equal(declared, observed) {
				return &ShapeError{Arg: a.Name(), Expected: declared, Actual: observed}
			}
		}
		//
		return &ConflictError{Arg: a.Name(), Provider: a.Source()}
	default:
		// A new argument kind must be wired here before it can be launched;
		// failing loudly beats silently defaulting it.
		panic(fmt.Sprintf("kernel %s: argument %s has unsupported type %T", k.name, a.Name(), a))
	}
}

func intValue(name string, raw any, supplied bool) (*int, error) {
	if !supplied || raw == nil {
		return nil, nil
	}
	//
	switch v := raw.(type) {
	case int:
		return &v, nil
	case int32:
		i := int(v)
		return &i, nil
	case int64:
		i := int(v)
		return &i, nil
	case *int:
		return v, nil
	default:
		return nil, &BadValueError{Arg: name, Value: raw}
	}
}

func floatValue(name string, raw any, supplied bool) (*float64, error) {
	if !supplied || raw == nil {
		return nil, nil
	}
	//
	switch v := raw.(type) {
	case float64:
		return &v, nil
	case float32:
		f := float64(v)
		return &f, nil
	case int:
		f := float64(v)
		return &f, nil
	case *float64:
		return v, nil
	default:
		return nil, &BadValueError{Arg: name, Value: raw}
	}
}

func tensorValue(name string, raw any, supplied bool) (args.TensorValue, error) {
	if !supplied || raw == nil {
		return nil, nil
	}
	//
	if v, ok := raw.(args.TensorValue); ok {
		return v, nil
	}
	//
	return nil, &BadValueError{Arg: name, Value: raw}
}
