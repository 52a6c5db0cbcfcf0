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

// Provider is the capability contract for symbolic entities that resolve to
// runtime arguments after code generation.  A provider's argument set is
// fixed for its lifetime: it is manufactured once and only the arguments'
// internal values mutate across invocations.  Providers never verify values
// themselves; verification always goes through the arguments they expose.
type Provider interface {
	// Name identifies the provider in diagnostics.
	Name() string
	// RuntimeArgs returns the provider's argument set.  Implementations must
	// return the same instances on every call (construct them once).
	RuntimeArgs() []Argument
	// Reset clears any resolution state the provider holds outside its
	// arguments.  Idempotent.
	Reset()
}

// Registry is a side-table from provider identity to its argument set.  It
// owns neither the providers nor their arguments: entries are dependent,
// provider-lifetime-scoped collections.  Registration order is preserved so
// kernel signatures are deterministic.
type Registry struct {
	sets  map[Provider][]Argument
	order []Provider
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[Provider][]Argument)}
}

// ArgsFor returns the memoized argument set for the given provider,
// manufacturing it on first access.
func (r *Registry) ArgsFor(p Provider) []Argument {
	if set, ok := r.sets[p]; ok {
		return set
	}
	//
	set := p.RuntimeArgs()
	r.sets[p] = set
	r.order = append(r.order, p)
	//
	return set
}

// Providers returns all registered providers in first-access order.
func (r *Registry) Providers() []Provider {
	return r.order
}

// Arguments returns every distinct registered argument in provider order.
// Arguments shared between providers (e.g. a parent dimension's size arg
// surfaced by a buffered view) appear once.
func (r *Registry) Arguments() []Argument {
	var (
		out  []Argument
		seen = make(map[Argument]bool)
	)
	//
	for _, p := range r.order {
		for _, a := range r.sets[p] {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	//
	return out
}

// Reset restores every registered provider and argument to its default
// state.  Safe to call any number of times.
func (r *Registry) Reset() {
	for _, p := range r.order {
		p.Reset()
	}
	//
	for _, a := range r.Arguments() {
		a.Reset()
	}
}
