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

// Package dim implements the dimension resolution engine.  A Dimension
// represents one problem axis and defines a potential iteration space.  Its
// variant is fixed at construction: a dimension never reclassifies itself
// after other entities hold references to it.
//
// Open dimensions accumulate observed extents across every tensor that is
// indexed by them; observations are reconciled with a max reducer so that a
// shared axis converges on the largest declared extent.  Fixed dimensions
// treat their declared size as a floor, tolerating allocation padding.
// Buffered and lowered dimensions are derived views which never hold
// independent state.
package dim

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/opesci/gostencil/pkg/args"
)

// Kind tags the dimension variant.  Variants are mutually exclusive and
// assigned once, at construction.
type Kind uint

const (
	// KindFixed marks a dimension with a compile-time-known size.
	KindFixed Kind = iota
	// KindOpen marks a dimension whose size is unknown until resolved at
	// runtime.
	KindOpen
	// KindBuffered marks a modulo-iterated view over a parent dimension.
	KindBuffered
	// KindLowered marks a concrete resolved index derived from a buffered
	// dimension plus an integer offset.
	KindLowered
)

// Dimension is an index entity representing a problem axis.  Identity is the
// name; dimensions are shared by reference across every tensor field using
// them, which is how cross-field size agreement is achieved.
type Dimension struct {
	name string
	kind Kind
	// size is the declared static size (fixed dimensions only).
	size int
	// reverse requests traversal of the iteration space in reverse order.
	reverse bool
	// spacing is the symbol naming the grid spacing along this axis.
	spacing string
	// parent is the constraint link (open), loop target (buffered) or
	// originating buffered dimension (lowered).
	parent *Dimension
	// modulo is the buffering period (buffered dimensions only).
	modulo int
	// offset within the modulo window (lowered dimensions only).
	offset int
	// value is the resolved runtime size (open dimensions only).
	value *int
	// sizeArg is the single runtime argument an open dimension produces,
	// created once here and never recomputed.
	sizeArg *args.ScalarArgument
}

// Option customises a dimension at construction.
type Option func(*Dimension)

// WithSpacing overrides the spacing symbol (default "h_<name>").
func WithSpacing(symbol string) Option {
	return func(d *Dimension) { d.spacing = symbol }
}

// WithReverse requests reverse traversal.
func WithReverse() Option {
	return func(d *Dimension) { d.reverse = true }
}

// WithParent links an open dimension to a parent constraint.
func WithParent(parent *Dimension) Option {
	return func(d *Dimension) { d.parent = parent }
}

// Open constructs a dimension whose size is resolved at runtime.
func Open(name string, opts ...Option) *Dimension {
	d := &Dimension{name: name, kind: KindOpen, spacing: "h_" + name}
	//
	for _, opt := range opts {
		opt(d)
	}
	//
	d.sizeArg = args.NewScalarArgument(name+"_size", name, args.Max, nil)
	//
	return d
}

// Fixed constructs a dimension with a compile-time-known size.
func Fixed(name string, size int, opts ...Option) *Dimension {
	d := &Dimension{name: name, kind: KindFixed, size: size, spacing: "h_" + name}
	//
	for _, opt := range opts {
		opt(d)
	}
	//
	return d
}

// Buffered constructs a view over parent which iterates in modulo fashion,
// for ring-buffer style indexing of time-varying fields.
func Buffered(name string, parent *Dimension, modulo int) *Dimension {
	if parent == nil {
		panic(fmt.Sprintf("buffered dimension %s requires a parent", name))
	}
	//
	return &Dimension{name: name, kind: KindBuffered, parent: parent, modulo: modulo}
}

// Lowered constructs the concrete index produced when resolving a buffered
// dimension at a given offset within the modulo window.
func Lowered(name string, buffered *Dimension, offset int) *Dimension {
	if buffered == nil || buffered.kind != KindBuffered {
		panic(fmt.Sprintf("lowered dimension %s requires a buffered origin", name))
	}
	//
	return &Dimension{name: name, kind: KindLowered, parent: buffered, offset: offset}
}

// Name returns the dimension's identity.
func (d *Dimension) Name() string { return d.name }

// Kind returns the variant tag.
func (d *Dimension) Kind() Kind { return d.kind }

// Modulo returns the buffering period of a buffered dimension.
func (d *Dimension) Modulo() int { return d.modulo }

// Offset returns the modulo-window offset of a lowered dimension.
func (d *Dimension) Offset() int { return d.offset }

// Parent returns the constraint link or view target, if any.
func (d *Dimension) Parent() *Dimension { return d.parent }

// Reverse reports whether the iteration space is traversed in reverse.
// Derived views defer to their ancestor.
func (d *Dimension) Reverse() bool {
	if d.kind == KindBuffered || d.kind == KindLowered {
		return d.parent.Reverse()
	}
	//
	return d.reverse
}

// Spacing returns the grid spacing symbol for this axis, deferring to the
// ancestor for derived views.
func (d *Dimension) Spacing() string {
	if d.kind == KindBuffered || d.kind == KindLowered {
		return d.parent.Spacing()
	}
	//
	return d.spacing
}

// Size returns the declared static size, if any.  Open dimensions have none;
// derived views defer to their ancestor.
func (d *Dimension) Size() (int, bool) {
	switch d.kind {
	case KindFixed:
		return d.size, true
	case KindBuffered, KindLowered:
		return d.parent.Size()
	default:
		return 0, false
	}
}

// Value returns the currently resolved runtime size, if any.  For fixed
// dimensions this is the declared size; derived views defer to their
// ancestor.
func (d *Dimension) Value() (int, bool) {
	switch d.kind {
	case KindFixed:
		return d.size, true
	case KindBuffered, KindLowered:
		return d.parent.Value()
	default:
		if d.value == nil {
			return 0, false
		}
		//
		return *d.value, true
	}
}

// Origin renders the index expression of a lowered dimension: the buffered
// dimension's position plus the offset.
func (d *Dimension) Origin() string {
	if d.kind != KindLowered {
		panic(fmt.Sprintf("dimension %s has no origin", d.name))
	}
	//
	if d.offset == 0 {
		return d.parent.name
	}
	//
	return fmt.Sprintf("%s + %d", d.parent.name, d.offset)
}

// SymbolicSize is the name or literal under which this axis appears in
// generated code: the literal size when fixed, otherwise the size argument's
// name.
func (d *Dimension) SymbolicSize() string {
	if size, ok := d.Size(); ok {
		return strconv.Itoa(size)
	}
	//
	if d.kind == KindBuffered || d.kind == KindLowered {
		return d.parent.SymbolicSize()
	}
	//
	return d.name + "_size"
}

// Verify reconciles an observed extent with this dimension's state.
//
// Fixed dimensions accept any extent at least as large as their declared
// size: the size is a floor, not an exact match, so that padded allocations
// remain valid.  Open dimensions merge the observation with any held value
// through the max reducer, propagate the merged value to their parent
// constraint (adopting the parent's resolved value when they have none), and
// commit locally only once every step has succeeded.  A nil observation when
// a value is already held is a no-op reporting success.
func (d *Dimension) Verify(value *int) bool {
	switch d.kind {
	case KindBuffered, KindLowered:
		// Derived views never hold independent state.
		return d.parent.Verify(value)
	case KindFixed:
		if value == nil {
			return true
		}
		//
		if *value < d.size {
			log.Debugf("dimension %s: extent %d below declared size %d", d.name, *value, d.size)
			//
			return false
		}
		//
		return true
	}
	// Open dimension.
	if value == nil && d.value != nil {
		return true
	}
	//
	if value != nil && d.value != nil && *value == *d.value {
		return true
	}
	//
	var merged *int
	//
	switch {
	case value != nil && d.value != nil:
		m := args.Max(*d.value, *value)
		merged = &m
	case value != nil:
		m := *value
		merged = &m
	}
	// Propagate to the constraint link before committing anything locally.
	if d.parent != nil {
		if !d.parent.Verify(merged) {
			return false
		}
		// Without a local observation, adopt the parent's resolved value.
		if merged == nil {
			if pv, ok := d.parent.Value(); ok {
				m := pv
				merged = &m
			}
		}
	}
	//
	if !d.sizeArg.Verify(merged) {
		return false
	}
	//
	d.value = merged
	//
	return true
}

// SizeArg returns the runtime size argument of an open dimension, or nil.
func (d *Dimension) SizeArg() *args.ScalarArgument { return d.sizeArg }

// RuntimeArgs surfaces the runtime arguments this dimension requires.  Fixed
// dimensions need none; derived views surface their ancestor's.
func (d *Dimension) RuntimeArgs() []args.Argument {
	switch d.kind {
	case KindOpen:
		return []args.Argument{d.sizeArg}
	case KindBuffered, KindLowered:
		return d.parent.RuntimeArgs()
	default:
		return nil
	}
}

// Reset clears the resolved runtime value, restoring the dimension to its
// unresolved state.  Idempotent; derived views defer to their ancestor.
func (d *Dimension) Reset() {
	switch d.kind {
	case KindOpen:
		d.value = nil
		d.sizeArg.Reset()
	case KindBuffered, KindLowered:
		d.parent.Reset()
	}
}

func (d *Dimension) String() string { return d.name }
