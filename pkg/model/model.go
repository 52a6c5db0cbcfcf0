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

// Package model composes the physical description used in seismic inversion
// from grid dimensions and numeric parameter fields.  It is the principal
// consumer of the argument resolution engine: its derived fields live on the
// PML-padded computational domain while sharing axis dimensions with
// interior-shaped data, which exercises the engine's max-reduction across
// disagreeing extents.
package model

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/opesci/gostencil/pkg/args"
	"github.com/opesci/gostencil/pkg/codegen"
	"github.com/opesci/gostencil/pkg/data"
	"github.com/opesci/gostencil/pkg/grid"
)

// Model is the physical model: velocity, absorbing boundary, and optional
// anisotropy parameters, discretised over a grid.  It provides the symbolic
// fields wave propagation kernels are written against, chiefly the square
// slowness m and the damping field damp.
type Model struct {
	grid    *grid.Grid
	spacing []float64
	nbpml   int
	dtype   codegen.DType

	// vp is the dense velocity in km/s; nil when the model is homogeneous.
	vp       *data.Array
	vpScalar float64

	// m is the square slowness 1/vp^2, dense over the padded domain, or a
	// constant when the model is homogeneous.
	m      *data.Dense
	mConst *data.Constant
	// damp is the PML damping profile over the padded domain.
	damp *data.Dense

	// Optional Thomsen anisotropy parameter fields, padded.
	epsilon *data.Dense
	delta   *data.Dense
	theta   *data.Dense
	phi     *data.Dense

	// scale bounds the effective maximum velocity under anisotropy.
	scale float64
}

// Option customises model construction.
type Option func(*config)

type config struct {
	dtype   codegen.DType
	epsilon *data.Array
	delta   *data.Array
	theta   *data.Array
	phi     *data.Array
}

// WithDType overrides the element type of the model's fields (default
// float32).
func WithDType(dtype codegen.DType) Option {
	return func(c *config) { c.dtype = dtype }
}

// WithEpsilon supplies the Thomsen epsilon parameter over the interior shape.
func WithEpsilon(a *data.Array) Option { return func(c *config) { c.epsilon = a } }

// WithDelta supplies the Thomsen delta parameter over the interior shape.
func WithDelta(a *data.Array) Option { return func(c *config) { c.delta = a } }

// WithTheta supplies the tilt angle over the interior shape.
func WithTheta(a *data.Array) Option { return func(c *config) { c.theta = a } }

// WithPhi supplies the azimuth angle over the interior shape.
func WithPhi(a *data.Array) Option { return func(c *config) { c.phi = a } }

// New constructs a model with a dense velocity field.  vp has the interior
// shape; derived fields are allocated over the nbpml-padded domain.
func New(shape []int, spacing, origin []float64, vp *data.Array, nbpml int, opts ...Option) (*Model, error) {
	m, err := newModel(shape, spacing, origin, nbpml, opts)
	if err != nil {
		return nil, err
	}
	//
	if err := m.SetVp(vp); err != nil {
		return nil, err
	}
	//
	m.initDamp()
	m.initThomsen(opts)
	//
	return m, nil
}

// NewConstant constructs a homogeneous model with a scalar velocity.
func NewConstant(shape []int, spacing, origin []float64, vp float64, nbpml int, opts ...Option) (*Model, error) {
	m, err := newModel(shape, spacing, origin, nbpml, opts)
	if err != nil {
		return nil, err
	}
	//
	m.vpScalar = vp
	m.mConst = data.NewConstant("m", 1/(vp*vp), m.dtype)
	//
	m.initDamp()
	m.initThomsen(opts)
	//
	return m, nil
}

func newModel(shape []int, spacing, origin []float64, nbpml int, opts []Option) (*Model, error) {
	if len(spacing) != len(shape) || len(origin) != len(shape) {
		return nil, fmt.Errorf("model shape %v, spacing %v and origin %v must agree in rank",
			shape, spacing, origin)
	}
	//
	if nbpml < 0 {
		return nil, fmt.Errorf("invalid boundary layer count %d", nbpml)
	}
	//
	cfg := config{dtype: codegen.Float32}
	//
	for _, opt := range opts {
		opt(&cfg)
	}
	// Physical extent follows from spacing, so the grid's derived spacing
	// agrees with what the caller supplied.
	extent := make([]float64, len(shape))
	//
	for i := range shape {
		extent[i] = spacing[i] * float64(shape[i])
	}
	//
	g, err := grid.New(shape, grid.WithExtent(extent...), grid.WithOrigin(origin...))
	if err != nil {
		return nil, err
	}
	//
	log.Debugf("model: grid %v, %d boundary layers, domain %v", shape, nbpml, domainShape(shape, nbpml))
	//
	return &Model{
		grid:    g,
		spacing: append([]float64(nil), spacing...),
		nbpml:   nbpml,
		dtype:   cfg.dtype,
		scale:   1.0,
	}, nil
}

// SetVp installs a dense velocity field and (re)derives the square slowness
// over the padded domain.
func (m *Model) SetVp(vp *data.Array) error {
	shape := m.grid.Shape()
	//
	if !equalInts(vp.Shape(), shape) {
		return fmt.Errorf("velocity shape %v does not match model shape %v", vp.Shape(), shape)
	}
	//
	m.vp = vp
	//
	if m.m == nil {
		m.m = data.NewDense("m", m.grid.Dimensions(), m.DomainShape(), m.dtype)
	}
	//
	padded := vp.PadEdges(m.nbpml)
	values := m.m.Array().Values()
	//
	for i, v := range padded.Values() {
		values[i] = 1 / (v * v)
	}
	//
	return nil
}

func (m *Model) initDamp() {
	m.damp = data.NewDense("damp", m.grid.Dimensions(), m.DomainShape(), m.dtype)
	dampBoundary(m.damp.Array(), m.nbpml, m.spacing)
}

func (m *Model) initThomsen(opts []Option) {
	cfg := config{dtype: m.dtype}
	//
	for _, opt := range opts {
		opt(&cfg)
	}
	//
	if cfg.epsilon != nil {
		m.epsilon = m.paddedField("epsilon", cfg.epsilon, func(v float32) float32 { return 1 + 2*v })
		// Maximum velocity is scale*max(vp) when epsilon > 0.
		if mx := maxValue(m.epsilon.Array()); mx > 0 {
			m.scale = math.Sqrt(float64(mx))
		}
	}
	//
	if cfg.delta != nil {
		m.delta = m.paddedField("delta", cfg.delta, func(v float32) float32 {
			return float32(math.Sqrt(float64(1 + 2*v)))
		})
	}
	//
	if cfg.theta != nil {
		m.theta = m.paddedField("theta", cfg.theta, nil)
	}
	//
	if cfg.phi != nil {
		m.phi = m.paddedField("phi", cfg.phi, nil)
	}
}

func (m *Model) paddedField(name string, interior *data.Array, transform func(float32) float32) *data.Dense {
	f := data.NewDense(name, m.grid.Dimensions(), m.DomainShape(), m.dtype)
	padded := interior.PadEdges(m.nbpml)
	values := f.Array().Values()
	//
	for i, v := range padded.Values() {
		if transform != nil {
			v = transform(v)
		}
		//
		values[i] = v
	}
	//
	return f
}

// Grid returns the underlying cartesian grid.
func (m *Model) Grid() *grid.Grid { return m.grid }

// Dim returns the spatial rank of the model domain.
func (m *Model) Dim() int { return m.grid.Dim() }

// Shape returns the interior shape in grid points.
func (m *Model) Shape() []int { return m.grid.Shape() }

// Nbpml returns the number of absorbing boundary layers.
func (m *Model) Nbpml() int { return m.nbpml }

// DType returns the element type of the model's fields.
func (m *Model) DType() codegen.DType { return m.dtype }

// Spacing returns the grid spacing per axis.
func (m *Model) Spacing() []float64 { return m.spacing }

// Origin returns the physical coordinates of the domain's first grid point.
func (m *Model) Origin() []float64 { return m.grid.Origin() }

// DomainShape returns the computational shape including boundary layers.
func (m *Model) DomainShape() []int {
	return domainShape(m.grid.Shape(), m.nbpml)
}

// DomainSize returns the physical size of the domain per axis.
func (m *Model) DomainSize() []float64 {
	out := make([]float64, m.Dim())
	//
	for i, n := range m.grid.Shape() {
		out[i] = float64(n-1) * m.spacing[i]
	}
	//
	return out
}

// M returns the dense square slowness field, or nil for homogeneous models.
func (m *Model) M() *data.Dense { return m.m }

// MConst returns the constant square slowness, or nil for dense models.
func (m *Model) MConst() *data.Constant { return m.mConst }

// Damp returns the PML damping field.
func (m *Model) Damp() *data.Dense { return m.damp }

// Epsilon returns the padded Thomsen epsilon field, if supplied.
func (m *Model) Epsilon() *data.Dense { return m.epsilon }

// Delta returns the padded Thomsen delta field, if supplied.
func (m *Model) Delta() *data.Dense { return m.delta }

// Theta returns the padded tilt field, if supplied.
func (m *Model) Theta() *data.Dense { return m.theta }

// Phi returns the padded azimuth field, if supplied.
func (m *Model) Phi() *data.Dense { return m.phi }

// Scale returns the anisotropic velocity scale factor.
func (m *Model) Scale() float64 { return m.scale }

// MaxVp returns the maximum velocity in km/s.
func (m *Model) MaxVp() float64 {
	if m.vp == nil {
		return m.vpScalar
	}
	//
	return float64(maxValue(m.vp))
}

// CriticalDt returns the largest stable time step under the CFL condition.
func (m *Model) CriticalDt() float64 {
	// For a fixed time order this coefficient shrinks as the space order
	// grows; these values cover the orders the kernels are generated for.
	coeff := 0.42
	//
	if m.Dim() == 3 {
		coeff = 0.38
	}
	//
	return coeff * minFloat(m.spacing) / (m.scale * m.MaxVp())
}

// Providers returns every runtime-argument provider the model contributes to
// a kernel: its parameter fields followed by the grid's axis dimensions.
func (m *Model) Providers() []args.Provider {
	var out []args.Provider
	//
	if m.m != nil {
		out = append(out, m.m)
	}
	//
	if m.mConst != nil {
		out = append(out, m.mConst)
	}
	//
	out = append(out, m.damp)
	//
	for _, f := range []*data.Dense{m.epsilon, m.delta, m.theta, m.phi} {
		if f != nil {
			out = append(out, f)
		}
	}
	//
	for _, d := range m.grid.Dimensions() {
		out = append(out, d)
	}
	//
	return out
}

// dampBoundary initialises the damping field with an absorbing PML profile.
func dampBoundary(damp *data.Array, nbpml int, spacing []float64) {
	dampcoeff := 1.5 * math.Log(1.0/0.001) / 40.0
	shape := damp.Shape()
	//
	for i := 0; i < nbpml; i++ {
		pos := math.Abs(float64(nbpml-i+1) / float64(nbpml))
		val := dampcoeff * (pos - math.Sin(2*math.Pi*pos)/(2*math.Pi))
		//
		for axis := range shape {
			addPlane(damp, axis, i, float32(val/spacing[axis]))
			addPlane(damp, axis, shape[axis]-1-i, float32(val/spacing[axis]))
		}
	}
}

// addPlane adds val to every element of the hyperplane at the given position
// along the given axis.
func addPlane(a *data.Array, axis, pos int, val float32) {
	var (
		shape  = a.Shape()
		index  = make([]int, len(shape))
		values = a.Values()
	)
	//
	for i := 0; i < a.Len(); i++ {
		if index[axis] == pos {
			values[i] += val
		}
		//
		incrementIndex(index, shape)
	}
}

func incrementIndex(index, shape []int) {
	for axis := len(index) - 1; axis >= 0; axis-- {
		index[axis]++
		//
		if index[axis] < shape[axis] {
			return
		}
		//
		index[axis] = 0
	}
}

func domainShape(shape []int, nbpml int) []int {
	out := make([]int, len(shape))
	//
	for i, n := range shape {
		out[i] = n + 2*nbpml
	}
	//
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	//
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	//
	return true
}

func maxValue(a *data.Array) float32 {
	var mx float32
	//
	for i, v := range a.Values() {
		if i == 0 || v > mx {
			mx = v
		}
	}
	//
	return mx
}

func minFloat(vals []float64) float64 {
	mn := vals[0]
	//
	for _, v := range vals[1:] {
		if v < mn {
			mn = v
		}
	}
	//
	return mn
}
