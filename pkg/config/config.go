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

// Package config loads HCL model description files.  A description composes
// a grid block, a model block and an optional invoke block whose attributes
// become the keyword values of the kernel invocation.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	log "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"

	"github.com/opesci/gostencil/pkg/codegen"
	"github.com/opesci/gostencil/pkg/model"
)

// GridBlock describes the discretised domain.
type GridBlock struct {
	Shape  []int     `hcl:"shape"`
	Origin []float64 `hcl:"origin,optional"`
}

// ModelBlock describes the physical model built over the grid.
type ModelBlock struct {
	// Preset selects a demo model; when set the grid block is ignored.
	Preset  string    `hcl:"preset,optional"`
	Vp      float64   `hcl:"vp,optional"`
	Spacing []float64 `hcl:"spacing,optional"`
	Nbpml   int       `hcl:"nbpml,optional"`
	DType   string    `hcl:"dtype,optional"`
}

// InvokeBlock carries free-form argument overrides for the kernel
// invocation.  Its contents are not fixed; they are matched against the
// kernel's runtime arguments by name at resolution time.
type InvokeBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Document is the decoded form of one model description file.
type Document struct {
	Grid   *GridBlock   `hcl:"grid,block"`
	Model  *ModelBlock  `hcl:"model,block"`
	Invoke *InvokeBlock `hcl:"invoke,block"`
}

// Load parses and decodes a single HCL model description file.
func Load(path string) (*Document, error) {
	parser := hclparse.NewParser()
	//
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", path, diags.Error())
	}
	//
	var doc Document
	//
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", path, diags.Error())
	}
	//
	log.Debugf("config: loaded %s", path)
	//
	return &doc, nil
}

// BuildModel constructs the physical model this document describes.
func (d *Document) BuildModel() (*model.Model, error) {
	if d.Model == nil {
		return nil, fmt.Errorf("description has no model block")
	}
	//
	if d.Model.Preset != "" {
		return model.Demo(d.Model.Preset)
	}
	//
	if d.Grid == nil {
		return nil, fmt.Errorf("description has no grid block and no preset")
	}
	//
	shape := d.Grid.Shape
	//
	spacing := d.Model.Spacing
	if spacing == nil {
		spacing = make([]float64, len(shape))
		//
		for i := range spacing {
			spacing[i] = 1.0
		}
	}
	//
	origin := d.Grid.Origin
	if origin == nil {
		origin = make([]float64, len(shape))
	}
	//
	if d.Model.Vp == 0 {
		return nil, fmt.Errorf("model block requires a velocity (vp) or a preset")
	}
	//
	dtype, err := codegen.ParseDType(d.Model.DType)
	if err != nil {
		return nil, err
	}
	//
	return model.NewConstant(shape, spacing, origin, d.Model.Vp, d.Model.Nbpml,
		model.WithDType(dtype))
}

// Kwargs extracts the invocation overrides as an argument-name to value map.
// Whole numbers become ints, everything else numeric becomes float64.
func (d *Document) Kwargs() (map[string]any, error) {
	kwargs := make(map[string]any)
	//
	if d.Invoke == nil {
		return kwargs, nil
	}
	//
	attrs, diags := d.Invoke.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read invoke block: %s", diags.Error())
	}
	//
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invoke argument %s: %s", name, diags.Error())
		}
		//
		converted, err := fromCty(name, val)
		if err != nil {
			return nil, err
		}
		//
		kwargs[name] = converted
	}
	//
	return kwargs, nil
}

func fromCty(name string, val cty.Value) (any, error) {
	if val.Type() != cty.Number {
		return nil, fmt.Errorf("invoke argument %s: unsupported type %s", name, val.Type().FriendlyName())
	}
	//
	bf := val.AsBigFloat()
	//
	if bf.IsInt() {
		i, _ := bf.Int64()
		//
		return int(i), nil
	}
	//
	f, _ := bf.Float64()
	//
	return f, nil
}
