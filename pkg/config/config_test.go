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
package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opesci/gostencil/pkg/codegen"
)

func Test_Config_01(t *testing.T) {
	doc := load_Document(t, "constant.hcl")
	assert.Nil(t, doc.Grid)
	assert.Equal(t, "constant", doc.Model.Preset)
	// Preset descriptions delegate to the demo builder.
	m, err := doc.BuildModel()
	assert.NoError(t, err)
	assert.Equal(t, []int{101, 101}, m.Shape())
	// Whole numbers decode as ints.
	kwargs, err := doc.Kwargs()
	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"time_size": 500}, kwargs)
}

func Test_Config_02(t *testing.T) {
	doc := load_Document(t, "custom.hcl")
	assert.Equal(t, []int{60, 70}, doc.Grid.Shape)
	//
	m, err := doc.BuildModel()
	assert.NoError(t, err)
	assert.Equal(t, []int{80, 90}, m.DomainShape())
	assert.Equal(t, codegen.Float64, m.DType())
	assert.InDelta(t, 2.0, m.MaxVp(), 1e-9)
	// Fractional numbers decode as float64, whole ones as int.
	kwargs, err := doc.Kwargs()
	assert.NoError(t, err)
	assert.Equal(t, 120, kwargs["time_size"])
	assert.Equal(t, 0.9, kwargs["dt"])
}

func Test_Config_03(t *testing.T) {
	doc := load_Document(t, "minimal.hcl")
	// Spacing defaults to unit, origin to zero, dtype to float32.
	m, err := doc.BuildModel()
	assert.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, m.Origin())
	assert.Equal(t, []float64{1, 1}, m.Spacing())
	assert.Equal(t, codegen.Float32, m.DType())
	// No invoke block means no overrides.
	kwargs, err := doc.Kwargs()
	assert.NoError(t, err)
	assert.Empty(t, kwargs)
}

func Test_Config_04(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.hcl"))
	assert.Error(t, err)
	_, err = Load(filepath.Join("testdata", "bad_syntax.hcl"))
	assert.Error(t, err)
}

func Test_Config_05(t *testing.T) {
	// A model block without a velocity or preset cannot be built.
	doc := load_Document(t, "no_vp.hcl")
	_, err := doc.BuildModel()
	assert.Error(t, err)
	// A description without a model block cannot be built.
	doc = load_Document(t, "no_model.hcl")
	_, err = doc.BuildModel()
	assert.Error(t, err)
}

func Test_Config_06(t *testing.T) {
	// Non-numeric invocation overrides are rejected.
	doc := load_Document(t, "bad_invoke.hcl")
	_, err := doc.Kwargs()
	assert.Error(t, err)
}

// ===================================================================
// Test Helpers
// ===================================================================

func load_Document(t *testing.T, name string) *Document {
	t.Helper()
	//
	doc, err := Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to load %s: %v", name, err)
	}
	//
	return doc
}
