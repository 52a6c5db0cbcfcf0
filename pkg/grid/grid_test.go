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
package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opesci/gostencil/pkg/dim"
)

func Test_Grid_01(t *testing.T) {
	g, err := New([]int{101, 101})
	assert.NoError(t, err)
	// Unit box defaults.
	assert.Equal(t, []float64{1.0 / 101, 1.0 / 101}, g.Spacing())
	assert.Equal(t, []float64{0, 0}, g.Origin())
	assert.Equal(t, 2, g.Dim())
	// Exactly two axis dimensions selected from the default pool.
	dims := g.Dimensions()
	assert.Len(t, dims, 2)
	assert.Equal(t, "x", dims[0].Name())
	assert.Equal(t, "y", dims[1].Name())
}

func Test_Grid_02(t *testing.T) {
	g, err := New([]int{10, 20}, WithExtent(100, 400), WithOrigin(5, 5))
	assert.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, g.Spacing())
	assert.Equal(t, []float64{5, 5}, g.Origin())
}

func Test_Grid_03(t *testing.T) {
	// Rank disagreements are rejected.
	_, err := New([]int{10, 20}, WithExtent(100))
	assert.Error(t, err)
	_, err = New([]int{10, 20}, WithOrigin(0, 0, 0))
	assert.Error(t, err)
	_, err = New(nil)
	assert.Error(t, err)
	_, err = New([]int{2, 2, 2, 2})
	assert.Error(t, err)
}

func Test_Grid_04(t *testing.T) {
	x := dim.Open("x")
	g, err := New([]int{50}, WithDimensions(x))
	assert.NoError(t, err)
	assert.Equal(t, x, g.Dimensions()[0])
	// Too few dimensions for the rank.
	_, err = New([]int{50, 50}, WithDimensions(x))
	assert.Error(t, err)
}

func Test_Grid_05(t *testing.T) {
	// Unrelated grids never share dimension state.
	g1, err := New([]int{30})
	assert.NoError(t, err)
	g2, err := New([]int{30})
	assert.NoError(t, err)
	//
	v := 30
	assert.True(t, g1.Dimensions()[0].Verify(&v))
	_, ok := g2.Dimensions()[0].Value()
	assert.False(t, ok)
}
