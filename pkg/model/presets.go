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
package model

import (
	"fmt"
	"strings"

	"github.com/opesci/gostencil/pkg/data"
)

// Demo returns a preset model for demonstration and testing purposes:
//
//   - "constant": a single-layer 101x101 model with velocity 1.5 km/s.
//   - "layers": a two-layer 101x101 model, 1.5 km/s over 2.5 km/s split
//     halfway down the last axis.
func Demo(preset string) (*Model, error) {
	var (
		shape   = []int{101, 101}
		spacing = []float64{10, 10}
		origin  = []float64{0, 0}
		nbpml   = 10
	)
	//
	switch strings.ToLower(preset) {
	case "constant":
		return NewConstant(shape, spacing, origin, 1.5, nbpml)
	case "layers", "twolayer", "2layer":
		v := data.NewArray(shape...)
		split := shape[len(shape)-1] / 2
		//
		for i := 0; i < shape[0]; i++ {
			for j := 0; j < shape[1]; j++ {
				if j < split {
					v.Set(1.5, i, j)
				} else {
					v.Set(2.5, i, j)
				}
			}
		}
		//
		return New(shape, spacing, origin, v, nbpml)
	default:
		return nil, fmt.Errorf("unknown model preset %q", preset)
	}
}
