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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opesci/gostencil/pkg/config"
	"github.com/opesci/gostencil/pkg/data"
	"github.com/opesci/gostencil/pkg/dim"
	"github.com/opesci/gostencil/pkg/kernel"
)

// GetFlag gets an expected boolean flag, or panics if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string flag, or panics if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// buildKernel loads a model description file and assembles the demonstration
// forward kernel over it: the model's parameter fields plus a ring-buffered
// wavefield u over the padded domain.
func buildKernel(path string) (*kernel.Kernel, map[string]any) {
	doc, err := config.Load(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	m, err := doc.BuildModel()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	kwargs, err := doc.Kwargs()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	time, t := dim.DefaultTime()
	u := data.NewTimeVarying("u", t, m.Grid().Dimensions(), m.DomainShape(), m.DType())
	//
	providers := m.Providers()
	providers = append(providers, u, time)
	//
	return kernel.New("forward", providers...), kwargs
}
