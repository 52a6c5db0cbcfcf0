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
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var emitCmd = &cobra.Command{
	Use:   "emit [flags] description_file",
	Short: "emit the C signature and casts of a kernel over a model description.",
	Long: `Load an HCL model description, resolve the demonstration forward kernel's
	 arguments, and print the C-level parameter declarations together with the
	 shaped, aligned casts of every tensor argument.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		k, kwargs := buildKernel(args[0])
		//
		res, errs := k.Resolve(kwargs)
		if len(errs) > 0 {
			for _, err := range errs {
				fmt.Printf("error: %s\n", err)
			}
			//
			os.Exit(1)
		}
		//
		decls := make([]string, 0, len(res.Bindings()))
		//
		for _, d := range res.Signature() {
			decls = append(decls, d.String())
		}
		//
		fmt.Printf("int %s(%s)\n{\n", res.Kernel(), strings.Join(decls, ", "))
		//
		for _, cast := range res.Casts() {
			fmt.Printf("  %s\n", cast)
		}
		//
		fmt.Println("  /* ... generated stencil body ... */")
		fmt.Println("  return 0;")
		fmt.Println("}")
	},
}

func init() {
	rootCmd.AddCommand(emitCmd)
}
