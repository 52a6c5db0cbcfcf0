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
	"golang.org/x/term"

	"github.com/opesci/gostencil/pkg/kernel"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] description_file",
	Short: "resolve the runtime arguments of a kernel over a model description.",
	Long: `Load an HCL model description, assemble the demonstration forward kernel over
	 it, and run one argument resolution pass using the description's invoke block.
	 The command fails when any argument remains unresolved or inconsistent.`,
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
		if output := GetString(cmd, "json"); output != "" {
			writeSummary(res, output)
			//
			return
		}
		//
		printReport(res)
	},
}

func writeSummary(res *kernel.Resolution, output string) {
	bytes, err := res.Summary()
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	if output == "-" {
		fmt.Println(string(bytes))
		//
		return
	}
	//
	if err := os.WriteFile(output, bytes, 0644); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

// printReport renders the bindings as a table clipped to the terminal width.
func printReport(res *kernel.Resolution) {
	width := 80
	//
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	//
	fmt.Printf("kernel %s: %d arguments resolved\n", res.Kernel(), len(res.Bindings()))
	//
	for _, b := range res.Bindings() {
		var value string
		//
		switch {
		case b.Size != nil:
			value = fmt.Sprintf("%d", *b.Size)
		case b.Value != nil:
			value = fmt.Sprintf("%g", *b.Value)
		default:
			value = fmt.Sprintf("%v", b.Shape)
		}
		//
		line := fmt.Sprintf("  %-16s %-8s %-16s %s", b.Name, b.Kind, value, b.Decl)
		//
		if len(line) > width {
			line = line[:width]
		}
		//
		fmt.Println(strings.TrimRight(line, " "))
	}
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("json", "", "write a JSON summary to the given file ('-' for stdout)")
}
