// Copyright (c) 2014, Kevin Walsh. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/f1r3fly-io/mettatron/internal/driver"
	"github.com/f1r3fly-io/mettatron/internal/reader"
	"github.com/f1r3fly-io/mettatron/internal/value"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Run every top-level form in a program interactively",
		Long: `run reads a program file and processes each top-level form in order:
facts and rules are installed into the knowledge base, and bang-prefixed
forms (! EXPR) are reduced and their results printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args[0])
		},
	}
}

func runRun(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("mettatron: %w", err)
	}
	forms, err := reader.ReadAll(string(src))
	if err != nil {
		return fmt.Errorf("mettatron: %w", err)
	}

	d := driver.New(newLogger(), cpuWorkers)
	ctx := context.Background()
	for _, form := range forms {
		results := d.Run(ctx, form)
		for _, res := range results {
			printResult(res)
		}
	}
	return nil
}

func printResult(v value.Value) {
	if outputRaw {
		fmt.Println(v.String())
		return
	}
	fmt.Printf("=> %s\n", v.String())
}
