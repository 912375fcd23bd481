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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/f1r3fly-io/mettatron/internal/driver"
	"github.com/f1r3fly-io/mettatron/internal/reader"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newREPLCmd())
}

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read one form per line from stdin and process it interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL()
		},
	}
}

func runREPL() error {
	d := driver.New(newLogger(), cpuWorkers)
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		form, err := reader.ReadOne(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mettatron: %v\n", err)
			continue
		}
		for _, res := range d.Run(ctx, form) {
			printResult(res)
		}
	}
	return scanner.Err()
}
