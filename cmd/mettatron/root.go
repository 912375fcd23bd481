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
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	outputRaw  bool
	cpuWorkers int
)

var rootCmd = &cobra.Command{
	Use:     "mettatron",
	Short:   "Reduce and query MeTTa-flavored facts and rules",
	Long:    `mettatron loads a program of facts, rules, and bang-prefixed evaluation requests and reduces them against an in-memory knowledge base.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	rootCmd.PersistentFlags().BoolVarP(&outputRaw, "output", "o", false, "print each result bare, without the \"=> \" prefix")
	rootCmd.PersistentFlags().IntVar(&cpuWorkers, "workers", 0, "CPU-bound reduction pool size (0 = logical CPU count)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a new logger named "mettatron", at debug level when
// --verbose is set and info level otherwise.
func newLogger() hclog.Logger {
	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  "mettatron",
		Level: level,
	})
}
