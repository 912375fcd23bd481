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

	"github.com/f1r3fly-io/mettatron/internal/reader"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSExprCmd())
}

func newSExprCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sexpr <file>",
		Short: "Parse a program and print each top-level form back out, unevaluated",
		Long:  `sexpr is a parse-only dump: it reads every top-level form and re-prints it in canonical surface syntax, without installing or reducing anything. Useful for checking that a program reads the way its author intended.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSExpr(args[0])
		},
	}
}

func runSExpr(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("mettatron: %w", err)
	}
	forms, err := reader.ReadAll(string(src))
	if err != nil {
		return fmt.Errorf("mettatron: %w", err)
	}
	for _, form := range forms {
		fmt.Println(form.String())
	}
	return nil
}
