// Copyright 2024 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matrixorigin/segdeque/pkg/common/moerr"
	"github.com/matrixorigin/segdeque/pkg/config"
)

func generateConfigCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "generate-config",
		Short: "Write the default configuration",
		Long:  "Write the default toml configuration to stdout or to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return config.Write(cmd.OutOrStdout(), config.Default())
			}
			ctx := cmd.Context()
			f, err := os.Create(output)
			if err != nil {
				return moerr.ConvertGoError(ctx, err)
			}
			if err := config.Write(f, config.Default()); err != nil {
				f.Close()
				return moerr.ConvertGoError(ctx, err)
			}
			return moerr.ConvertGoError(ctx, f.Close())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout when empty")
	return cmd
}
