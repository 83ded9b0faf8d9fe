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
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "segdeque",
		Short:         "Segmented deque tools",
		Long:          "Benchmark the segmented deque and manage its configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(benchCommand())
	cmd.AddCommand(generateConfigCommand())
	return cmd
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "segdeque: %v\n", err)
		os.Exit(1)
	}
}
