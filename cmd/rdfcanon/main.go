// Copyright 2015-2017 Piprate Limited
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

// Command rdfcanon reads an N-Quads file and prints its URDNA2015
// canonical form to standard output.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gannan08/rdf-canonize/canon"
	"github.com/gannan08/rdf-canonize/nquads"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rdfcanon <path>",
		Short:        "Print the URDNA2015 canonical N-Quads form of a file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), args[0])
		},
	}
	return cmd
}

func run(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	dataset, err := nquads.Parse(string(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	canonical, err := canon.Canonize(dataset, canon.AlgorithmURDNA2015)
	if err != nil {
		return err
	}

	_, err = w.Write([]byte(canonical))
	return err
}

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
