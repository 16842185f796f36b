// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
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
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dadrus/reqkit/cmd/flags"
	"github.com/dadrus/reqkit/internal/handler/api"
	"github.com/dadrus/reqkit/route"
)

func newRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "routes",
		Short:   "Lists the routes of the notes API together with their policies",
		Example: "reqkit routes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			tbl, err := api.NewTable(conf)
			if err != nil {
				return err
			}

			return printRoutes(cmd.OutOrStdout(), tbl.Entries())
		},
	}

	flags.RegisterGlobalFlags(cmd)

	return cmd
}

func printRoutes(out io.Writer, entries []route.Entry) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0) //nolint:mnd

	fmt.Fprintln(tw, "METHOD\tPATTERN\tAUTH\tCORS\tHOSTS\tMETADATA")

	for _, entry := range entries {
		summary := route.Summary(entry)

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.Method, entry.Pattern,
			summary["auth"], summary["cors"], summary["hosts"], summary["metadata"])
	}

	return tw.Flush()
}
