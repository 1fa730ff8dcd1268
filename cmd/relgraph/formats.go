package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/c360studio/relgraph/export"
)

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported export formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range export.Formats() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", f, f.Ext())
			}
			return nil
		},
	}
}
