package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/relgraph/ontology"
)

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [ontology]",
		Short: "Show the classes and properties of an ontology",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "media"
			if len(args) == 1 {
				name = args[0]
			}
			registry, mappings, err := ontology.Load(name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ontology %s (%s)\n\n", name, registry.Namespace())

			fmt.Fprintln(out, "classes:")
			for _, class := range registry.Classes() {
				c := registry.Class(class)
				line := "  " + c.Name
				if c.Parent != "" {
					line += " < " + c.Parent
				}
				fmt.Fprintln(out, line)
			}

			fmt.Fprintln(out, "\ndata properties:")
			for _, name := range registry.DataProperties() {
				p := registry.DataProperty(name)
				var tags []string
				if p.Functional {
					tags = append(tags, "functional")
				}
				if p.InverseFunctional {
					tags = append(tags, "inverse-functional")
				}
				suffix := ""
				if len(tags) > 0 {
					suffix = " [" + strings.Join(tags, ", ") + "]"
				}
				fmt.Fprintf(out, "  %s: %s -> %s%s\n", p.Name, p.Class, p.Type, suffix)
			}

			fmt.Fprintln(out, "\nobject properties:")
			for _, name := range registry.ObjectProperties() {
				p := registry.ObjectProperty(name)
				suffix := ""
				if p.InverseOf != "" {
					suffix = " (inverse: " + p.InverseOf + ")"
				}
				fmt.Fprintf(out, "  %s: %s -> %s%s\n", p.Name, p.Domain, p.Range, suffix)
			}

			fmt.Fprintln(out, "\ntable mappings:")
			for table, m := range mappings {
				fmt.Fprintf(out, "  %s -> %s (key: %s)\n", table, m.Class, m.KeyColumn)
			}

			return nil
		},
	}
}
