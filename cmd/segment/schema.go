package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/segmenter/internal/features"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [variant]",
		Short:     "List reference schemas or print one schema's ordered features",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: features.Variants(),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, name := range features.Variants() {
					s, _ := features.Variant(name)
					fmt.Fprintf(out, "%s\t%d features\n", name, s.Len())
				}
				return nil
			}

			s, err := features.Variant(args[0])
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tKEY\tLABEL")
			for i, f := range s.Fields {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i, f.Key, f.Label)
			}
			return tw.Flush()
		},
	}
}
