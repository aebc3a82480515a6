package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/segmenter/internal/artifacts"
)

func newVerifyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Load and validate an artifact bundle and its profile coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, root)
		},
	}
}

func runVerify(cmd *cobra.Command, root *rootOptions) error {
	src, err := root.open(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	manifest, missing, err := artifacts.Missing(cmd.Context(), src.store, src.manifest)
	if err != nil {
		return fmt.Errorf("verify %s: %w", src.store.Location(), err)
	}
	if len(missing) > 0 {
		for _, key := range missing {
			fmt.Fprintf(out, "missing:   %s\n", key)
		}
		return fmt.Errorf("bundle %s at %s is missing %s", manifest.Name, src.store.Location(), strings.Join(missing, ", "))
	}

	bundle, catalog, err := src.load(cmd, root.logger(cmd))
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "bundle:    %s %s\n", bundle.Manifest.Name, bundle.Manifest.Version)
	fmt.Fprintf(out, "features:  %d (%s)\n", bundle.Schema.Len(), strings.Join(bundle.Schema.Keys(), ", "))
	fmt.Fprintf(out, "clusters:  %d\n", bundle.Pipeline.Clusters())

	if err := catalog.Covers(bundle.Pipeline.Clusters()); err != nil {
		fmt.Fprintf(out, "profiles:  %d, incomplete\n", catalog.Len())
		return err
	}
	fmt.Fprintf(out, "profiles:  %d, every cluster covered\n", catalog.Len())

	if _, err := bundle.Pipeline.Run(make([]float64, bundle.Schema.Len())); err != nil {
		return fmt.Errorf("smoke run: %w", err)
	}
	fmt.Fprintln(out, "ok")
	return nil
}
