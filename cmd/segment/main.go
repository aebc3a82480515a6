// segment runs customer segmentation against an artifact bundle from the command line.
//
// Usage:
//
//	segment predict --values 1200,300,0,5000,800
//	segment predict --set BALANCE=1200 --set PURCHASES=300 ...
//	segment batch --input customers.csv --output segments.csv
//	segment profiles
//	segment schema [variant]
//	segment verify
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

type rootOptions struct {
	bundle   string
	manifest string
	profiles string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Customer segmentation over pre-fitted artifacts",
		Long: "segment assigns customers to clusters using a scaler, PCA and k-means\n" +
			"artifact bundle, and reports each cluster's marketing strategy.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.bundle, "bundle", "", "Local bundle directory (default: configured artifact storage)")
	f.StringVar(&opts.manifest, "manifest", "", "Manifest key inside the bundle (default: manifest.yaml)")
	f.StringVar(&opts.profiles, "profiles", "", "Profile catalog file (default: built-in catalog)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Log load and failure details to stderr")

	cmd.AddCommand(
		newPredictCmd(opts),
		newBatchCmd(opts),
		newProfilesCmd(opts),
		newSchemaCmd(),
		newVerifyCmd(opts),
	)

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
