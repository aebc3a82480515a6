package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/segmenter/internal/features"
	"github.com/JaimeStill/segmenter/internal/segments"
)

type predictOptions struct {
	values string
	set    []string
	json   bool
}

func newPredictCmd(root *rootOptions) *cobra.Command {
	opts := &predictOptions{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Segment one customer",
		Example: "  segment predict --values 1200,300,0,5000,800\n" +
			"  segment predict --set BALANCE=1200 --set PURCHASES=300 --set CASH_ADVANCE=0 \\\n" +
			"    --set CREDIT_LIMIT=5000 --set PAYMENTS=800",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredict(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.values, "values", "", "Comma-separated values in schema order")
	f.StringArrayVar(&opts.set, "set", nil, "Feature value as KEY=VALUE (repeatable)")
	f.BoolVar(&opts.json, "json", false, "Print the full assessment as JSON")
	cmd.MarkFlagsMutuallyExclusive("values", "set")
	cmd.MarkFlagsOneRequired("values", "set")

	return cmd
}

func runPredict(cmd *cobra.Command, root *rootOptions, opts *predictOptions) error {
	engine, err := root.engine(cmd)
	if err != nil {
		return err
	}

	var a *segments.Assessment
	if opts.values != "" {
		values, perr := features.ParseList(opts.values)
		if perr != nil {
			return errors.New(segments.FailureMessage)
		}
		a, err = engine.SegmentSlice(cmd.Context(), values)
	} else {
		m, perr := parseAssignments(opts.set)
		if perr != nil {
			return perr
		}
		a, err = engine.SegmentMap(cmd.Context(), m)
	}
	if err != nil {
		return errors.New(segments.FailureMessage)
	}

	out := cmd.OutOrStdout()
	if opts.json {
		return writeJSON(out, a)
	}
	printAssessment(out, a)
	return nil
}

func parseAssignments(pairs []string) (map[string]float64, error) {
	m := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		key, raw, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q: want KEY=VALUE", p)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.New(segments.FailureMessage)
		}
		m[strings.ToUpper(strings.TrimSpace(key))] = v
	}
	return m, nil
}

func printAssessment(w io.Writer, a *segments.Assessment) {
	fmt.Fprintf(w, "Cluster:  %d (%s)\n", a.Cluster, a.Profile.Name)
	fmt.Fprintf(w, "Risk:     %s\n", a.Profile.RiskTier)
	fmt.Fprintf(w, "Segment:  %s\n", a.Profile.Description)
	fmt.Fprintf(w, "Strategy:\n")
	for _, s := range a.Profile.Strategies {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}
