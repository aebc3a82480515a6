package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/segmenter/internal/segments"
)

type batchOptions struct {
	input  string
	output string
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Segment every row of a CSV file",
		Long: "batch reads a CSV whose header names the schema features (in any order,\n" +
			"case-insensitive) and writes it back with CLUSTER, PROFILE and ERROR columns.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.input, "input", "i", "-", "Input CSV file, - for stdin")
	f.StringVarP(&opts.output, "output", "o", "-", "Output CSV file, - for stdout")

	return cmd
}

func runBatch(cmd *cobra.Command, root *rootOptions, opts *batchOptions) error {
	engine, err := root.engine(cmd)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if opts.input != "-" {
		f, err := os.Open(opts.input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	out := cmd.OutOrStdout()
	if opts.output != "-" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	w := csv.NewWriter(out)

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if err := w.Write(append(header, "CLUSTER", "PROFILE", "ERROR")); err != nil {
		return err
	}

	schema := engine.Schema()
	var total, failed int
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read row %d: %w", total+1, err)
		}
		total++

		cluster, profile, msg := "", "", ""
		v, err := schema.FromRecord(header, row)
		if err == nil {
			var a *segments.Assessment
			if a, err = engine.Segment(cmd.Context(), v); err == nil {
				cluster, profile = strconv.Itoa(a.Cluster), a.Profile.Name
			}
		}
		if err != nil {
			failed++
			msg = segments.FailureMessage
		}

		if err := w.Write(append(row, cluster, profile, msg)); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "segmented %d rows, %d failed\n", total-failed, failed)
	return nil
}
