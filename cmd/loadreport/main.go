// Command loadreport renders load-test analytics into print-ready PDF
// reports from the command line.
//
// # Usage
//
//	loadreport perf analytics.json
//	loadreport trend runs.json -o trend.pdf
//	loadreport compare pair.json --appendix testplan.pdf
//
// The input file holds the JSON encoding of the corresponding input type
// from the loadreport package. Without -o the artifact is written next to
// the input under its deterministic report filename.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lvillar/loadreport"
)

var (
	flagOut      string
	flagAuthor   string
	flagAppendix string
)

func main() {
	root := &cobra.Command{
		Use:           "loadreport",
		Short:         "Generate load-test PDF reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flagOut, "out", "o", "", "output file (default: derived report filename)")
	root.PersistentFlags().StringVar(&flagAuthor, "author", "", "document author metadata")
	root.PersistentFlags().StringVar(&flagAppendix, "appendix", "", "PDF file to attach after the report body")

	root.AddCommand(
		&cobra.Command{
			Use:   "perf <input.json>",
			Short: "Single-run performance report",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var in loadreport.PerformanceInput
				if err := readInput(args[0], &in); err != nil {
					return err
				}
				return generate(cmd.Context(), args[0], loadreport.KindPerformance, in.Title, in.Date,
					func(ctx context.Context, gen *loadreport.Generator, w *os.File) error {
						return gen.Performance(ctx, w, &in)
					})
			},
		},
		&cobra.Command{
			Use:   "trend <input.json>",
			Short: "Trend-analysis report across runs",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var in loadreport.TrendInput
				if err := readInput(args[0], &in); err != nil {
					return err
				}
				if in.Grade == "" && len(in.Runs) > 0 {
					in.Grade = loadreport.GradeForApdex(in.Runs[len(in.Runs)-1].Stats.Apdex.Score)
				}
				return generate(cmd.Context(), args[0], loadreport.KindTrend, in.Title, in.Date,
					func(ctx context.Context, gen *loadreport.Generator, w *os.File) error {
						return gen.Trend(ctx, w, &in)
					})
			},
		},
		&cobra.Command{
			Use:   "compare <input.json>",
			Short: "Run-comparison report",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var in loadreport.ComparisonInput
				if err := readInput(args[0], &in); err != nil {
					return err
				}
				return generate(cmd.Context(), args[0], loadreport.KindComparison, in.Title, in.Date,
					func(ctx context.Context, gen *loadreport.Generator, w *os.File) error {
						return gen.Comparison(ctx, w, &in)
					})
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "loadreport:", err)
		os.Exit(1)
	}
}

func readInput(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func generate(ctx context.Context, inputPath string, kind loadreport.Kind, title string, date time.Time,
	run func(context.Context, *loadreport.Generator, *os.File) error) error {

	var opts []loadreport.Option
	if flagAuthor != "" {
		opts = append(opts, loadreport.WithAuthor(flagAuthor))
	}
	if flagAppendix != "" {
		opts = append(opts, loadreport.WithAppendix(flagAppendix))
	}
	gen := loadreport.NewGenerator(opts...)

	out := flagOut
	if out == "" {
		if date.IsZero() {
			date = time.Now()
		}
		out = filepath.Join(filepath.Dir(inputPath), loadreport.Filename(kind, title, date))
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := run(ctx, gen, f); err != nil {
		f.Close()
		os.Remove(out) // no partial artifacts
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
