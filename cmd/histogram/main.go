// Package main provides the offline histogram CLI: it runs the same summary
// pipeline as the server against a single .xlsx or .csv file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"histviz/internal/config"
	"histviz/internal/dataset"
	"histviz/internal/exporter"
	"histviz/internal/infrastructure"
	"histviz/internal/summary"
	api "histviz/pkg/contracts/api/v1"
)

type options struct {
	element   string
	mode      string
	format    string
	out       string
	numBins   int
	binWidth  float64
	threshold *float64
	min       *float64
	max       *float64
	yScaleMax *float64
}

func main() {
	logger, err := infrastructure.NewLogger(config.LoggingConfig{Level: "warn", Output: "console"}, os.Stderr)
	if err != nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "histogram_cli")

	if err := newRootCmd(os.Stdout, logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer, logger *slog.Logger) *cobra.Command {
	opts := &options{}
	var threshold, lo, hi, yMax float64

	cmd := &cobra.Command{
		Use:          "histogram [dataset.xlsx|dataset.csv]",
		Short:        "Summarize one column of a dataset file",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		Long: `histogram bins one column of an .xlsx or .csv dataset the way the histviz
server does and prints the summary as JSON or CSV.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("threshold") {
				opts.threshold = &threshold
			}
			if flags.Changed("min") {
				opts.min = &lo
			}
			if flags.Changed("max") {
				opts.max = &hi
			}
			if flags.Changed("ymax") {
				opts.yScaleMax = &yMax
			}
			if err := opts.validate(); err != nil {
				return err
			}

			ctx := infrastructure.EnsureTraceID(cmd.Context())
			if err := run(ctx, args[0], opts, stdout, logger); err != nil {
				logger.ErrorContext(ctx, "histogram failed",
					slog.String("file", args[0]),
					slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.element, "element", "e", "", "column to summarize (required)")
	flags.StringVar(&opts.mode, "mode", "histogram", "histogram | scatter")
	flags.StringVarP(&opts.format, "format", "f", "json", "json | csv")
	flags.StringVarP(&opts.out, "output", "o", "", "output file (default: stdout)")
	flags.IntVar(&opts.numBins, "bins", 0, "number of bins (default 10 unless --binwidth is given)")
	flags.Float64Var(&opts.binWidth, "binwidth", 0, "fixed bin width, bins start at the minimum")
	flags.Float64Var(&threshold, "threshold", 0, "collapse values above this into the last bin")
	flags.Float64Var(&lo, "min", 0, "inclusive lower time bound")
	flags.Float64Var(&hi, "max", 0, "inclusive upper time bound")
	flags.Float64Var(&yMax, "ymax", 0, "y scale maximum echoed in scatter output")
	_ = cmd.MarkFlagRequired("element")

	return cmd
}

func (o *options) validate() error {
	if o.mode != "histogram" && o.mode != "scatter" {
		return fmt.Errorf("invalid mode: %s (must be histogram or scatter)", o.mode)
	}
	if o.format != "json" && o.format != "csv" {
		return fmt.Errorf("invalid format: %s (must be json or csv)", o.format)
	}
	if o.numBins == 0 && o.binWidth == 0 {
		o.numBins = config.DefaultNumBins
	}
	return nil
}

func run(ctx context.Context, file string, opts *options, stdout io.Writer, logger *slog.Logger) error {
	source := dataset.NewFileSource(filepath.Dir(file), logger)
	ds, err := source.LoadRows(ctx, dataset.ID{Name: filepath.Base(file)})
	if err != nil {
		return err
	}

	timeRange := summary.TimeRange{Min: opts.min, Max: opts.max}

	var payload interface{}
	var table exporter.WriteOptions
	switch opts.mode {
	case "scatter":
		series, err := summary.ScatterSeries(ds, summary.ScatterQuery{
			Column:    opts.element,
			TimeRange: timeRange,
			YScaleMax: opts.yScaleMax,
		})
		if errors.Is(err, summary.ErrEmptyResult) {
			return writeJSON(opts.out, stdout, api.ErrorPayload{Error: api.EmptyScatterMessage})
		}
		if err != nil {
			return err
		}
		payload, table = series, exporter.ScatterOptions(series)
	default:
		result, stats, err := summary.Compute(ds, summary.HistogramQuery{
			Column:    opts.element,
			TimeRange: timeRange,
			Options: summary.Options{
				NumBins:   opts.numBins,
				BinWidth:  opts.binWidth,
				Threshold: opts.threshold,
				MaxBins:   config.MaxNumBins,
			},
		})
		if errors.Is(err, summary.ErrEmptyResult) {
			return writeJSON(opts.out, stdout, api.ErrorPayload{Error: api.EmptyHistogramMessage})
		}
		if err != nil {
			return err
		}
		logger.DebugContext(ctx, "histogram computed",
			slog.Int("values", stats.Values),
			slog.Int("overflow", stats.Overflow))
		payload, table = result, exporter.HistogramOptions(result)
	}

	if opts.format == "csv" {
		writer := exporter.NewCSVWriter(logger)
		if opts.out != "" {
			return writer.WriteFile(opts.out, table)
		}
		return writer.Write(stdout, table)
	}
	return writeJSON(opts.out, stdout, payload)
}

func writeJSON(path string, stdout io.Writer, v interface{}) (err error) {
	w := stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		w = file
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
