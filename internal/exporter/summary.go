package exporter

import "histviz/internal/summary"

// HistogramHeaders is the header row of a histogram export
var HistogramHeaders = []string{"bin_start", "bin_end", "center", "count"}

// ScatterHeaders is the header row of a scatter export
var ScatterHeaders = []string{"time", "value"}

// HistogramOptions lays out one row per bin
func HistogramOptions(result summary.Result) WriteOptions {
	records := make([][]string, len(result.Counts))
	for i, count := range result.Counts {
		records[i] = []string{
			formatFloat(result.BinEdges[i]),
			formatFloat(result.BinEdges[i+1]),
			formatFloat(result.BinCenters[i]),
			formatInt(count),
		}
	}
	return WriteOptions{Headers: HistogramHeaders, Records: records}
}

// ScatterOptions lays out one row per (time, value) pair
func ScatterOptions(series summary.Scatter) WriteOptions {
	records := make([][]string, len(series.Times))
	for i := range series.Times {
		records[i] = []string{formatFloat(series.Times[i]), formatFloat(series.Values[i])}
	}
	return WriteOptions{Headers: ScatterHeaders, Records: records}
}
