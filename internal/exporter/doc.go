// Package exporter writes histogram and scatter summaries as CSV.
//
// CSVWriter encodes header and record rows to any io.Writer (an HTTP
// response, stdout) or to a file. HistogramOptions and ScatterOptions lay a
// summary out as rows:
//
//	bin_start,bin_end,center,count
//	0,1,0.5,1
//	...
//	4,5,5,3
//
// Floats are written in their shortest round-trip form so an export matches
// the JSON response exactly.
package exporter
