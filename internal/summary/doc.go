// Package summary computes the numeric summaries served to the visualization
// client: equal-width histograms with an optional overflow bin, the modal bin,
// and raw time/value scatter series.
//
// The histogram pipeline runs strictly left to right:
//
//	Dataset -> FilterTimeRange -> ExtractValues -> Partition -> Bin -> LocateMode -> Assemble
//
// Compute chains the whole pipeline for one request. Every function is pure:
// inputs are never modified and nothing is retained between calls, so a loaded
// Dataset may be shared by concurrent requests.
//
// # Overflow threshold
//
// With a threshold T, values strictly above T are collapsed into the last bin.
// The binned set is the in-range values plus a single sentinel equal to T, so
// the bin range ends at T no matter how far the outliers reach. The last bin's
// count is then raised by len(overflow)-1 (the sentinel already counted one)
// and its reported center becomes T:
//
//	values = [0 1 2 3 10 11 12], T = 5, 5 bins
//	edges  = [0 1 2 3 4 5]
//	counts = [1 1 1 1 3]
//	centers[4] = 5
package summary
