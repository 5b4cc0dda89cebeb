package summary

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultNumBins is used when a request names neither a bin count nor a bin width.
const DefaultNumBins = 10

// Options configures the binning step.
type Options struct {
	// NumBins is the number of equal-width bins laid over [min, max]. It wins
	// over BinWidth.
	NumBins int
	// BinWidth, used when NumBins is zero, fixes the width of every bin. Bins
	// start at the minimum and the last edge may lie past the maximum.
	BinWidth float64
	// Threshold routes values strictly above it into the last bin.
	Threshold *float64
	// MaxBins caps the bin count, explicit or derived. Zero means no cap.
	MaxBins int
}

// Validate rejects options before any binning happens.
func (o Options) Validate() error {
	if o.NumBins < 0 {
		return invalidParameter("numBins", "must be a positive integer, got %d", o.NumBins)
	}
	if math.IsNaN(o.BinWidth) || math.IsInf(o.BinWidth, 0) || o.BinWidth < 0 {
		return invalidParameter("binWidth", "must be a positive number")
	}
	if o.NumBins == 0 && o.BinWidth == 0 {
		return invalidParameter("numBins", "must be a positive integer, got 0")
	}
	if o.MaxBins > 0 && o.NumBins > o.MaxBins {
		return invalidParameter("numBins", "must be at most %d, got %d", o.MaxBins, o.NumBins)
	}
	if o.Threshold != nil && !isFinite(*o.Threshold) {
		return invalidParameter("overflowThreshold", "must be a finite number")
	}
	return nil
}

// widthBins resolves the bin count for a fixed bin width: enough bins of
// BinWidth, starting at the minimum, to reach the maximum.
func (o Options) widthBins(span float64) (int, error) {
	n := math.Ceil(span / o.BinWidth)
	if n < 1 || math.IsNaN(n) {
		n = 1
	}
	if (o.MaxBins > 0 && n > float64(o.MaxBins)) || n > math.MaxInt32 {
		return 0, invalidParameter("binWidth", "width %g yields %.0f bins over a span of %g", o.BinWidth, n, span)
	}
	return int(n), nil
}

// Histogram is the binned view of a value series. Edges has one more element
// than Counts and Centers. Every bin is half-open [edge, next) except the
// last, which is closed.
type Histogram struct {
	Edges   []float64
	Counts  []int
	Centers []float64
}

// NumBins returns the number of bins.
func (h Histogram) NumBins() int {
	return len(h.Counts)
}

// Total returns the sum of all bin counts.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Bin partitions values around opts.Threshold and bins the result.
func Bin(values []float64, opts Options) (Histogram, error) {
	if err := opts.Validate(); err != nil {
		return Histogram{}, err
	}
	return BinPartition(PartitionValues(values, opts.Threshold), opts)
}

// BinPartition bins an already partitioned series. When overflow values
// exist, the in-range values plus one sentinel equal to the threshold are
// binned; the last bin is then credited with the remaining overflow values
// and its center is reported as the threshold itself. Edges are not altered.
func BinPartition(p Partition, opts Options) (Histogram, error) {
	if err := opts.Validate(); err != nil {
		return Histogram{}, err
	}
	if p.Total() == 0 {
		return Histogram{}, ErrEmptyResult
	}

	if !p.HasOverflow() {
		return binEqualWidth(p.InRange, opts)
	}

	augmented := make([]float64, len(p.InRange)+1)
	copy(augmented, p.InRange)
	augmented[len(p.InRange)] = *p.Threshold

	h, err := binEqualWidth(augmented, opts)
	if err != nil {
		return Histogram{}, err
	}

	last := len(h.Counts) - 1
	// one overflow value is already counted through the sentinel
	h.Counts[last] += len(p.Overflow) - 1
	h.Centers[last] = *p.Threshold
	return h, nil
}

// binEqualWidth counts values into equal-width bins. With NumBins the bins
// cover exactly [min, max]; with BinWidth they are BinWidth wide from min.
func binEqualWidth(values []float64, opts Options) (Histogram, error) {
	if len(values) == 0 {
		return Histogram{}, ErrEmptyResult
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if !isFinite(lo) || !isFinite(hi) {
		return Histogram{}, invalidParameter("element", "column holds non-finite values")
	}

	var (
		edges []float64
		err   error
	)
	if opts.NumBins > 0 {
		edges = spanEdges(lo, hi, opts.NumBins)
	} else {
		edges, err = widthEdges(lo, hi, opts)
		if err != nil {
			return Histogram{}, err
		}
	}

	n := len(edges) - 1
	counts := make([]int, n)
	for _, v := range values {
		counts[binIndex(v, edges)]++
	}

	centers := make([]float64, n)
	for i := range centers {
		centers[i] = edges[i]/2 + edges[i+1]/2
	}

	return Histogram{Edges: edges, Counts: counts, Centers: centers}, nil
}

// spanEdges lays n equal bins over [lo, hi]. A zero span collapses to a
// single unit-wide bin centered on the lone value. When the span is too
// narrow to separate n bins in float64, n is halved until every edge is
// distinct.
func spanEdges(lo, hi float64, n int) []float64 {
	if hi == lo {
		return []float64{lo - 0.5, hi + 0.5}
	}

	for ; n > 1; n /= 2 {
		edges := linearEdges(lo, hi, n)
		if increasing(edges) {
			return edges
		}
	}
	return []float64{lo, hi}
}

// linearEdges interpolates n+1 edges from lo to hi. hi-lo can overflow for
// finite bounds of opposite sign, in which case the edges are built from
// weighted bounds that stay finite.
func linearEdges(lo, hi float64, n int) []float64 {
	edges := make([]float64, n+1)
	if isFinite(hi - lo) {
		floats.Span(edges, lo, hi)
	} else {
		fn := float64(n)
		for i := range edges {
			t := float64(i) / fn
			edges[i] = lo*(1-t) + hi*t
		}
	}
	edges[0], edges[n] = lo, hi
	return edges
}

// widthEdges lays bins of opts.BinWidth starting at lo until hi is covered.
func widthEdges(lo, hi float64, opts Options) ([]float64, error) {
	width := opts.BinWidth
	n, err := opts.widthBins(hi - lo)
	if err != nil {
		return nil, err
	}

	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	// rounding can leave the last edge a hair short of the maximum
	if edges[n] < hi {
		if opts.MaxBins > 0 && n+1 > opts.MaxBins {
			return nil, invalidParameter("binWidth", "width %g yields %d bins over a span of %g", width, n+1, hi-lo)
		}
		edges = append(edges, lo+float64(n+1)*width)
	}

	if !increasing(edges) {
		return nil, invalidParameter("binWidth", "width %g is too fine for values of magnitude %g", width, math.Max(math.Abs(lo), math.Abs(hi)))
	}
	return edges, nil
}

func increasing(edges []float64) bool {
	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) || !isFinite(edges[i]) {
			return false
		}
	}
	return isFinite(edges[0])
}

// binIndex locates v among edges: the bin an edge opens holds values equal
// to that edge, and the maximum lands in the closed last bin.
func binIndex(v float64, edges []float64) int {
	n := len(edges) - 1
	i := sort.Search(len(edges), func(k int) bool { return edges[k] > v }) - 1
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
