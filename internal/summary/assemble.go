package summary

import "math"

// Result is the transport shape of a histogram summary.
type Result struct {
	Counts        []int      `json:"counts"`
	BinCenters    []float64  `json:"binCenters"`
	BinEdges      []float64  `json:"binEdges"`
	MaxCountRange [2]float64 `json:"maxCountRange"`
	MaxCountValue int        `json:"maxCountValue"`
}

// Assemble packages a histogram and its mode bin for transport. Slices are
// copied so the result shares no memory with the histogram.
func Assemble(h Histogram, mode ModeBin) Result {
	return Result{
		Counts:        append(make([]int, 0, len(h.Counts)), h.Counts...),
		BinCenters:    plainFloats(h.Centers),
		BinEdges:      plainFloats(h.Edges),
		MaxCountRange: [2]float64{plainFloat(mode.Range[0]), plainFloat(mode.Range[1])},
		MaxCountValue: mode.Count,
	}
}

func plainFloats(src []float64) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = plainFloat(v)
	}
	return out
}

// plainFloat maps -0 to 0 so encoded output never carries a signed zero.
func plainFloat(v float64) float64 {
	if v == 0 && math.Signbit(v) {
		return 0
	}
	return v
}
