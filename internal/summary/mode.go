package summary

// ModeBin is the bin with the highest count.
type ModeBin struct {
	Index int
	Range [2]float64
	Count int
}

// LocateMode returns the bin with the largest count. Ties resolve to the
// lowest index.
func LocateMode(h Histogram) (ModeBin, error) {
	if len(h.Counts) == 0 || len(h.Edges) < len(h.Counts)+1 {
		return ModeBin{}, ErrEmptyResult
	}

	best := 0
	for i, c := range h.Counts {
		if c > h.Counts[best] {
			best = i
		}
	}

	return ModeBin{
		Index: best,
		Range: [2]float64{h.Edges[best], h.Edges[best+1]},
		Count: h.Counts[best],
	}, nil
}
