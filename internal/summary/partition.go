package summary

// Partition is the split of a value series around an overflow threshold.
type Partition struct {
	InRange   []float64
	Overflow  []float64
	Threshold *float64
}

// HasOverflow reports whether any value exceeded the threshold.
func (p Partition) HasOverflow() bool {
	return p.Threshold != nil && len(p.Overflow) > 0
}

// Total is the number of values across both sides of the split.
func (p Partition) Total() int {
	return len(p.InRange) + len(p.Overflow)
}

// PartitionValues routes values strictly greater than threshold to the
// overflow side. A nil threshold keeps every value in range.
func PartitionValues(values []float64, threshold *float64) Partition {
	if threshold == nil {
		return Partition{InRange: values, Overflow: []float64{}}
	}

	t := *threshold
	p := Partition{
		InRange:   make([]float64, 0, len(values)),
		Overflow:  []float64{},
		Threshold: &t,
	}
	for _, v := range values {
		if v > t {
			p.Overflow = append(p.Overflow, v)
		} else {
			p.InRange = append(p.InRange, v)
		}
	}
	return p
}
