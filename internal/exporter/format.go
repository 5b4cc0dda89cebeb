package exporter

import "strconv"

// formatFloat writes the shortest decimal that round-trips to f, so exported
// edges match the JSON output exactly.
func formatFloat(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}
