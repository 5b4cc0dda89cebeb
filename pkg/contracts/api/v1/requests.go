// Package api contains the request and response contracts of the histviz HTTP API.
// Version v1 represents the current stable API version.
package api

// Summary API Requests

// HistogramRequest asks for a binned summary of one column of a dataset
type HistogramRequest struct {
	Dataset           string          `json:"dataset" validate:"required,safename"`
	Element           string          `json:"element" validate:"required"`
	Date              string          `json:"date,omitempty" validate:"omitempty,safename"`
	TimeRange         []OptionalFloat `json:"timeRange,omitempty" validate:"omitempty,len=2"`
	NumBins           OptionalInt     `json:"numBins"`
	OverflowThreshold OptionalFloat   `json:"overflowThreshold"`
	BinWidth          OptionalFloat   `json:"binWidth"`
}

// ScatterRequest asks for the raw (time, value) pairs of one column
type ScatterRequest struct {
	Dataset   string          `json:"dataset" validate:"required,safename"`
	Element   string          `json:"element" validate:"required"`
	Date      string          `json:"date,omitempty" validate:"omitempty,safename"`
	TimeRange []OptionalFloat `json:"timeRange,omitempty" validate:"omitempty,len=2"`
	YScaleMax OptionalFloat   `json:"yScaleMax"`
}

// DatasetQuery selects the date directory for listing endpoints
type DatasetQuery struct {
	Date string `json:"date" query:"date" validate:"omitempty,safename"`
}

// Bounds returns the time range bounds, nil where absent.
func (r HistogramRequest) Bounds() (min, max *float64) {
	return bounds(r.TimeRange)
}

// Bounds returns the time range bounds, nil where absent.
func (r ScatterRequest) Bounds() (min, max *float64) {
	return bounds(r.TimeRange)
}

func bounds(tr []OptionalFloat) (min, max *float64) {
	if len(tr) != 2 {
		return nil, nil
	}
	return tr[0].Ptr(), tr[1].Ptr()
}
