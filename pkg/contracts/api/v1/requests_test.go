package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramRequest_Decode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		numBins   OptionalInt
		threshold OptionalFloat
		binWidth  OptionalFloat
		min, max  *float64
	}{
		{
			name:    "numbers",
			body:    `{"dataset":"a.xlsx","element":"x","numBins":5,"overflowThreshold":2.5,"timeRange":[1,9]}`,
			numBins: Int(5), threshold: Float(2.5),
			min: ptr(1), max: ptr(9),
		},
		{
			name:     "form style strings",
			body:     `{"dataset":"a.xlsx","element":"x","numBins":"12","binWidth":"0.5","overflowThreshold":""}`,
			numBins:  Int(12),
			binWidth: Float(0.5),
		},
		{
			name: "nulls are absent",
			body: `{"dataset":"a.xlsx","element":"x","numBins":null,"timeRange":[null,4]}`,
			max:  ptr(4),
		},
		{
			name:    "integral float bin count",
			body:    `{"dataset":"a.xlsx","element":"x","numBins":10.0}`,
			numBins: Int(10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req HistogramRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.numBins, req.NumBins)
			assert.Equal(t, tt.threshold, req.OverflowThreshold)
			assert.Equal(t, tt.binWidth, req.BinWidth)

			min, max := req.Bounds()
			assert.Equal(t, tt.min, min)
			assert.Equal(t, tt.max, max)
		})
	}
}

func TestOptional_Rejects(t *testing.T) {
	bodies := []string{
		`{"numBins":"ten"}`,
		`{"numBins":2.5}`,
		`{"numBins":true}`,
		`{"overflowThreshold":"abc"}`,
		`{"overflowThreshold":{}}`,
	}

	for _, body := range bodies {
		var req HistogramRequest
		err := json.Unmarshal([]byte(body), &req)
		require.Error(t, err, body)

		var numErr *NumberError
		assert.ErrorAs(t, err, &numErr, body)
	}
}

func TestOptional_Marshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A OptionalFloat `json:"a"`
		B OptionalInt   `json:"b"`
		C OptionalFloat `json:"c"`
	}{A: Float(1.5), B: Int(3)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":3,"c":null}`, string(out))
}

func ptr(v float64) *float64 {
	return &v
}
