package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberError reports a numeric option that is neither a JSON number nor a
// numeric string.
type NumberError struct {
	Raw string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("not a number: %s", e.Raw)
}

// OptionalFloat is a float option that may be absent. It accepts JSON
// numbers and numeric strings; null and "" mean absent.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// Float returns a present OptionalFloat.
func Float(v float64) OptionalFloat {
	return OptionalFloat{Value: v, Valid: true}
}

// Ptr returns the value as a pointer, nil when absent.
func (o OptionalFloat) Ptr() *float64 {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

func (o *OptionalFloat) UnmarshalJSON(data []byte) error {
	raw, absent, err := numericText(data)
	if err != nil || absent {
		*o = OptionalFloat{}
		return err
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return &NumberError{Raw: string(data)}
	}
	*o = OptionalFloat{Value: v, Valid: true}
	return nil
}

func (o OptionalFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// OptionalInt is an integer option that may be absent. Numeric strings and
// integral floats such as 10.0 are accepted.
type OptionalInt struct {
	Value int
	Valid bool
}

// Int returns a present OptionalInt.
func Int(v int) OptionalInt {
	return OptionalInt{Value: v, Valid: true}
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	raw, absent, err := numericText(data)
	if err != nil || absent {
		*o = OptionalInt{}
		return err
	}

	if v, err := strconv.Atoi(raw); err == nil {
		*o = OptionalInt{Value: v, Valid: true}
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return &NumberError{Raw: string(data)}
	}
	*o = OptionalInt{Value: int(f), Valid: true}
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// numericText unwraps a JSON number or string into the text to parse.
func numericText(data []byte) (raw string, absent bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", true, nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, &NumberError{Raw: string(data)}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", true, nil
		}
		return s, false, nil
	}

	if data[0] == '-' || (data[0] >= '0' && data[0] <= '9') {
		return string(data), false, nil
	}
	return "", false, &NumberError{Raw: string(data)}
}
