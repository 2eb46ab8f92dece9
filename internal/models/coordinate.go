package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Coordinate is a float64 that also decodes from a numeric JSON string, so "37.7749" and 37.7749 are equivalent.
type Coordinate float64

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("models: invalid coordinate: %w", err)
		}
		raw = s
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("models: invalid coordinate %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("models: coordinate must be finite, got %q", raw)
	}

	*c = Coordinate(v)
	return nil
}

// Float64 returns the coordinate as a plain float64.
func (c Coordinate) Float64() float64 {
	return float64(c)
}
