package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Dimension names one adjustment applied to the base salary.
type Dimension string

const (
	DimensionJobTitle       Dimension = "jobTitle"
	DimensionIndustry       Dimension = "industry"
	DimensionEmploymentType Dimension = "employmentType"
	DimensionLocation       Dimension = "location"
	DimensionSkills         Dimension = "skills"
	DimensionGender         Dimension = "gender"
)

type AdjustmentFactor struct {
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
}

// Adjustment is one recorded dimension.
type Adjustment struct {
	Dimension Dimension
	AdjustmentFactor
}

// Adjustments keeps the dimensions in evaluation order. It encodes as a
// JSON object whose keys follow that order.
type Adjustments []Adjustment

// Get returns the factor recorded for d.
func (a Adjustments) Get(d Dimension) (AdjustmentFactor, bool) {
	for _, adj := range a {
		if adj.Dimension == d {
			return adj.AdjustmentFactor, true
		}
	}
	return AdjustmentFactor{}, false
}

// Dimensions lists the recorded dimensions in order.
func (a Adjustments) Dimensions() []Dimension {
	out := make([]Dimension, len(a))
	for i, adj := range a {
		out[i] = adj.Dimension
	}
	return out
}

func (a Adjustments) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, adj := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(adj.Dimension))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(adj.AdjustmentFactor)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *Adjustments) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("adjustments: expected object, got %v", tok)
	}
	out := Adjustments{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("adjustments: expected key, got %v", tok)
		}
		var f AdjustmentFactor
		if err := dec.Decode(&f); err != nil {
			return fmt.Errorf("adjustments: decoding %q: %w", key, err)
		}
		out = append(out, Adjustment{Dimension: Dimension(key), AdjustmentFactor: f})
	}
	*a = out
	return nil
}

type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// EstimateResult is produced fresh per calculation and read-only thereafter.
type EstimateResult struct {
	Estimate    int         `json:"estimate"`
	Range       SalaryRange `json:"range"`
	Adjustments Adjustments `json:"adjustments"`
	Insights    []string    `json:"insights"`
	Trend       float64     `json:"trend"`
}
