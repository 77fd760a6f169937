package domain

// Benchmark compares an estimate against one reference salary.
type Benchmark struct {
	Label      string `json:"label"`
	Average    int    `json:"average"`
	Difference int    `json:"difference"`
	Percent    int    `json:"percent"`
	Above      bool   `json:"above"`
}

type ChartPoint struct {
	Name     string `json:"name"`
	Value    int    `json:"value"`
	Selected bool   `json:"isSelected,omitempty"`
}

// Comparison is chart and benchmark data derived from a profile and its
// estimate.
type Comparison struct {
	Industry           Benchmark    `json:"industry"`
	ExperienceLevel    Benchmark    `json:"experienceLevel"`
	Overall            Benchmark    `json:"overall"`
	RangePosition      float64      `json:"rangePosition"`
	EquitableRate      int          `json:"equitableRate"`
	HistoricalTrend    []ChartPoint `json:"historicalTrend"`
	SkillImpact        []ChartPoint `json:"skillImpact"`
	IndustryComparison []ChartPoint `json:"industryComparison"`
}
