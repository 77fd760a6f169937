package service

import (
	"math"
	"sort"

	"salary-compass/domain"
)

// Benchmarks published alongside the coefficient tables.
const (
	IndustryAverage      = 114176
	OverallMedian        = 100000
	fallbackLevelMedian  = 100000
	equitableRateFactor  = 1.05
	skillImpactChartSize = 8
)

var historicalSalaries = []domain.ChartPoint{
	{Name: "2019", Value: 85000},
	{Name: "2020", Value: 90000},
	{Name: "2021", Value: 95000},
	{Name: "2022", Value: 102000},
	{Name: "2023", Value: 108000},
	{Name: "2024", Value: 114176},
}

var industryAverages = []struct {
	industry domain.Industry
	name     string
	value    int
}{
	{domain.IndustryB2B, "B2B", 116459},
	{domain.IndustryB2C, "B2C/DTC", 110751},
	{domain.IndustryAgency, "Agency", 105320},
	{domain.IndustryNonProfit, "Non-profit", 95908},
}

// Compare derives benchmark and chart data for a profile and the result
// the estimator produced for it. The result is only read.
func (s *SalaryEstimator) Compare(profile domain.UserProfile, result domain.EstimateResult) domain.Comparison {
	levelMedian := fallbackLevelMedian
	if level, ok := domain.ParseExperienceLevel(profile.ExperienceLevel); ok {
		if b, ok := s.tables.Experience[level]; ok {
			levelMedian = b.BaseSalary
		}
	}

	position := 50.0
	if span := result.Range.Max - result.Range.Min; span > 0 {
		position = float64(result.Estimate-result.Range.Min) / float64(span) * 100
	}

	trend := make([]domain.ChartPoint, 0, len(historicalSalaries)+1)
	trend = append(trend, historicalSalaries...)
	trend = append(trend, domain.ChartPoint{Name: "2025 (Est.)", Value: result.Estimate})

	industries := make([]domain.ChartPoint, 0, len(industryAverages)+1)
	for _, ia := range industryAverages {
		industries = append(industries, domain.ChartPoint{
			Name:     ia.name,
			Value:    ia.value,
			Selected: profile.Industry == string(ia.industry),
		})
	}
	industries = append(industries, domain.ChartPoint{Name: "Your Estimate", Value: result.Estimate, Selected: true})

	return domain.Comparison{
		Industry:           benchmark("Industry Average", result.Estimate, IndustryAverage),
		ExperienceLevel:    benchmark("Experience Level Average", result.Estimate, levelMedian),
		Overall:            benchmark("Overall Median", result.Estimate, OverallMedian),
		RangePosition:      position,
		EquitableRate:      int(math.Round(float64(result.Estimate) * equitableRateFactor)),
		HistoricalTrend:    trend,
		SkillImpact:        s.skillImpactChart(profile),
		IndustryComparison: industries,
	}
}

func benchmark(label string, estimate, average int) domain.Benchmark {
	diff := estimate - average
	percent := 0
	if average != 0 {
		percent = int(math.Round(math.Abs(float64(diff)) / float64(average) * 100))
	}
	return domain.Benchmark{
		Label:      label,
		Average:    average,
		Difference: diff,
		Percent:    percent,
		Above:      diff >= 0,
	}
}

// skillImpactChart lists skill impacts as whole percentages, highest first,
// keeping the top entries.
func (s *SalaryEstimator) skillImpactChart(profile domain.UserProfile) []domain.ChartPoint {
	points := make([]domain.ChartPoint, 0, len(domain.Skills))
	for _, opt := range domain.Skills {
		skill := domain.Skill(opt.Value)
		points = append(points, domain.ChartPoint{
			Name:     opt.Label,
			Value:    int(math.Round(s.tables.Skills[skill] * 100)),
			Selected: profile.HasSkill(skill),
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value > points[j].Value
	})
	if len(points) > skillImpactChartSize {
		points = points[:skillImpactChartSize]
	}
	return points
}
