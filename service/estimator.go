package service

import (
	"math"

	"salary-compass/domain"
)

const (
	rangeLowFactor  = 0.85
	rangeHighFactor = 1.15
)

// SalaryEstimator turns a profile into an estimate using a fixed set of
// coefficient tables. It holds no mutable state and is safe for
// concurrent use.
type SalaryEstimator struct {
	tables Coefficients
}

// NewSalaryEstimator creates an estimator over the given tables.
func NewSalaryEstimator(tables Coefficients) *SalaryEstimator {
	return &SalaryEstimator{tables: tables}
}

// Coefficients returns the tables the estimator was built with.
func (s *SalaryEstimator) Coefficients() Coefficients {
	return s.tables
}

// Estimate computes the salary estimate for profile. It never fails:
// missing or unknown categories resolve to their documented defaults.
func (s *SalaryEstimator) Estimate(profile domain.UserProfile) domain.EstimateResult {
	level := resolve(profile.ExperienceLevel, domain.ParseExperienceLevel, DefaultExperienceLevel)
	bracket := lookup(s.tables.Experience, level, DefaultExperienceLevel)

	adjustments := make(domain.Adjustments, 0, 6)
	record := func(d domain.Dimension, m Multiplier) {
		adjustments = append(adjustments, domain.Adjustment{
			Dimension: d,
			AdjustmentFactor: domain.AdjustmentFactor{
				Impact:      m.Value - 1,
				Description: m.Description,
			},
		})
	}

	title := resolve(profile.JobTitle, domain.ParseJobTitle, DefaultJobTitle)
	record(domain.DimensionJobTitle, lookup(s.tables.JobTitle, title, DefaultJobTitle))

	industry := resolve(profile.Industry, domain.ParseIndustry, DefaultIndustry)
	record(domain.DimensionIndustry, lookup(s.tables.Industry, industry, DefaultIndustry))

	employment := resolve(profile.EmploymentType, domain.ParseEmploymentType, DefaultEmploymentType)
	record(domain.DimensionEmploymentType, lookup(s.tables.EmploymentType, employment, DefaultEmploymentType))

	location := resolve(profile.Location, domain.ParseLocation, DefaultLocation)
	record(domain.DimensionLocation, lookup(s.tables.Location, location, DefaultLocation))

	record(domain.DimensionSkills, s.skillsMultiplier(profile.SkillSet()))

	if gender, ok := domain.ParseGender(profile.Gender); ok && gender != domain.GenderPreferNotToSay {
		if m, ok := s.tables.Gender[gender]; ok {
			record(domain.DimensionGender, m)
		}
	}

	factor := 1.0
	for _, adj := range adjustments {
		factor *= 1 + adj.Impact
	}

	estimate := int(math.Round(float64(bracket.BaseSalary) * factor))

	return domain.EstimateResult{
		Estimate: estimate,
		Range: domain.SalaryRange{
			Min: int(math.Round(float64(estimate) * rangeLowFactor)),
			Max: int(math.Round(float64(estimate) * rangeHighFactor)),
		},
		Adjustments: adjustments,
		Insights:    GenerateInsights(profile, adjustments, estimate),
		Trend:       bracket.Trend,
	}
}

// skillsMultiplier averages the additive impact of each distinct skill.
// Unknown skills contribute zero but still count toward the mean.
func (s *SalaryEstimator) skillsMultiplier(skills []string) Multiplier {
	if len(skills) == 0 {
		return Multiplier{Value: 1, Description: "No skills selected"}
	}

	total := 0.0
	for _, raw := range skills {
		if skill, ok := domain.ParseSkill(raw); ok {
			total += s.tables.Skills[skill]
		}
	}
	mean := total / float64(max(1, len(skills)))

	return Multiplier{
		Value:       1 + mean,
		Description: "Your skill set impacts your market value",
	}
}
