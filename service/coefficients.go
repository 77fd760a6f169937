package service

import "salary-compass/domain"

// ExperienceBracket is the base data for one years-of-experience bracket.
// Range is informational only.
type ExperienceBracket struct {
	BaseSalary int     `json:"baseSalary"`
	Trend      float64 `json:"trend"`
	Range      [2]int  `json:"range"`
}

// Multiplier is a weight applied by multiplication, with the explanation
// shown next to it.
type Multiplier struct {
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// Coefficients is the full set of tables used by SalaryEstimator. Tables
// are read-only after construction.
type Coefficients struct {
	Experience     map[domain.ExperienceLevel]ExperienceBracket `json:"experience"`
	JobTitle       map[domain.JobTitle]Multiplier               `json:"jobTitle"`
	Industry       map[domain.Industry]Multiplier               `json:"industry"`
	EmploymentType map[domain.EmploymentType]Multiplier         `json:"employmentType"`
	Location       map[domain.Location]Multiplier               `json:"location"`
	Skills         map[domain.Skill]float64                     `json:"skills"`
	Gender         map[domain.Gender]Multiplier                 `json:"gender"`
}

// Fallback keys used when a profile value is empty or not in a table.
const (
	DefaultExperienceLevel = domain.ExperienceMid
	DefaultJobTitle        = domain.TitleSpecialist
	DefaultIndustry        = domain.IndustryB2B
	DefaultEmploymentType  = domain.EmploymentFullTime
	DefaultLocation        = domain.LocationUS
)

var defaultCoefficients = Coefficients{
	Experience: map[domain.ExperienceLevel]ExperienceBracket{
		domain.ExperienceEarly:   {BaseSalary: 75004, Trend: -0.12, Range: [2]int{45000, 95000}},
		domain.ExperienceMid:     {BaseSalary: 94083, Trend: -0.07, Range: [2]int{65000, 115000}},
		domain.ExperienceSenior:  {BaseSalary: 125624, Trend: -0.04, Range: [2]int{90000, 160000}},
		domain.ExperienceVeteran: {BaseSalary: 142533, Trend: 0.12, Range: [2]int{110000, 200000}},
	},
	JobTitle: map[domain.JobTitle]Multiplier{
		domain.TitleWriter:     {0.82, "Content Writers typically earn less than the average"},
		domain.TitleSpecialist: {0.85, "Content Specialists earn slightly below average"},
		domain.TitleStrategist: {0.84, "Content Strategists earn slightly below average"},
		domain.TitleManager:    {0.98, "Content Managers earn close to the average"},
		domain.TitleLead:       {1.08, "Content Leads earn above average"},
		domain.TitleSenior:     {1.09, "Senior roles command higher salaries"},
		domain.TitleHead:       {1.11, "Head of Content roles earn significantly more"},
		domain.TitleDirector:   {1.42, "Directors earn well above average"},
		domain.TitleVP:         {2.28, "VP positions command the highest salaries"},
	},
	// agency has no coefficient of its own and resolves to DefaultIndustry.
	Industry: map[domain.Industry]Multiplier{
		domain.IndustryB2B:       {1.02, "B2B content marketing typically pays above average"},
		domain.IndustryB2C:       {0.97, "B2C/DTC content marketing pays slightly below average"},
		domain.IndustryNonProfit: {0.84, "Non-profit/healthcare/higher ed typically pays less"},
	},
	// part-time and contract resolve to DefaultEmploymentType.
	EmploymentType: map[domain.EmploymentType]Multiplier{
		domain.EmploymentFullTime:  {1.01, "Full-time roles offer slightly higher compensation"},
		domain.EmploymentFreelance: {0.97, "Freelance roles have more variable compensation"},
	},
	Location: map[domain.Location]Multiplier{
		domain.LocationUS:        {1.18, "US-based roles pay significantly higher"},
		domain.LocationCanada:    {0.87, "Canadian roles pay slightly below global average"},
		domain.LocationUK:        {0.86, "UK roles pay slightly below global average"},
		domain.LocationEurope:    {0.85, "European roles pay below global average"},
		domain.LocationAustralia: {0.92, "Australian/NZ roles pay slightly below global average"},
		domain.LocationAsia:      {0.75, "Asian markets typically pay less for content roles"},
		domain.LocationOther:     {0.8, "Other regions typically pay below global average"},
	},
	Skills: map[domain.Skill]float64{
		domain.SkillWriting:    0.0,
		domain.SkillStrategy:   0.04,
		domain.SkillSEO:        -0.01,
		domain.SkillSocial:     -0.03,
		domain.SkillEmail:      -0.07,
		domain.SkillAnalytics:  0.02,
		domain.SkillManagement: 0.2,
		domain.SkillClient:     -0.06,
		domain.SkillVendor:     0.22,
		domain.SkillVideo:      0.05,
		domain.SkillDesign:     0.03,
		domain.SkillTechnical:  0.08,
	},
	// Market-reality skew, kept apart from the equitable rate.
	Gender: map[domain.Gender]Multiplier{
		domain.GenderMale:           {1.1, "Males typically earn more in content marketing"},
		domain.GenderFemale:         {0.97, "Females typically earn less than male counterparts"},
		domain.GenderNonBinary:      {0.96, "Non-binary individuals typically earn less"},
		domain.GenderPreferNotToSay: {1.0, ""},
	},
}

// DefaultCoefficients returns the tables from the published salary report.
// The returned maps are shared and must not be modified.
func DefaultCoefficients() Coefficients {
	return defaultCoefficients
}

// lookup returns table[key], or table[fallback] when key is absent.
func lookup[K comparable, V any](table map[K]V, key K, fallback K) V {
	if v, ok := table[key]; ok {
		return v
	}
	return table[fallback]
}

// resolve maps a raw profile string onto a typed key, substituting
// fallback for empty or unrecognized input.
func resolve[K ~string](raw string, parse func(string) (K, bool), fallback K) K {
	if k, ok := parse(raw); ok {
		return k
	}
	return fallback
}
