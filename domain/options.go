package domain

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var (
	ExperienceLevels = []Option{
		{string(ExperienceEarly), "0-3 years"},
		{string(ExperienceMid), "4-7 years"},
		{string(ExperienceSenior), "8-12 years"},
		{string(ExperienceVeteran), "13+ years"},
	}

	EmploymentTypes = []Option{
		{string(EmploymentFullTime), "Full-time"},
		{string(EmploymentPartTime), "Part-time"},
		{string(EmploymentContract), "Contract"},
		{string(EmploymentFreelance), "Freelance"},
	}

	Industries = []Option{
		{string(IndustryB2B), "B2B"},
		{string(IndustryB2C), "B2C/DTC"},
		{string(IndustryAgency), "Agency"},
		{string(IndustryNonProfit), "Non-profit/Higher Ed/Healthcare"},
	}

	JobTitles = []Option{
		{string(TitleWriter), "Content Writer"},
		{string(TitleSpecialist), "Content Specialist"},
		{string(TitleStrategist), "Content Strategist"},
		{string(TitleManager), "Content Manager"},
		{string(TitleLead), "Content Lead"},
		{string(TitleSenior), "Senior Content Marketer"},
		{string(TitleHead), "Head of Content"},
		{string(TitleDirector), "Content Director"},
		{string(TitleVP), "VP of Content"},
	}

	Skills = []Option{
		{string(SkillWriting), "Writing and Editing"},
		{string(SkillStrategy), "Content Strategy"},
		{string(SkillSEO), "SEO"},
		{string(SkillSocial), "Social Media"},
		{string(SkillEmail), "Email Marketing"},
		{string(SkillAnalytics), "Content Analytics"},
		{string(SkillManagement), "People Management"},
		{string(SkillClient), "Client Management"},
		{string(SkillVendor), "Vendor Management"},
		{string(SkillVideo), "Video Production"},
		{string(SkillDesign), "Design"},
		{string(SkillTechnical), "Technical Writing"},
	}

	Locations = []Option{
		{string(LocationUS), "United States"},
		{string(LocationCanada), "Canada"},
		{string(LocationUK), "United Kingdom"},
		{string(LocationEurope), "Europe (Other)"},
		{string(LocationAustralia), "Australia/New Zealand"},
		{string(LocationAsia), "Asia"},
		{string(LocationOther), "Other"},
	}

	Genders = []Option{
		{string(GenderMale), "Male"},
		{string(GenderFemale), "Female"},
		{string(GenderNonBinary), "Non-binary"},
		{string(GenderPreferNotToSay), "Prefer not to say"},
	}

	Ethnicities = []Option{
		{string(EthnicityWhite), "White"},
		{string(EthnicityAsian), "Asian"},
		{string(EthnicityBlack), "Black/African American"},
		{string(EthnicityHispanic), "Hispanic/Latino"},
		{string(EthnicityTwoOrMore), "Two or more races"},
		{string(EthnicityPreferNotToSay), "Prefer not to say"},
	}
)

// Label returns the display label for value, or value itself when the
// option list does not know it.
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// ParseExperienceLevel resolves s to a known bracket.
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	switch l := ExperienceLevel(s); l {
	case ExperienceEarly, ExperienceMid, ExperienceSenior, ExperienceVeteran:
		return l, true
	default:
		return "", false
	}
}

func ParseEmploymentType(s string) (EmploymentType, bool) {
	switch t := EmploymentType(s); t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentFreelance:
		return t, true
	default:
		return "", false
	}
}

func ParseIndustry(s string) (Industry, bool) {
	switch i := Industry(s); i {
	case IndustryB2B, IndustryB2C, IndustryAgency, IndustryNonProfit:
		return i, true
	default:
		return "", false
	}
}

func ParseJobTitle(s string) (JobTitle, bool) {
	switch t := JobTitle(s); t {
	case TitleWriter, TitleSpecialist, TitleStrategist, TitleManager, TitleLead,
		TitleSenior, TitleHead, TitleDirector, TitleVP:
		return t, true
	default:
		return "", false
	}
}

func ParseSkill(s string) (Skill, bool) {
	switch sk := Skill(s); sk {
	case SkillWriting, SkillStrategy, SkillSEO, SkillSocial, SkillEmail, SkillAnalytics,
		SkillManagement, SkillClient, SkillVendor, SkillVideo, SkillDesign, SkillTechnical:
		return sk, true
	default:
		return "", false
	}
}

func ParseLocation(s string) (Location, bool) {
	switch l := Location(s); l {
	case LocationUS, LocationCanada, LocationUK, LocationEurope, LocationAustralia,
		LocationAsia, LocationOther:
		return l, true
	default:
		return "", false
	}
}

func ParseGender(s string) (Gender, bool) {
	switch g := Gender(s); g {
	case GenderMale, GenderFemale, GenderNonBinary, GenderPreferNotToSay:
		return g, true
	default:
		return "", false
	}
}
