package domain

import (
	"sort"
	"strings"
)

type ExperienceLevel string

const (
	ExperienceEarly   ExperienceLevel = "0-3"
	ExperienceMid     ExperienceLevel = "4-7"
	ExperienceSenior  ExperienceLevel = "8-12"
	ExperienceVeteran ExperienceLevel = "13+"
)

type EmploymentType string

const (
	EmploymentFullTime  EmploymentType = "full-time"
	EmploymentPartTime  EmploymentType = "part-time"
	EmploymentContract  EmploymentType = "contract"
	EmploymentFreelance EmploymentType = "freelance"
)

type Industry string

const (
	IndustryB2B       Industry = "b2b"
	IndustryB2C       Industry = "b2c"
	IndustryAgency    Industry = "agency"
	IndustryNonProfit Industry = "non-profit"
)

type JobTitle string

const (
	TitleWriter     JobTitle = "writer"
	TitleSpecialist JobTitle = "specialist"
	TitleStrategist JobTitle = "strategist"
	TitleManager    JobTitle = "manager"
	TitleLead       JobTitle = "lead"
	TitleSenior     JobTitle = "senior"
	TitleHead       JobTitle = "head"
	TitleDirector   JobTitle = "director"
	TitleVP         JobTitle = "vp"
)

type Skill string

const (
	SkillWriting    Skill = "writing"
	SkillStrategy   Skill = "strategy"
	SkillSEO        Skill = "seo"
	SkillSocial     Skill = "social"
	SkillEmail      Skill = "email"
	SkillAnalytics  Skill = "analytics"
	SkillManagement Skill = "management"
	SkillClient     Skill = "client"
	SkillVendor     Skill = "vendor"
	SkillVideo      Skill = "video"
	SkillDesign     Skill = "design"
	SkillTechnical  Skill = "technical"
)

type Location string

const (
	LocationUS        Location = "us"
	LocationCanada    Location = "canada"
	LocationUK        Location = "uk"
	LocationEurope    Location = "europe"
	LocationAustralia Location = "australia"
	LocationAsia      Location = "asia"
	LocationOther     Location = "other"
)

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderNonBinary      Gender = "non-binary"
	GenderPreferNotToSay Gender = "prefer-not-to-say"
)

type Ethnicity string

const (
	EthnicityWhite          Ethnicity = "white"
	EthnicityAsian          Ethnicity = "asian"
	EthnicityBlack          Ethnicity = "black"
	EthnicityHispanic       Ethnicity = "hispanic"
	EthnicityTwoOrMore      Ethnicity = "two-or-more"
	EthnicityPreferNotToSay Ethnicity = "prefer-not-to-say"
)

// UserProfile is the frozen set of attributes submitted by the form.
// Categorical fields hold raw strings so that out-of-vocabulary values
// survive decoding; the estimator resolves them with fallbacks.
type UserProfile struct {
	ExperienceLevel string   `json:"experienceLevel" validate:"required"`
	ExperienceYears int      `json:"experienceYears" validate:"gte=0,lte=20"`
	EmploymentType  string   `json:"employmentType" validate:"required"`
	Industry        string   `json:"industry" validate:"required"`
	JobTitle        string   `json:"jobTitle" validate:"required"`
	Skills          []string `json:"skills" validate:"min=1,dive,required"`
	Location        string   `json:"location" validate:"required"`
	Gender          string   `json:"gender,omitempty"`
	Ethnicity       string   `json:"ethnicity,omitempty"`
}

// Complete reports whether every field required for an estimate is set.
func (p UserProfile) Complete() bool {
	return p.ExperienceLevel != "" &&
		p.EmploymentType != "" &&
		p.Industry != "" &&
		p.JobTitle != "" &&
		p.Location != "" &&
		len(p.SkillSet()) > 0
}

// SkillSet returns the distinct, trimmed skills in lexical order.
func (p UserProfile) SkillSet() []string {
	seen := make(map[string]struct{}, len(p.Skills))
	out := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// HasSkill reports whether the profile lists skill.
func (p UserProfile) HasSkill(skill Skill) bool {
	for _, s := range p.Skills {
		if strings.TrimSpace(s) == string(skill) {
			return true
		}
	}
	return false
}
