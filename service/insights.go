package service

import "salary-compass/domain"

const (
	insightEarlyCareer   = "Early career content marketers can increase their salary by focusing on developing specialized skills like content strategy."
	insightMidCareer     = "Mid-career professionals often see salary increases by taking on management responsibilities or specializing in high-demand areas."
	insightExperienced   = "Experienced content marketers command higher salaries when they combine strategic vision with people management skills."
	insightJuniorTitle   = "Consider developing strategic skills to move into higher-paying content strategy or management roles."
	insightLeadership    = "Your leadership position commands one of the highest salaries in content marketing."
	insightManagement    = "Your people management skills significantly increase your market value in content marketing."
	insightSkillGap      = "Adding content strategy or people management to your skill set could increase your earning potential."
	insightLocationUSPay = "Content marketing roles in the US typically pay higher than other regions for similar positions."
)

// GenerateInsights picks guidance strings for a profile. Rules run in a
// fixed order and each adds at most one string. adjustments and estimate
// are not consulted by the current rules.
func GenerateInsights(profile domain.UserProfile, adjustments domain.Adjustments, estimate int) []string {
	insights := []string{}

	switch domain.ExperienceLevel(profile.ExperienceLevel) {
	case domain.ExperienceEarly:
		insights = append(insights, insightEarlyCareer)
	case domain.ExperienceMid:
		insights = append(insights, insightMidCareer)
	case domain.ExperienceSenior, domain.ExperienceVeteran:
		insights = append(insights, insightExperienced)
	}

	switch domain.JobTitle(profile.JobTitle) {
	case domain.TitleWriter, domain.TitleSpecialist:
		insights = append(insights, insightJuniorTitle)
	case domain.TitleDirector, domain.TitleVP:
		insights = append(insights, insightLeadership)
	}

	hasManagement := profile.HasSkill(domain.SkillManagement)
	if hasManagement {
		insights = append(insights, insightManagement)
	}
	if !profile.HasSkill(domain.SkillStrategy) && !hasManagement {
		insights = append(insights, insightSkillGap)
	}

	if profile.Location != "" && domain.Location(profile.Location) != domain.LocationUS {
		insights = append(insights, insightLocationUSPay)
	}

	return insights
}
