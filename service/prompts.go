package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"salary-compass/domain"
)

func insightsPrompt(payload json.RawMessage) (string, error) {
	var p domain.InsightsPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return "", err
	}
	return fmt.Sprintf(`Generate 3-4 personalized career insights for a content marketing professional with the following profile:
- Experience: %s
- Current role: %s
- Skills: %s
- Industry: %s
- Current estimated salary: %s

Focus on:
1. Career progression opportunities based on their experience and skills
2. Skills they could develop to increase their market value
3. Industry-specific advice for their situation
4. Salary negotiation or advancement strategies

Format each insight as a concise, actionable bullet point on its own line. Keep the total response under 200 words.
Do not use generic platitudes. Be specific to their profile.`,
		p.ExperienceLevel, p.JobTitle, strings.Join(p.Skills, ", "), p.Industry, formatAny(p.Salary)), nil
}

func normalizeTitlePrompt(payload json.RawMessage) (string, error) {
	var p domain.NormalizeTitlePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return "", err
	}
	if strings.TrimSpace(p.Title) == "" {
		return "", fmt.Errorf("title is required")
	}

	var titles strings.Builder
	for _, t := range domain.JobTitles {
		titles.WriteString("- " + t.Label + "\n")
	}
	return fmt.Sprintf(`Map the following content marketing job title to the most appropriate standard category from this list:
%s
Job title to normalize: %q

Return only the normalized job title from the list above, nothing else.`, titles.String(), p.Title), nil
}

func negotiationPrompt(payload json.RawMessage) (string, error) {
	var p domain.NegotiationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return "", err
	}
	return fmt.Sprintf(`Create a personalized salary negotiation script for a content marketing professional with:
- Experience level: %s
- Current/target role: %s
- Key skills: %s
- Current salary: %s
- Target salary: %s
- Key strengths/achievements: %s

The script should include:
1. A brief opening that positions their value
2. Specific talking points highlighting their skills and achievements
3. A clear but diplomatic way to state their salary expectations
4. Responses to potential pushback
5. A fallback position if the target salary isn't achievable

Format as a practical script they can adapt and use in a real negotiation.
Keep the total response under 400 words and make it conversational.`,
		p.ExperienceLevel, p.JobTitle, strings.Join(p.Skills, ", "),
		formatAny(p.CurrentSalary), formatAny(p.TargetSalary), p.Strengths), nil
}

// formatAny renders salary fields that clients send either as numbers or
// as preformatted strings.
func formatAny(v any) string {
	switch x := v.(type) {
	case nil:
		return "not provided"
	case float64:
		return FormatCurrency(int(x))
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// NormalizedTitleValue maps a label returned by the normalize-title
// request back onto a job title value. Unknown labels resolve to the
// default title.
func NormalizedTitleValue(label string) domain.JobTitle {
	label = strings.TrimSpace(strings.Trim(label, `"`))
	for _, t := range domain.JobTitles {
		if strings.EqualFold(t.Label, label) || strings.EqualFold(t.Value, label) {
			return domain.JobTitle(t.Value)
		}
	}
	return DefaultJobTitle
}
