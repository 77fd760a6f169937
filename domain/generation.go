package domain

import "encoding/json"

// RequestKind selects the prompt used by the text-generation proxy.
type RequestKind string

const (
	KindInsights          RequestKind = "insights"
	KindNormalizeTitle    RequestKind = "normalize-title"
	KindNegotiationScript RequestKind = "negotiation-script"
)

func ParseRequestKind(s string) (RequestKind, bool) {
	switch k := RequestKind(s); k {
	case KindInsights, KindNormalizeTitle, KindNegotiationScript:
		return k, true
	default:
		return "", false
	}
}

// Source tells the caller where generated content came from.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

type GenerationRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// GenerationResult holds either a string or a list of strings in Result,
// depending on the request kind.
type GenerationResult struct {
	Result json.RawMessage `json:"result"`
	Source Source          `json:"source"`
}

type InsightsPayload struct {
	ExperienceLevel string   `json:"experienceLevel"`
	JobTitle        string   `json:"jobTitle"`
	Skills          []string `json:"skills"`
	Industry        string   `json:"industry"`
	Salary          any      `json:"salary"`
}

type NormalizeTitlePayload struct {
	Title string `json:"title"`
}

type NegotiationPayload struct {
	ExperienceLevel string   `json:"experienceLevel"`
	JobTitle        string   `json:"jobTitle"`
	Skills          []string `json:"skills"`
	CurrentSalary   any      `json:"currentSalary"`
	TargetSalary    any      `json:"targetSalary"`
	Strengths       string   `json:"strengths"`
}
