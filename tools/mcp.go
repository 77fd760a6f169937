// Package tools exposes the salary estimator to MCP clients.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"salary-compass/domain"
	"salary-compass/service"
)

const coefficientsURI = "salary://coefficients"

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Estimator *service.SalaryEstimator
	Share     *service.ShareService
	Version   string
}

// EstimateOutput is the estimate_salary tool payload.
type EstimateOutput struct {
	Profile    domain.UserProfile    `json:"profile"`
	Result     domain.EstimateResult `json:"result"`
	Comparison domain.Comparison     `json:"comparison"`
	Summary    string                `json:"summary"`
}

// NewMCPServer creates an MCP server with the salary tools and the
// coefficient resource registered.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	s := server.NewMCPServer(
		"salary-compass",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("Salary Compass estimates content marketing salaries from a role profile."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("estimate_salary",
			append([]mcp.ToolOption{
				mcp.WithDescription("Estimate a content marketing salary and compare it with industry benchmarks."),
			}, profileParams()...)...,
		),
		mcpEstimate(deps),
	)

	s.AddTool(
		mcp.NewTool("share_link",
			append([]mcp.ToolOption{
				mcp.WithDescription("Build a shareable link that reproduces the estimate for a profile."),
			}, profileParams()...)...,
		),
		mcpShareLink(deps),
	)

	s.AddResource(
		mcp.NewResource(
			coefficientsURI,
			"Salary Coefficients",
			mcp.WithResourceDescription("Base salaries and multipliers used by the estimator"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceCoefficients(deps),
	)

	return s
}

func values(options []domain.Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Value
	}
	return out
}

func profileParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("experienceLevel", mcp.Description("Years of experience bracket"), mcp.Required(), mcp.Enum(values(domain.ExperienceLevels)...)),
		mcp.WithNumber("experienceYears", mcp.Description("Exact years of experience (0-20)")),
		mcp.WithString("jobTitle", mcp.Description("Job title"), mcp.Required(), mcp.Enum(values(domain.JobTitles)...)),
		mcp.WithString("industry", mcp.Description("Industry"), mcp.Required(), mcp.Enum(values(domain.Industries)...)),
		mcp.WithString("employmentType", mcp.Description("Employment type"), mcp.Required(), mcp.Enum(values(domain.EmploymentTypes)...)),
		mcp.WithString("location", mcp.Description("Region"), mcp.Required(), mcp.Enum(values(domain.Locations)...)),
		mcp.WithArray("skills", mcp.Description("Skill values, at least one"), mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("gender", mcp.Description("Optional gender")),
		mcp.WithString("ethnicity", mcp.Description("Optional ethnicity, recorded but never used in the estimate")),
	}
}

// profileFromRequest reads a profile from tool arguments. Skills may be
// passed as an array or as a comma separated string.
func profileFromRequest(req mcp.CallToolRequest) (domain.UserProfile, error) {
	skills := req.GetStringSlice("skills", nil)
	if len(skills) == 0 {
		if raw := req.GetString("skills", ""); raw != "" {
			skills = strings.Split(raw, ",")
		}
	}

	p := domain.UserProfile{
		ExperienceLevel: req.GetString("experienceLevel", ""),
		ExperienceYears: req.GetInt("experienceYears", 0),
		JobTitle:        req.GetString("jobTitle", ""),
		Industry:        req.GetString("industry", ""),
		EmploymentType:  req.GetString("employmentType", ""),
		Location:        req.GetString("location", ""),
		Skills:          skills,
		Gender:          req.GetString("gender", ""),
		Ethnicity:       req.GetString("ethnicity", ""),
	}
	if err := domain.ValidateProfile(p); err != nil {
		return domain.UserProfile{}, err
	}
	return p, nil
}

func mcpEstimate(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profile, err := profileFromRequest(req)
		if err != nil {
			return mcpError(err.Error()), nil
		}

		result := deps.Estimator.Estimate(profile)
		out := EstimateOutput{
			Profile:    profile,
			Result:     result,
			Comparison: deps.Estimator.Compare(profile, result),
			Summary: fmt.Sprintf("Estimated salary %s (range %s to %s)",
				service.FormatCurrency(result.Estimate),
				service.FormatCurrency(result.Range.Min),
				service.FormatCurrency(result.Range.Max)),
		}

		b, err := json.Marshal(out)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal estimate: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpShareLink(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profile, err := profileFromRequest(req)
		if err != nil {
			return mcpError(err.Error()), nil
		}

		links, err := deps.Share.Links(profile, deps.Estimator.Estimate(profile).Estimate)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to build share link: %v", err)), nil
		}

		b, err := json.Marshal(links)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal links: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceCoefficients(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(deps.Estimator.Coefficients())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal coefficients: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
