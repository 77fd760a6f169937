package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"salary-compass/config"
	"salary-compass/domain"
	"salary-compass/report"
	"salary-compass/service"
)

// addProfileFlags registers the flags every profile-driven command takes.
func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("exp", "", "experience level (0-3, 4-7, 8-12, 13+)")
	cmd.Flags().Int("years", 0, "exact years of experience")
	cmd.Flags().String("title", "", "job title (writer, specialist, strategist, manager, lead, senior, head, director, vp)")
	cmd.Flags().String("industry", "", "industry (b2b, b2c, agency, non-profit)")
	cmd.Flags().String("type", string(domain.EmploymentFullTime), "employment type (full-time, part-time, contract, freelance)")
	cmd.Flags().String("location", "", "region (us, canada, uk, europe, australia, asia, other)")
	cmd.Flags().String("skills", "", "comma separated skills")
	cmd.Flags().String("gender", "", "optional gender")
	cmd.Flags().String("ethnicity", "", "optional ethnicity")
}

func profileFromFlags(cmd *cobra.Command) (domain.UserProfile, error) {
	exp, _ := cmd.Flags().GetString("exp")
	years, _ := cmd.Flags().GetInt("years")
	title, _ := cmd.Flags().GetString("title")
	industry, _ := cmd.Flags().GetString("industry")
	empType, _ := cmd.Flags().GetString("type")
	location, _ := cmd.Flags().GetString("location")
	skillsStr, _ := cmd.Flags().GetString("skills")
	gender, _ := cmd.Flags().GetString("gender")
	ethnicity, _ := cmd.Flags().GetString("ethnicity")

	var skills []string
	if skillsStr != "" {
		skills = strings.Split(skillsStr, ",")
		for i := range skills {
			skills[i] = strings.TrimSpace(skills[i])
		}
	}

	p := domain.UserProfile{
		ExperienceLevel: exp,
		ExperienceYears: years,
		JobTitle:        title,
		Industry:        industry,
		EmploymentType:  empType,
		Location:        location,
		Skills:          skills,
		Gender:          gender,
		Ethnicity:       ethnicity,
	}
	if err := domain.ValidateProfile(p); err != nil {
		return domain.UserProfile{}, err
	}
	return p, nil
}

func newEstimator() *service.SalaryEstimator {
	return service.NewSalaryEstimator(service.DefaultCoefficients())
}

// --- estimate ---

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate a salary for a profile",
	Long: `Estimate a salary for a profile.

Examples:
  salary-compass estimate --exp 4-7 --title manager --industry b2b --location us --skills strategy
  salary-compass estimate --exp 0-3 --title writer --industry agency --location uk --skills seo,social --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		estimator := newEstimator()
		result := estimator.Estimate(profile)
		comparison := estimator.Compare(profile, result)

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"profile":    profile,
				"result":     result,
				"comparison": comparison,
			})
		}
		printEstimate(cmd.OutOrStdout(), result, comparison)
		return nil
	},
}

func printEstimate(w io.Writer, result domain.EstimateResult, comparison domain.Comparison) {
	fmt.Fprintln(w, colorize(colorBold, "Estimated salary: "+service.FormatCurrency(result.Estimate)))
	printField(w, "Range", "%s - %s", service.FormatCurrency(result.Range.Min), service.FormatCurrency(result.Range.Max))
	printField(w, "Market trend", "%s per year", service.FormatPercent(result.Trend))

	fmt.Fprintln(w)
	fmt.Fprintln(w, colorize(colorBold, "Adjustments"))
	for _, adj := range result.Adjustments {
		pct := service.FormatPercent(adj.Impact)
		fmt.Fprintf(w, "  %-15s %s  %s\n", adj.Dimension, signed(adj.Impact, pct), adj.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, colorize(colorBold, "Benchmarks"))
	for _, b := range []domain.Benchmark{comparison.Industry, comparison.ExperienceLevel, comparison.Overall} {
		dir := "below"
		if b.Above {
			dir = "above"
		}
		fmt.Fprintf(w, "  %-22s %s (%d%% %s)\n", b.Label, service.FormatCurrency(b.Average), b.Percent, dir)
	}

	industries := make([]string, 0, len(comparison.IndustryComparison))
	for _, p := range comparison.IndustryComparison {
		industries = append(industries, p.Name+" "+service.FormatCompactCurrency(p.Value))
	}
	printField(w, "By industry", "%s", strings.Join(industries, ", "))

	if len(result.Insights) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, colorize(colorBold, "Insights"))
		for _, insight := range result.Insights {
			fmt.Fprintf(w, "  • %s\n", insight)
		}
	}
}

// --- share ---

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print a share link for a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}
		baseURL, _ := cmd.Flags().GetString("base-url")
		if baseURL == "" {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			baseURL = cfg.Share.BaseURL
		}

		share := service.NewShareService(baseURL)
		links, err := share.Links(profile, newEstimator().Estimate(profile).Estimate)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, links.URL)
		printField(out, "Twitter", "%s", links.Twitter)
		printField(out, "LinkedIn", "%s", links.LinkedIn)
		printField(out, "Facebook", "%s", links.Facebook)
		printField(out, "WhatsApp", "%s", links.WhatsApp)
		return nil
	},
}

// --- report ---

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the PDF salary report for a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = report.Filename
		}

		estimator := newEstimator()
		result := estimator.Estimate(profile)

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		err = report.Generate(f, report.Input{
			Profile:     profile,
			Result:      result,
			Comparison:  estimator.Compare(profile, result),
			GeneratedAt: time.Now(),
		})
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			os.Remove(out)
			return fmt.Errorf("writing report: %w", err)
		}

		printSuccess("Report written to %s", out)
		return nil
	},
}

func init() {
	addProfileFlags(estimateCmd)
	estimateCmd.Flags().Bool("json", false, "print the full result as JSON")

	addProfileFlags(shareCmd)
	shareCmd.Flags().String("base-url", "", "share link base URL (defaults to SALARY_SHARE_BASE_URL)")

	addProfileFlags(reportCmd)
	reportCmd.Flags().String("out", "", "output file (default "+report.Filename+")")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(reportCmd)
}
