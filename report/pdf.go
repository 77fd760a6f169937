// Package report renders a salary estimate as a one-document PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"salary-compass/domain"
	"salary-compass/service"
)

const (
	pageWidth    = 210.0
	margin       = 20.0
	contentWidth = pageWidth - 2*margin
	lineHeight   = 7.0
	pageBreakY   = 270.0
	continuedTop = 35.0
	footerY      = 277.0
)

// Filename is the suggested download name.
const Filename = "content-marketing-salary-report.pdf"

var (
	accent    = [3]int{242, 140, 56}
	banner    = [3]int{248, 227, 210}
	muted     = [3]int{100, 100, 100}
	textBlack = [3]int{0, 0, 0}
)

// Input is everything the report reads. None of it is modified.
type Input struct {
	Profile     domain.UserProfile
	Result      domain.EstimateResult
	Comparison  domain.Comparison
	GeneratedAt time.Time
}

// Generate writes the PDF report to w.
func Generate(w io.Writer, in Input) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Content Marketing Salary Report", false)
	pdf.SetCreationDate(in.GeneratedAt)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		fill(pdf, banner)
		if pdf.PageNo() > 1 {
			pdf.Rect(0, 0, pageWidth, 20, "F")
			text(pdf, accent, "B", 12, 13, "Content Marketing Salary Report (continued)")
			return
		}
		pdf.Rect(0, 0, pageWidth, 40, "F")
		text(pdf, accent, "B", 22, 15, "Content Marketing Salary Report")
		text(pdf, muted, "", 12, 25, "Salary Compass")
		text(pdf, muted, "", 12, 35, "Generated on "+in.GeneratedAt.Format("January 2, 2006"))
	})
	pdf.SetFooterFunc(func() {
		fill(pdf, banner)
		pdf.Rect(0, footerY, pageWidth, 20, "F")
		text(pdf, muted, "", 9, 287, fmt.Sprintf("Powered by Salary Compass  |  Page %d", pdf.PageNo()))
	})

	pdf.AddPage()

	text(pdf, textBlack, "B", 18, 55, "Your Estimated Salary")
	text(pdf, accent, "B", 28, 70, service.FormatCurrency(in.Result.Estimate))
	text(pdf, muted, "", 12, 80, fmt.Sprintf("Range: %s - %s",
		service.FormatCurrency(in.Result.Range.Min), service.FormatCurrency(in.Result.Range.Max)))

	c := &cursor{pdf: pdf, y: 95}

	c.heading("Your Profile")
	for _, item := range profileLines(in.Profile) {
		c.lines(pdf.SplitText(tr(item), contentWidth))
	}
	skills := make([]string, 0, len(in.Profile.Skills))
	for _, s := range in.Profile.SkillSet() {
		skills = append(skills, tr(domain.Label(domain.Skills, s)))
	}
	c.lines(joinWrapped(pdf, "Skills: ", skills, contentWidth))

	c.y += 10
	c.heading("How You Compare")
	for _, b := range []domain.Benchmark{in.Comparison.Industry, in.Comparison.ExperienceLevel} {
		c.lines([]string{
			fmt.Sprintf("%s: %s", b.Label, service.FormatCurrency(b.Average)),
			fmt.Sprintf("Your estimate is %d%% %s", b.Percent, direction(b)),
		})
		c.y += 10 - lineHeight
	}

	c.y += 10
	c.heading("Insights")
	for _, insight := range in.Result.Insights {
		c.lines(pdf.SplitText(tr("- "+insight), contentWidth))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

// cursor tracks the vertical position of the body text and moves to a
// fresh page once it passes pageBreakY.
type cursor struct {
	pdf *fpdf.Fpdf
	y   float64
}

func (c *cursor) breakPage(need float64) {
	if c.y+need > pageBreakY {
		c.pdf.AddPage()
		c.y = continuedTop
	}
}

func (c *cursor) heading(s string) {
	c.breakPage(lineHeight + 10)
	text(c.pdf, textBlack, "B", 16, c.y, s)
	c.y += 10
	c.pdf.SetFont("Helvetica", "", 11)
}

func (c *cursor) lines(lines []string) {
	for _, line := range lines {
		c.breakPage(0)
		c.pdf.Text(margin, c.y, line)
		c.y += lineHeight
	}
}

// joinWrapped joins items with commas into lines no wider than width in
// the current font. Lines break only between items.
func joinWrapped(pdf *fpdf.Fpdf, prefix string, items []string, width float64) []string {
	var out []string
	line := prefix
	started := false
	for i, item := range items {
		if i < len(items)-1 {
			item += ","
		}
		next := line + item
		if started {
			next = line + " " + item
		}
		if started && pdf.GetStringWidth(next) > width {
			out = append(out, line)
			next = "  " + item
		}
		line = next
		started = true
	}
	return append(out, line)
}

// profileLines lists the single-valued profile fields. Skills are laid
// out separately.
func profileLines(p domain.UserProfile) []string {
	return []string{
		"Experience Level: " + domain.Label(domain.ExperienceLevels, p.ExperienceLevel),
		"Job Title: " + domain.Label(domain.JobTitles, p.JobTitle),
		"Industry: " + domain.Label(domain.Industries, p.Industry),
		"Location: " + domain.Label(domain.Locations, p.Location),
		"Employment Status: " + domain.Label(domain.EmploymentTypes, p.EmploymentType),
	}
}

func direction(b domain.Benchmark) string {
	if b.Above {
		return "above average"
	}
	return "below average"
}

func fill(pdf *fpdf.Fpdf, c [3]int) {
	pdf.SetFillColor(c[0], c[1], c[2])
}

func text(pdf *fpdf.Fpdf, c [3]int, style string, size, y float64, s string) {
	pdf.SetTextColor(c[0], c[1], c[2])
	pdf.SetFont("Helvetica", style, size)
	pdf.Text(margin, y, s)
}
