package service

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders whole US dollars with grouping, e.g. $116,567.
func FormatCurrency(v int) string {
	if v < 0 {
		return usd.Sprintf("-$%d", -v)
	}
	return usd.Sprintf("$%d", v)
}

// FormatCompactCurrency renders $1.2M, $116k, or the full amount below 1000.
func FormatCompactCurrency(v int) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", float64(v)/1_000_000)
	case v >= 1000:
		return fmt.Sprintf("$%.0fk", float64(v)/1000)
	default:
		return FormatCurrency(v)
	}
}

// FormatPercent renders a signed fraction as a whole percentage, e.g. +8%.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%+.0f%%", f*100)
}
