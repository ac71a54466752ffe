package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatPKR renders an amount with the PKR prefix and thousands separators,
// e.g. "PKR 12,000".
func FormatPKR(amount int64) string {
	return printer.Sprintf("PKR %d", amount)
}

// FormatCount renders a count with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func percent(v float64) string { return fmt.Sprintf("%.1f%%", v) }

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
