package tco

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// Uses German locale to match the EUR market the reference data describes.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.German)

// FormatCurrency renders an EUR amount with locale grouping and no decimals.
// Example: FormatCurrency(55680) returns "55.680 €".
//
// Formatting never alters the underlying numeric result; callers keep raw
// values and formatted strings strictly separate.
func FormatCurrency(v float64) string {
	return printer.Sprintf("%.0f €", v)
}

// FormatNumber renders a number with locale grouping and no decimals.
// Example: FormatNumber(120000) returns "120.000".
func FormatNumber(v float64) string {
	return printer.Sprintf("%.0f", v)
}

// FormatPercent renders a percentage with one decimal place.
// Example: FormatPercent(98.899) returns "98.9%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatCostPerKm renders a per-kilometer cost with two decimals.
// Example: FormatCostPerKm(0.973) returns "0,97 €/km".
func FormatCostPerKm(v float64) string {
	return printer.Sprintf("%.2f €/km", v)
}

// FormatYears renders a break-even duration with one decimal place, or a
// placeholder when the value is unreachable. Durations carry English unit
// words, so they take a plain decimal point like FormatPercent rather than
// the locale printer.
// Example: FormatYears(BreakEven(2.804)) returns "2.8 years".
func FormatYears(b BreakEven) string {
	if !b.Reachable() {
		return "—"
	}
	return fmt.Sprintf("%.1f years", float64(b))
}
