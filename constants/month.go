package constants

import (
	"strings"
	"time"
)

// monthNames maps French and English month names to their number. Filenames
// from the municipal site are French, but the fallback scan accepts both.
var monthNames = map[string]time.Month{
	"janvier": time.January, "février": time.February, "mars": time.March,
	"avril": time.April, "mai": time.May, "juin": time.June,
	"juillet": time.July, "août": time.August, "septembre": time.September,
	"octobre": time.October, "novembre": time.November, "décembre": time.December,

	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// frenchMonths gives the display name for reports and logs.
var frenchMonths = map[time.Month]string{
	time.January: "Janvier", time.February: "Février", time.March: "Mars",
	time.April: "Avril", time.May: "Mai", time.June: "Juin",
	time.July: "Juillet", time.August: "Août", time.September: "Septembre",
	time.October: "Octobre", time.November: "Novembre", time.December: "Décembre",
}

// daysInMonth holds day counts for a non-leap year. Menu dates never land on
// Feb 29 in practice; the resolver clamps anything that overflows.
var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MonthFromName resolves a French or English month name. Substring matching
// tolerates OCR noise glued onto the name (e.g. "octobre.jpg").
func MonthFromName(name string) (time.Month, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if m, ok := monthNames[normalized]; ok {
		return m, true
	}
	for key, m := range monthNames {
		if strings.Contains(normalized, key) {
			return m, true
		}
	}
	return 0, false
}

// FrenchMonthName returns the French display name for a month.
func FrenchMonthName(m time.Month) string {
	return frenchMonths[m]
}

// DaysIn returns the number of days in a month (non-leap year).
func DaysIn(m time.Month) int {
	return daysInMonth[int(m)-1]
}
