package constants

import "strings"

// Weekday is a school-week day name as printed on the menu tables.
type Weekday string

const (
	Lundi    Weekday = "Lundi"
	Mardi    Weekday = "Mardi"
	Mercredi Weekday = "Mercredi"
	Jeudi    Weekday = "Jeudi"
	Vendredi Weekday = "Vendredi"
)

// schoolWeek is the closed set of recognized days. The cafeteria only
// serves Monday through Friday; weekend names never appear in a table.
var schoolWeek = []Weekday{Lundi, Mardi, Mercredi, Jeudi, Vendredi}

// WeekdayAlternation returns the names joined with "|" for embedding in a
// regular expression, e.g. "Lundi|Mardi|Mercredi|Jeudi|Vendredi".
func WeekdayAlternation() string {
	names := make([]string, len(schoolWeek))
	for i, d := range schoolWeek {
		names[i] = string(d)
	}
	return strings.Join(names, "|")
}

// CanonicalWeekday maps a day name to its canonical casing.
func CanonicalWeekday(input string) (Weekday, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, d := range schoolWeek {
		if normalized == strings.ToLower(string(d)) {
			return d, true
		}
	}
	return "", false
}
