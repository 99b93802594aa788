// Package parser turns raw OCR text into per-day menu rows.
//
// Docupipe renders a menu photo as a markdown pipe table with one column per
// weekday and one row per course. The tables are noisy: separator rows vary,
// the day-header row is not always first, and cells can be empty. The parser
// is deliberately soft: anything unparseable yields no rows, never an error.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tarikhaida/menu-tracker/constants"
)

// DayMenu is the raw, uncleaned extraction for one weekday column. Field
// values are verbatim cell contents; cleaning and date resolution happen in
// the builder.
type DayMenu struct {
	DayName        string
	DayNumber      int
	Entree         string
	Plats          string
	Accompagnement string
	Dessert        string
}

var dayHeaderRe = regexp.MustCompile(fmt.Sprintf(`(%s)\s*(\d+)`, constants.WeekdayAlternation()))

// ParseMarkdownTable extracts one DayMenu per detected weekday column,
// preserving table column order. Returns an empty slice when no parseable
// table is present.
func ParseMarkdownTable(text string) []DayMenu {
	rows := tableRows(text)
	if len(rows) < 2 {
		return nil
	}

	type dayColumn struct {
		name   string
		number int
		index  int
	}

	// Day headers can land in any row after OCR reorders the table, so scan
	// every cell instead of trusting row 0. First match per column wins.
	var days []dayColumn
	seen := map[int]bool{}
	for _, row := range rows {
		for i, cell := range row {
			if i == 0 || seen[i] {
				continue
			}
			m := dayHeaderRe.FindStringSubmatch(cell)
			if m == nil {
				continue
			}
			num, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			days = append(days, dayColumn{name: m[1], number: num, index: i})
			seen[i] = true
		}
	}

	menus := make([]DayMenu, 0, len(days))
	for _, day := range days {
		menu := DayMenu{DayName: day.name, DayNumber: day.number}

		for _, row := range rows {
			if len(row) <= day.index {
				continue
			}
			label := strings.ToLower(row[0])
			value := row[day.index]

			// Empty cells are legitimate (no accompaniment that day) and a
			// day header showing up here means this is the header row, not
			// a course row.
			if value == "" || dayHeaderRe.MatchString(value) {
				continue
			}

			switch {
			case strings.Contains(label, constants.LabelEntree) || strings.Contains(label, constants.LabelEntreeASCII):
				menu.Entree = value
			case strings.Contains(label, constants.LabelPlats):
				menu.Plats = value
			case strings.Contains(label, constants.LabelAccompagnement):
				menu.Accompagnement = value
			case strings.Contains(label, constants.LabelDessert):
				menu.Dessert = value
			}
		}

		if menu.Accompagnement == "" {
			menu.Accompagnement = constants.FieldPlaceholder
		}
		menus = append(menus, menu)
	}

	return menus
}

// tableRows keeps only pipe-delimited table lines, drops separator
// decoration, and splits each line into trimmed cells without the empty
// boundary cells that splitting on '|' produces.
func tableRows(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		if strings.Contains(line, ":---") || strings.Contains(line, "----") {
			continue
		}

		cells := strings.Split(line, "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		// Only boundary empties go; an empty interior cell is a real empty
		// column and removing it would shift every day one column left.
		for len(cells) > 0 && cells[0] == "" {
			cells = cells[1:]
		}
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	return rows
}
