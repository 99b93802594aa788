package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tarikhaida/menu-tracker/constants"
)

// DateLayout is the ISO form used on the wire and on disk, always.
const DateLayout = "2006-01-02"

// MenuRecord is one cafeteria day's menu. Content fields are never empty;
// an undetected field holds the "-" sentinel.
type MenuRecord struct {
	SourceFilename string
	Date           time.Time
	DayOfWeek      string
	DayNumber      int
	Entree         string
	Plats          string
	Accompagnement string
	Dessert        string
}

// NewMenuRecord builds a validated record. Mandatory fields are rejected at
// construction time rather than at point of use. Empty content fields are
// normalized to the sentinel here so a constructed record is always
// storage-complete.
func NewMenuRecord(sourceFilename string, date time.Time, dayOfWeek string, dayNumber int, entree, plats, accompagnement, dessert string) (MenuRecord, error) {
	if sourceFilename == "" {
		return MenuRecord{}, fmt.Errorf("menu record: source filename is required")
	}
	if date.IsZero() {
		return MenuRecord{}, fmt.Errorf("menu record: date is required")
	}
	day, ok := constants.CanonicalWeekday(dayOfWeek)
	if !ok {
		return MenuRecord{}, fmt.Errorf("menu record: unknown day of week %q", dayOfWeek)
	}
	if dayNumber < 1 || dayNumber > 31 {
		return MenuRecord{}, fmt.Errorf("menu record: day number %d out of range", dayNumber)
	}

	return MenuRecord{
		SourceFilename: sourceFilename,
		Date:           date,
		DayOfWeek:      string(day),
		DayNumber:      dayNumber,
		Entree:         orPlaceholder(entree),
		Plats:          orPlaceholder(plats),
		Accompagnement: orPlaceholder(accompagnement),
		Dessert:        orPlaceholder(dessert),
	}, nil
}

// DateISO returns the record's date in ISO form (YYYY-MM-DD).
func (r MenuRecord) DateISO() string {
	return r.Date.Format(DateLayout)
}

// menuRecordJSON mirrors MenuRecord with the date as an ISO string, which is
// the only date form allowed on disk.
type menuRecordJSON struct {
	SourceFilename string `json:"filename"`
	Date           string `json:"date"`
	DayOfWeek      string `json:"day_of_week"`
	DayNumber      int    `json:"day_number"`
	Entree         string `json:"entree"`
	Plats          string `json:"plats"`
	Accompagnement string `json:"accompagnement"`
	Dessert        string `json:"dessert"`
}

func (r MenuRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(menuRecordJSON{
		SourceFilename: r.SourceFilename,
		Date:           r.DateISO(),
		DayOfWeek:      r.DayOfWeek,
		DayNumber:      r.DayNumber,
		Entree:         r.Entree,
		Plats:          r.Plats,
		Accompagnement: r.Accompagnement,
		Dessert:        r.Dessert,
	})
}

func (r *MenuRecord) UnmarshalJSON(data []byte) error {
	var raw menuRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := time.Parse(DateLayout, raw.Date)
	if err != nil {
		return fmt.Errorf("menu record: parse date %q: %w", raw.Date, err)
	}
	rec, err := NewMenuRecord(raw.SourceFilename, date, raw.DayOfWeek, raw.DayNumber,
		raw.Entree, raw.Plats, raw.Accompagnement, raw.Dessert)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

func orPlaceholder(s string) string {
	if s == "" {
		return constants.FieldPlaceholder
	}
	return s
}
