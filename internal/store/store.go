// Package store is the durable, sorted, deduplicated collection of menu
// records. CSV is the canonical format; JSON and XLSX mirrors are rewritten
// on every save.
package store

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/tarikhaida/menu-tracker/internal/common"
	"github.com/tarikhaida/menu-tracker/internal/entity"
)

const (
	csvFilename  = "school_menus.csv"
	jsonFilename = "school_menus.json"
	xlsxFilename = "school_menus.xlsx"
)

var csvHeader = []string{"filename", "date", "day_of_week", "day_number", "entree", "plats", "accompagnement", "dessert"}

// Store holds the full record set in memory, keyed by ISO date. One pipeline
// run owns the store for its duration; there are no concurrent writers.
type Store struct {
	dir     string
	logger  *slog.Logger
	records map[string]entity.MenuRecord
}

func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		dir:     dir,
		logger:  logger,
		records: make(map[string]entity.MenuRecord),
	}
}

// Len returns the number of stored records.
func (s *Store) Len() int { return len(s.records) }

// UpsertBatch merges records into the set, keyed by date. On collision the
// newer record wins entirely; there is no field-level merge. Returns how
// many records were newly added and how many replaced existing ones.
func (s *Store) UpsertBatch(records []entity.MenuRecord) (added, replaced int) {
	for _, rec := range records {
		key := rec.DateISO()
		if _, exists := s.records[key]; exists {
			replaced++
		} else {
			added++
		}
		s.records[key] = rec
	}
	return added, replaced
}

// Records returns the record set ascending by date. Lexicographic order on
// the ISO key is date-correct.
func (s *Store) Records() []entity.MenuRecord {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]entity.MenuRecord, len(keys))
	for i, k := range keys {
		out[i] = s.records[k]
	}
	return out
}

// FindByDate looks up the record for an exact date. A miss returns
// common.ErrNotFound so callers can tell "no menu for this date" apart from
// "menu present with placeholder fields".
func (s *Store) FindByDate(date time.Time) (entity.MenuRecord, error) {
	key := date.Format(entity.DateLayout)
	rec, ok := s.records[key]
	if !ok {
		return entity.MenuRecord{}, fmt.Errorf("menu for %s: %w", key, common.ErrNotFound)
	}
	return rec, nil
}

// Load reads the record set from disk, preferring the canonical CSV and
// falling back to the schema-validated JSON mirror. A store that exists
// nowhere on disk is common.ErrNoData, never an empty store.
func (s *Store) Load() error {
	err := s.loadCSV(filepath.Join(s.dir, csvFilename))
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return common.WrapError(err, "load csv")
	}

	err = s.LoadJSON(filepath.Join(s.dir, jsonFilename))
	if err == nil {
		s.logger.Warn("store.load.json_fallback", "dir", s.dir)
		return nil
	}
	if !os.IsNotExist(err) {
		return common.WrapError(err, "load json mirror")
	}

	return fmt.Errorf("store at %s: %w", s.dir, common.ErrNoData)
}

// Save rewrites the full record set: canonical CSV plus JSON and XLSX
// mirrors, replacing prior content entirely. Partial writes would let the
// files drift from the in-memory sort order after a crashed run.
func (s *Store) Save() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return common.WrapError(err, "create output dir")
	}

	records := s.Records()

	if err := s.saveCSV(filepath.Join(s.dir, csvFilename), records); err != nil {
		return common.WrapError(err, "save csv")
	}
	if err := s.saveJSON(filepath.Join(s.dir, jsonFilename), records); err != nil {
		return common.WrapError(err, "save json mirror")
	}
	if err := s.saveXLSX(filepath.Join(s.dir, xlsxFilename), records); err != nil {
		return common.WrapError(err, "save xlsx mirror")
	}

	s.logger.Info("store.save.ok", "dir", s.dir, "records", len(records))
	return nil
}

func (s *Store) loadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil
	}

	records := make(map[string]entity.MenuRecord, len(rows)-1)
	for i, row := range rows[1:] { // skip header
		rec, err := recordFromRow(row)
		if err != nil {
			// A damaged row loses that day, not the whole store.
			s.logger.Warn("store.load.bad_row", "path", path, "row", i+2, "error", err)
			continue
		}
		records[rec.DateISO()] = rec
	}
	s.records = records
	return nil
}

func (s *Store) saveCSV(path string, records []entity.MenuRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.SourceFilename,
			rec.DateISO(),
			rec.DayOfWeek,
			strconv.Itoa(rec.DayNumber),
			rec.Entree,
			rec.Plats,
			rec.Accompagnement,
			rec.Dessert,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func recordFromRow(row []string) (entity.MenuRecord, error) {
	if len(row) != len(csvHeader) {
		return entity.MenuRecord{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}
	date, err := time.Parse(entity.DateLayout, row[1])
	if err != nil {
		return entity.MenuRecord{}, fmt.Errorf("parse date %q: %w", row[1], err)
	}
	dayNumber, err := strconv.Atoi(row[3])
	if err != nil {
		return entity.MenuRecord{}, fmt.Errorf("parse day number %q: %w", row[3], err)
	}
	return entity.NewMenuRecord(row[0], date, row[2], dayNumber, row[4], row[5], row[6], row[7])
}
