// Package builder assembles validated menu records from raw parser output.
package builder

import (
	"log/slog"

	"github.com/tarikhaida/menu-tracker/constants"
	"github.com/tarikhaida/menu-tracker/internal/entity"
	"github.com/tarikhaida/menu-tracker/internal/menudate"
	"github.com/tarikhaida/menu-tracker/internal/parser"
	"github.com/tarikhaida/menu-tracker/internal/textfmt"
)

// Builder is the single point where a parsed day becomes a complete record
// eligible for storage: date resolution, field cleaning, and validation all
// happen here.
type Builder struct {
	resolver *menudate.Resolver
	logger   *slog.Logger
}

func New(resolver *menudate.Resolver, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{resolver: resolver, logger: logger}
}

// Build converts the parsed days of one source document into validated
// records. A day that fails validation is logged and skipped; it never
// fails the document. Output is deterministic for identical input.
func (b *Builder) Build(sourceFilename string, menus []parser.DayMenu) []entity.MenuRecord {
	if len(menus) == 0 {
		return nil
	}

	span := b.resolver.ParseFilename(sourceFilename)

	records := make([]entity.MenuRecord, 0, len(menus))
	for _, m := range menus {
		date, corrected := b.resolver.ResolveDay(span, m.DayNumber)
		if corrected {
			b.logger.Warn("builder.date.corrected",
				"filename", sourceFilename, "day", m.DayNumber, "date", date.Format(entity.DateLayout))
		}

		dessert := textfmt.CleanField(m.Dessert)
		if dessert != constants.FieldPlaceholder {
			dessert = textfmt.FormatDessert(dessert)
		}

		rec, err := entity.NewMenuRecord(
			sourceFilename,
			date,
			m.DayName,
			m.DayNumber,
			textfmt.CleanField(m.Entree),
			textfmt.CleanField(m.Plats),
			textfmt.CleanField(m.Accompagnement),
			dessert,
		)
		if err != nil {
			b.logger.Warn("builder.record.invalid",
				"filename", sourceFilename, "day", m.DayName, "error", err)
			continue
		}
		records = append(records, rec)
	}

	return records
}
