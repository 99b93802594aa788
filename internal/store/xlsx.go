package store

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tarikhaida/menu-tracker/internal/entity"
)

// saveXLSX writes the workbook mirror. Column layout matches the CSV so the
// two mirrors stay interchangeable for humans.
func (s *Store) saveXLSX(path string, records []entity.MenuRecord) error {
	f := excelize.NewFile()
	const sheet = "Menus"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet excelize creates.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{"Filename", "Date", "Jour", "N°", "Entrée", "Plats", "Accompagnement", "Dessert"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, rec := range records {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, rec.SourceFilename)
		write(2, rec.DateISO())
		write(3, rec.DayOfWeek)
		write(4, rec.DayNumber)
		write(5, rec.Entree)
		write(6, rec.Plats)
		write(7, rec.Accompagnement)
		write(8, rec.Dessert)
		row++
	}

	// Widen the content columns
	_ = f.SetColWidth(sheet, "A", "A", 34) // filename
	_ = f.SetColWidth(sheet, "B", "B", 12) // date
	_ = f.SetColWidth(sheet, "C", "C", 10) // day
	_ = f.SetColWidth(sheet, "E", "H", 42) // courses

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return f.Close()
}
