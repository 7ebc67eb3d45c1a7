package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ppiankov/sentiviz/internal/aggregate"
	"github.com/ppiankov/sentiviz/internal/model"
)

var statsHeader = []interface{}{"label", "source", "sentiment", "count", "percentage"}

// SheetName returns the workbook sheet holding a category's rows
func SheetName(category model.Category) string {
	return category.Title() + " Labels"
}

// Workbook writes one sheet per category with the aggregated rows
func (r *Renderer) Workbook(tables map[model.Category][]aggregate.Row, path string) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", closeErr)
		}
	}()

	first := true
	for _, category := range model.Categories() {
		rows, ok := tables[category]
		if !ok {
			continue
		}

		sheet := SheetName(category)
		if first {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
			first = false
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}

	if first {
		return fmt.Errorf("workbook %s: %w", path, model.ErrNoUsableRecords)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows []aggregate.Row) error {
	if err := f.SetSheetRow(sheet, "A1", &statsHeader); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		values := []interface{}{row.Label, row.Source, row.Sentiment.String(), row.Count, row.Percentage}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
