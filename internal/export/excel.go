package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/PSavvateev/cs-data-generator/internal/pipeline"
)

// WriteExcel writes the whole dataset into a single workbook at path, one
// sheet per table. Cell text is identical to the CSV output.
func WriteExcel(ds *pipeline.Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range Tables(ds) {
		if i == 0 {
			// Reuse the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", t.Name); err != nil {
				return fmt.Errorf("renaming sheet for %s: %w", t.Name, err)
			}
		} else {
			if _, err := f.NewSheet(t.Name); err != nil {
				return fmt.Errorf("creating sheet %s: %w", t.Name, err)
			}
		}
		if err := writeSheet(f, t); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, t Table) error {
	if err := setRow(f, t.Name, 1, t.Header); err != nil {
		return fmt.Errorf("writing %s header: %w", t.Name, err)
	}
	for i, row := range t.Rows {
		if err := setRow(f, t.Name, i+2, row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", t.Name, i+1, err)
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(sheet, cell, &values)
}
