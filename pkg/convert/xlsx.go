package convert

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Priyanshi-Data-Art/PDF-WORD/pkg/pdf"
)

// exportTablesXLSX writes the detected tables to an XLSX workbook, one sheet
// per table.
func exportTablesXLSX(tables []pdf.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, table := range tables {
		sheet := fmt.Sprintf("Table%d", i+1)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
			}
		}

		for r, row := range table.Rows {
			for c, value := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return fmt.Errorf("invalid cell coordinates (%d, %d): %w", r, c, err)
				}
				if err := f.SetCellStr(sheet, cell, value); err != nil {
					return fmt.Errorf("failed to set cell %s: %w", cell, err)
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
