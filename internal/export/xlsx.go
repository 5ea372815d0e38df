package export

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"marketradar/internal"
)

func WriteXLSX(records []internal.ProductRecord, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range csvHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, r := range records {
		row := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, r.Title)
		set(2, r.Price)
		set(3, r.Shipping)
		set(4, r.TotalPrice)
		set(5, r.Date)
		set(6, r.Condition)
		set(7, r.Link)
		set(8, r.Image)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
