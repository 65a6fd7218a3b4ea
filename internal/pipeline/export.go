package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"wikigear/internal"
)

// ExportRecordsToXLSX writes one row per stored record. The bonus and
// school columns carry the JSON fragments of the stored record.
func ExportRecordsToXLSX(rows []internal.ItemRow, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{
		"category", "name", "url", "level", "status", "tradeable", "no_auction",
		"sockets", "bonus_count", "bonuses", "school_type",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal([]byte(row.RecordJSON), &fields); err != nil {
			return err
		}

		set(1, row.Category)
		set(2, row.Name)
		set(3, row.URL)
		set(4, row.Level)
		set(5, row.Status)
		set(6, row.Tradeable)
		set(7, row.NoAuction)
		set(8, rawField(fields, "sockets"))
		set(9, row.BonusCount)
		set(10, rawField(fields, "bonuses"))
		set(11, rawField(fields, "School Type"))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func rawField(fields map[string]json.RawMessage, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	return string(v)
}
