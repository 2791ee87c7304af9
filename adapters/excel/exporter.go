package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gridpulse/domain/series"
)

const loadSheet = "Hourly Load"

// WriteLoadWorkbook renders hourly load rows as an xlsx workbook and
// writes it to w. Columns follow the region declaration order; null
// readings become empty cells, never zeros.
func WriteLoadWorkbook(w io.Writer, rows []series.LoadRow, keys []series.Region) error {
	if len(keys) == 0 {
		keys = series.Regions()
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(loadSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := make([]interface{}, 0, len(keys)+1)
	header = append(header, "hour_end")
	for _, key := range keys {
		header = append(header, string(key))
	}
	if err := f.SetSheetRow(loadSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, 0, len(keys)+1)
		cells = append(cells, row.HourEnd.UTC().Format("2006-01-02 15:04:05"))
		for _, key := range keys {
			if v := row.MW[key]; v != nil {
				cells = append(cells, *v)
			} else {
				cells = append(cells, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(loadSheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
