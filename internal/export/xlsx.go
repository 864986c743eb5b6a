// Package export renders calculation results as spreadsheet workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"porttariff/internal/domain"
)

const (
	// ResultsSheet holds one row per due.
	ResultsSheet = "Dues"
	// VesselSheet holds the vessel particulars the dues were calculated for.
	VesselSheet = "Vessel"

	// ContentType is the MIME type of the rendered workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteResults writes results and the vessel description to w as an XLSX
// workbook. Rows follow the result order.
func WriteResults(w io.Writer, vesselInfo string, results *domain.ResultSet) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return fmt.Errorf("renaming results sheet: %w", err)
	}
	if err := writeResultsSheet(wb, results); err != nil {
		return err
	}
	if err := writeVesselSheet(wb, vesselInfo); err != nil {
		return err
	}

	if _, err := wb.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeResultsSheet(wb *excelize.File, results *domain.ResultSet) error {
	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := wb.SetSheetRow(ResultsSheet, "A1", &[]interface{}{"Due", "Amount"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := wb.SetCellStyle(ResultsSheet, "A1", "B1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, line := range results.Lines() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(ResultsSheet, cell, &[]interface{}{line.Name, line.Amount}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := wb.SetColWidth(ResultsSheet, "A", "A", 36); err != nil {
		return err
	}
	return wb.SetColWidth(ResultsSheet, "B", "B", 24)
}

func writeVesselSheet(wb *excelize.File, vesselInfo string) error {
	if _, err := wb.NewSheet(VesselSheet); err != nil {
		return fmt.Errorf("creating vessel sheet: %w", err)
	}

	row := 1
	for _, line := range strings.Split(vesselInfo, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := wb.SetCellStr(VesselSheet, cell, line); err != nil {
			return fmt.Errorf("writing vessel line %d: %w", row, err)
		}
		row++
	}
	return wb.SetColWidth(VesselSheet, "A", "A", 80)
}
