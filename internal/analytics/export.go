package analytics

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"devshowcase/showcase-backend/internal/auth"
)

// ExportXLSX writes the analytics overview as an Excel workbook with one
// sheet per section. Admin only.
func (s *Service) ExportXLSX(ctx context.Context, caller auth.Identity, w io.Writer) error {
	overview, err := s.Overview(ctx, caller)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	f.SetSheetName("Sheet1", "Overview")
	totals := overview.Totals
	if err := writeSheet(f, "Overview", headerStyle,
		[]string{"Metric", "Value"},
		[][]interface{}{
			{"Total projects", totals.TotalProjects},
			{"Pending projects", totals.PendingProjects},
			{"Approved projects", totals.ApprovedProjects},
			{"Rejected projects", totals.RejectedProjects},
			{"Total users", totals.TotalUsers},
		}); err != nil {
		return err
	}

	monthRows := make([][]interface{}, 0, len(overview.ByMonth))
	for _, m := range overview.ByMonth {
		monthRows = append(monthRows, []interface{}{m.Month, m.Count})
	}
	if _, err := f.NewSheet("Submissions by Month"); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeSheet(f, "Submissions by Month", headerStyle,
		[]string{"Month", "Submissions"}, monthRows); err != nil {
		return err
	}

	tagRows := make([][]interface{}, 0, len(overview.TopTags))
	for _, t := range overview.TopTags {
		tagRows = append(tagRows, []interface{}{t.Name, t.Count})
	}
	if _, err := f.NewSheet("Top Tags"); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeSheet(f, "Top Tags", headerStyle,
		[]string{"Tag", "Projects"}, tagRows); err != nil {
		return err
	}

	techRows := make([][]interface{}, 0, len(overview.TopTech))
	for _, t := range overview.TopTech {
		techRows = append(techRows, []interface{}{t.Tech, t.Count})
	}
	if _, err := f.NewSheet("Top Tech"); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeSheet(f, "Top Tech", headerStyle,
		[]string{"Technology", "Projects"}, techRows); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, columns []string, rows [][]interface{}) error {
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to set cell value: %w", err)
		}
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("failed to set cell value: %w", err)
			}
		}
	}

	for i := range columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, colName, colName, 22)
	}
	return nil
}
