package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hejazi/internal/port"
)

const evaluationSheet = "Evaluations"

var evaluationColumns = []string{
	"Company",
	"Period",
	"Evaluator",
	"Total Score",
	"Max Score",
	"Percentage",
	"Status",
	"Evaluated At",
	"Notes",
}

// WriteEvaluationsXLSX renders evaluations into a single-sheet workbook.
func WriteEvaluationsXLSX(w io.Writer, rows []port.EvaluationExportRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), evaluationSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(evaluationColumns))
	for i, c := range evaluationColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(evaluationSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(evaluationColumns))
	if err := f.SetCellStyle(evaluationSheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i := range rows {
		e := &rows[i]
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			e.CompanyName,
			e.PeriodMonth.Format("2006-01"),
			e.EvaluatorName,
			e.TotalScore,
			e.MaxScore,
			e.Percentage,
			string(e.Status),
			e.EvaluatedAt.Format("2006-01-02 15:04"),
			e.Notes,
		}
		if err := f.SetSheetRow(evaluationSheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(evaluationSheet, "A", "A", 32); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
