package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"agrorisk/entities"
	predrepo "agrorisk/pkg/prediction/repository"
)

// RiskReportXLSX writes the risk-assessment workbook: a summary sheet with
// counts per risk level and a detail sheet of predictions ordered by score.
func (e *Exporter) RiskReportXLSX(w io.Writer) error {
	preds, err := e.preds.List(predrepo.ListFilter{})
	if err != nil {
		return err
	}

	x := excelize.NewFile()
	defer x.Close()

	const summary = "Summary"
	if err := x.SetSheetName("Sheet1", summary); err != nil {
		return err
	}

	counts := map[string]int{}
	for _, p := range preds {
		counts[p.RiskLevel]++
	}

	rows := [][]any{
		{"Risk Assessment Report"},
		{},
		{"Total predictions", len(preds)},
		{"High risk", counts[entities.RiskHigh]},
		{"Medium risk", counts[entities.RiskMedium]},
		{"Low risk", counts[entities.RiskLow]},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := x.SetSheetRow(summary, cell, &row); err != nil {
			return err
		}
	}

	const detail = "Predictions"
	if _, err := x.NewSheet(detail); err != nil {
		return err
	}
	header := []any{"Date", "Crop", "Pest", "Risk Score", "Risk Level", "Confidence", "Contributing Factors"}
	if err := x.SetSheetRow(detail, "A1", &header); err != nil {
		return err
	}
	for i, p := range preds {
		row := []any{
			p.PredictionDate.Format("2006-01-02"),
			p.Crop.Name, p.Pest.Name,
			p.RiskScore, p.RiskLevel, p.Confidence,
			p.ContributingFactors,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := x.SetSheetRow(detail, cell, &row); err != nil {
			return err
		}
	}

	if _, err := x.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
