package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"

	alertrepo "agrorisk/pkg/alert/repository"
	croprepo "agrorisk/pkg/crop/repository"
	pestrepo "agrorisk/pkg/pest/repository"
	predrepo "agrorisk/pkg/prediction/repository"
	weatherrepo "agrorisk/pkg/weather/repository"
)

// recentLimit bounds the weather and alert slices in the combined bundle.
const recentLimit = 100

type Exporter struct {
	preds   predrepo.PredictionRepository
	crops   croprepo.CropRepository
	pests   pestrepo.PestRepository
	weather weatherrepo.WeatherRepository
	alerts  alertrepo.AlertRepository
}

func New(
	preds predrepo.PredictionRepository,
	crops croprepo.CropRepository,
	pests pestrepo.PestRepository,
	weather weatherrepo.WeatherRepository,
	alerts alertrepo.AlertRepository,
) *Exporter {
	return &Exporter{preds: preds, crops: crops, pests: pests, weather: weather, alerts: alerts}
}

// PredictionsCSV writes the full prediction export, optionally filtered.
func (e *Exporter) PredictionsCSV(w io.Writer, f predrepo.ListFilter) error {
	preds, err := e.preds.List(f)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"Prediction Date", "Crop Name", "Crop Type", "Growth Stage",
		"Pest/Disease Name", "Pest Type", "Risk Score (%)", "Risk Level",
		"Confidence (%)", "Contributing Factors",
	}); err != nil {
		return err
	}
	for _, p := range preds {
		factors := p.ContributingFactors
		if factors == "" {
			factors = "-"
		}
		if err := cw.Write([]string{
			p.PredictionDate.Format("2006-01-02"),
			p.Crop.Name, p.Crop.CropType, p.Crop.GrowthStage,
			p.Pest.Name, p.Pest.PestType,
			fmt.Sprintf("%.2f", p.RiskScore), p.RiskLevel,
			fmt.Sprintf("%.2f", p.Confidence), factors,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// BundleZip writes the combined export: five fixed-schema CSVs in one archive.
func (e *Exporter) BundleZip(w io.Writer) error {
	zw := zip.NewWriter(w)

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"predictions.csv", e.writePredictions},
		{"crops.csv", e.writeCrops},
		{"pests.csv", e.writePests},
		{"weather_data.csv", e.writeWeather},
		{"alerts.csv", e.writeAlerts},
	}
	for _, f := range files {
		entry, err := zw.Create(f.name)
		if err != nil {
			return err
		}
		if err := f.write(entry); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return zw.Close()
}

func (e *Exporter) writePredictions(w io.Writer) error {
	preds, err := e.preds.List(predrepo.ListFilter{})
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Crop", "Pest", "Risk Score", "Risk Level", "Confidence"}); err != nil {
		return err
	}
	for _, p := range preds {
		if err := cw.Write([]string{
			p.PredictionDate.Format("2006-01-02"),
			p.Crop.Name, p.Pest.Name,
			fmt.Sprintf("%.2f", p.RiskScore), p.RiskLevel, fmt.Sprintf("%.2f", p.Confidence),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *Exporter) writeCrops(w io.Writer) error {
	crops, err := e.crops.All()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Type", "Growth Stage", "Planting Date", "Area (hectares)", "Location"}); err != nil {
		return err
	}
	for _, c := range crops {
		if err := cw.Write([]string{
			c.Name, c.CropType, c.GrowthStage,
			c.PlantingDate.Format("2006-01-02"),
			fmt.Sprintf("%.2f", c.AreaHectares), c.Location,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *Exporter) writePests(w io.Writer) error {
	pests, err := e.pests.All()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Type", "Description", "Severity", "Affected Crops"}); err != nil {
		return err
	}
	for _, p := range pests {
		desc := p.Description
		if len(desc) > 200 {
			desc = desc[:200]
		}
		affected := ""
		for i, c := range p.AffectedCrops {
			if i > 0 {
				affected += ", "
			}
			affected += c.Name
		}
		if err := cw.Write([]string{p.Name, p.PestType, desc, p.SeverityLevel, affected}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *Exporter) writeWeather(w io.Writer) error {
	records, err := e.weather.Latest(recentLimit)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Location", "Temp Min", "Temp Max", "Temp Avg", "Humidity", "Rainfall", "Wind Speed"}); err != nil {
		return err
	}
	optional := func(v *float64) string {
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%.2f", *v)
	}
	for _, rec := range records {
		if err := cw.Write([]string{
			rec.Date.Format("2006-01-02"), rec.Location,
			optional(rec.TemperatureMin), optional(rec.TemperatureMax),
			fmt.Sprintf("%.2f", rec.TemperatureAvg),
			fmt.Sprintf("%.2f", rec.Humidity),
			fmt.Sprintf("%.2f", rec.Rainfall),
			fmt.Sprintf("%.2f", rec.WindSpeed),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *Exporter) writeAlerts(w io.Writer) error {
	alerts, err := e.alerts.Recent(recentLimit)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Created", "Severity", "Message", "Is Read", "Crop", "Pest", "Risk Score"}); err != nil {
		return err
	}
	for _, a := range alerts {
		read := "No"
		if a.IsRead {
			read = "Yes"
		}
		if err := cw.Write([]string{
			a.CreatedAt.Format("2006-01-02 15:04:05"), a.Severity, a.Message, read,
			a.Prediction.Crop.Name, a.Prediction.Pest.Name,
			fmt.Sprintf("%.2f", a.Prediction.RiskScore),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
