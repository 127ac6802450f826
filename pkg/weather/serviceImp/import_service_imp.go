package serviceImp

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jszwec/csvutil"

	"agrorisk/entities"
	"agrorisk/observability"
	"agrorisk/pkg/weather/repository"
)

// weatherRow mirrors the import schema. rainfall and wind_speed columns are
// optional and default to zero when absent.
type weatherRow struct {
	Date           string  `csv:"date"`
	Location       string  `csv:"location"`
	TemperatureAvg float64 `csv:"temperature_avg"`
	Humidity       float64 `csv:"humidity"`
	Rainfall       float64 `csv:"rainfall,omitempty"`
	WindSpeed      float64 `csv:"wind_speed,omitempty"`
}

var requiredColumns = []string{"date", "location", "temperature_avg", "humidity"}

// RowError captures one rejected row; the import keeps going.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult reports both counts; Success is false only for file-level
// failures (unreadable input, missing required columns).
type ImportResult struct {
	Success       bool       `json:"success"`
	ImportedCount int        `json:"imported_count"`
	Errors        []RowError `json:"errors"`
}

type ImportSvc struct {
	repo    repository.WeatherRepository
	metrics *observability.Metrics
}

func NewImportService(repo repository.WeatherRepository, metrics *observability.Metrics) *ImportSvc {
	return &ImportSvc{repo: repo, metrics: metrics}
}

// ImportCSV reads weather observations row by row. A malformed row is
// recorded with its 1-based line number (header is line 1) and skipped;
// the remaining rows still import.
func (s *ImportSvc) ImportCSV(r io.Reader) ImportResult {
	res := ImportResult{}

	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		res.Errors = append(res.Errors, RowError{Row: 1, Message: fmt.Sprintf("read header: %v", err)})
		return res
	}

	header := map[string]bool{}
	for _, h := range dec.Header() {
		header[h] = true
	}
	for _, col := range requiredColumns {
		if !header[col] {
			res.Errors = append(res.Errors, RowError{Row: 1, Message: fmt.Sprintf("missing required column %q", col)})
			return res
		}
	}

	res.Success = true
	for rowNum := 2; ; rowNum++ {
		var row weatherRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			s.rejectRow(&res, rowNum, err.Error())
			continue
		}

		rec, err := rowToRecord(row)
		if err != nil {
			s.rejectRow(&res, rowNum, err.Error())
			continue
		}
		if err := s.repo.Create(rec); err != nil {
			s.rejectRow(&res, rowNum, fmt.Sprintf("save: %v", err))
			continue
		}
		res.ImportedCount++
		s.metrics.WeatherRowsIngested.Inc()
	}
	return res
}

func (s *ImportSvc) rejectRow(res *ImportResult, rowNum int, msg string) {
	res.Errors = append(res.Errors, RowError{Row: rowNum, Message: msg})
	s.metrics.WeatherRowErrors.Inc()
}

func rowToRecord(row weatherRow) (*entities.WeatherRecord, error) {
	date, err := time.Parse("2006-01-02", row.Date)
	if err != nil {
		return nil, fmt.Errorf("bad date %q", row.Date)
	}
	if row.Location == "" {
		return nil, errors.New("missing location")
	}
	if row.Humidity < 0 || row.Humidity > 100 {
		return nil, fmt.Errorf("humidity %.1f out of range [0,100]", row.Humidity)
	}
	if row.Rainfall < 0 {
		return nil, fmt.Errorf("negative rainfall %.1f", row.Rainfall)
	}
	if row.WindSpeed < 0 {
		return nil, fmt.Errorf("negative wind speed %.1f", row.WindSpeed)
	}
	return &entities.WeatherRecord{
		Date:           date,
		Location:       row.Location,
		TemperatureAvg: row.TemperatureAvg,
		Humidity:       row.Humidity,
		Rainfall:       row.Rainfall,
		WindSpeed:      row.WindSpeed,
	}, nil
}
