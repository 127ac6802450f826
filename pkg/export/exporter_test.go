package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"agrorisk/database"
	"agrorisk/entities"
	alertRepoImp "agrorisk/pkg/alert/repositoryImp"
	cropRepoImp "agrorisk/pkg/crop/repositoryImp"
	pestRepoImp "agrorisk/pkg/pest/repositoryImp"
	predrepo "agrorisk/pkg/prediction/repository"
	predRepoImp "agrorisk/pkg/prediction/repositoryImp"
	weatherRepoImp "agrorisk/pkg/weather/repositoryImp"
)

func newExporter(t *testing.T) (*Exporter, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	e := New(predRepoImp.New(db), cropRepoImp.New(db), pestRepoImp.New(db),
		weatherRepoImp.New(db), alertRepoImp.New(db))
	return e, db
}

func seedExportData(t *testing.T, db *gorm.DB) {
	t.Helper()
	day := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&entities.Crop{
		Name: "Tomato", CropType: entities.CropVegetable,
		GrowthStage: entities.StageFlowering, PlantingDate: day.AddDate(0, -2, 0),
		Location: "Pune", AreaHectares: 2,
	}).Error)
	require.NoError(t, db.Create(&entities.Pest{
		Name: "Late Blight", PestType: "FUNGAL", SeverityLevel: entities.SeverityCritical,
	}).Error)
	require.NoError(t, db.Create(&entities.RiskPrediction{
		CropID: 1, PestID: 1, PredictionDate: day, RiskScore: 88, Confidence: 65,
	}).Error)
	require.NoError(t, db.Create(&entities.WeatherRecord{
		Date: day, Location: "Pune", TemperatureAvg: 25, Humidity: 85, Rainfall: 10,
	}).Error)
	require.NoError(t, db.Create(&entities.Alert{
		PredictionID: 1, Severity: entities.AlertCritical, Message: "outbreak risk",
	}).Error)
}

func TestPredictionsCSV(t *testing.T) {
	e, db := newExporter(t)
	seedExportData(t, db)

	var buf bytes.Buffer
	require.NoError(t, e.PredictionsCSV(&buf, predrepo.ListFilter{}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Prediction Date", "Crop Name", "Crop Type", "Growth Stage",
		"Pest/Disease Name", "Pest Type", "Risk Score (%)", "Risk Level",
		"Confidence (%)", "Contributing Factors",
	}, rows[0])
	assert.Equal(t, "2024-07-15", rows[1][0])
	assert.Equal(t, "Tomato", rows[1][1])
	assert.Equal(t, "Late Blight", rows[1][4])
	assert.Equal(t, "88.00", rows[1][6])
	assert.Equal(t, "HIGH", rows[1][7])
	// Empty factors render as a dash.
	assert.Equal(t, "-", rows[1][9])
}

func TestBundleZip_Members(t *testing.T) {
	e, db := newExporter(t)
	seedExportData(t, db)

	var buf bytes.Buffer
	require.NoError(t, e.BundleZip(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"predictions.csv", "crops.csv", "pests.csv", "weather_data.csv", "alerts.csv",
	}, names)

	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		rows, err := csv.NewReader(rc).ReadAll()
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		assert.Len(t, rows, 2, f.Name) // header plus the one seeded row
	}
}

func TestRiskReportXLSX(t *testing.T) {
	e, db := newExporter(t)
	seedExportData(t, db)

	var buf bytes.Buffer
	require.NoError(t, e.RiskReportXLSX(&buf))

	x, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer x.Close()

	assert.ElementsMatch(t, []string{"Summary", "Predictions"}, x.GetSheetList())

	total, err := x.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", total)
	high, err := x.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "1", high)

	crop, err := x.GetCellValue("Predictions", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Tomato", crop)
}
