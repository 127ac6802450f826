package serviceImp

import (
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agrorisk/database"
	"agrorisk/entities"
	"agrorisk/observability"
	weatherRepoImp "agrorisk/pkg/weather/repositoryImp"
)

func newImportSvc(t *testing.T) (*ImportSvc, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewImportService(weatherRepoImp.New(db), observability.NewMetricsForTesting()), db
}

func TestImportCSV_PartialSuccess(t *testing.T) {
	svc, db := newImportSvc(t)

	csvData := strings.Join([]string{
		"date,location,temperature_avg,humidity,rainfall",
		"2024-07-01,Pune,25.0,80,12",
		"2024-07-02,Pune,26.5,140,0", // humidity out of range
		"2024-07-03,Pune,24.0,75,3",
		"2024-07-04,Pune,23.0,70,0",
		"2024-07-05,Pune,22.0,65,1",
	}, "\n")

	res := svc.ImportCSV(strings.NewReader(csvData))
	assert.True(t, res.Success)
	assert.Equal(t, 4, res.ImportedCount)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Message, "humidity")

	var n int64
	require.NoError(t, db.Model(&entities.WeatherRecord{}).Count(&n).Error)
	assert.EqualValues(t, 4, n)
}

func TestImportCSV_MissingRequiredColumn(t *testing.T) {
	svc, db := newImportSvc(t)

	res := svc.ImportCSV(strings.NewReader("date,location,temperature_avg\n2024-07-01,Pune,25.0\n"))
	assert.False(t, res.Success)
	assert.Zero(t, res.ImportedCount)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Message, "humidity")

	var n int64
	require.NoError(t, db.Model(&entities.WeatherRecord{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestImportCSV_OptionalColumnsDefaultToZero(t *testing.T) {
	svc, db := newImportSvc(t)

	res := svc.ImportCSV(strings.NewReader("date,location,temperature_avg,humidity\n2024-07-01,Pune,25.0,80\n"))
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ImportedCount)
	assert.Empty(t, res.Errors)

	var rec entities.WeatherRecord
	require.NoError(t, db.First(&rec).Error)
	assert.Zero(t, rec.Rainfall)
	assert.Zero(t, rec.WindSpeed)
}

func TestImportCSV_BadRowsReported(t *testing.T) {
	svc, _ := newImportSvc(t)

	csvData := strings.Join([]string{
		"date,location,temperature_avg,humidity,rainfall,wind_speed",
		"07/01/2024,Pune,25.0,80,0,0",  // bad date format
		"2024-07-02,,25.0,80,0,0",      // missing location
		"2024-07-03,Pune,25.0,80,-4,0", // negative rainfall
		"2024-07-04,Pune,25.0,80,0,-1", // negative wind
		"2024-07-05,Pune,25.0,80,0,0",
	}, "\n")

	res := svc.ImportCSV(strings.NewReader(csvData))
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ImportedCount)
	require.Len(t, res.Errors, 4)
	assert.Equal(t, []int{2, 3, 4, 5}, []int{
		res.Errors[0].Row, res.Errors[1].Row, res.Errors[2].Row, res.Errors[3].Row,
	})
}

func TestImportCSV_DuplicateDateLocationRejected(t *testing.T) {
	svc, _ := newImportSvc(t)

	csvData := strings.Join([]string{
		"date,location,temperature_avg,humidity",
		"2024-07-01,Pune,25.0,80",
		"2024-07-01,Pune,26.0,82",
	}, "\n")

	res := svc.ImportCSV(strings.NewReader(csvData))
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ImportedCount)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row)
}
