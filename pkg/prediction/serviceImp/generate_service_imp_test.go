package serviceImp

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agrorisk/database"
	"agrorisk/entities"
	"agrorisk/observability"
	alertRepoImp "agrorisk/pkg/alert/repositoryImp"
	alertSvcImp "agrorisk/pkg/alert/serviceImp"
	cropRepoImp "agrorisk/pkg/crop/repositoryImp"
	infRepoImp "agrorisk/pkg/infestation/repositoryImp"
	pestRepoImp "agrorisk/pkg/pest/repositoryImp"
	predRepoImp "agrorisk/pkg/prediction/repositoryImp"
	"agrorisk/pkg/riskmodel"
	weatherRepoImp "agrorisk/pkg/weather/repositoryImp"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newEngine wires a full generation stack over one in-memory database with a
// frozen clock and an untrained model, so every score is the rule-based one.
func newEngine(t *testing.T, db *gorm.DB, now time.Time) (*GenerateSvc, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(now)
	preds := predRepoImp.New(db)
	alertSvc := alertSvcImp.NewAlertService(preds, alertRepoImp.New(db), clock)
	svc := NewGenerateService(
		cropRepoImp.New(db), pestRepoImp.New(db), weatherRepoImp.New(db),
		infRepoImp.New(db), preds,
		riskmodel.New(), alertSvc,
		observability.NewMetricsForTesting(), clock,
	)
	return svc, clock
}

// seedScenario sets up one crop against two pests:
//   - "Late Blight", CRITICAL severity, two past infestations: rule score 88
//     (HIGH, alert-worthy)
//   - "Aphid", LOW severity, no history: rule score 47.5 (MEDIUM, no alert)
func seedScenario(t *testing.T, db *gorm.DB, today time.Time) {
	t.Helper()
	crop := entities.Crop{
		Name: "Tomato", CropType: entities.CropVegetable,
		GrowthStage: entities.StageFlowering, Location: "Pune", AreaHectares: 2,
	}
	require.NoError(t, db.Create(&crop).Error)

	blight := entities.Pest{Name: "Late Blight", PestType: "FUNGAL", SeverityLevel: entities.SeverityCritical}
	aphid := entities.Pest{Name: "Aphid", PestType: "INSECT", SeverityLevel: entities.SeverityLow}
	require.NoError(t, db.Create(&blight).Error)
	require.NoError(t, db.Create(&aphid).Error)

	// A week of warm, humid, wet weather trips all three risk flags.
	for i := 1; i <= 7; i++ {
		require.NoError(t, db.Create(&entities.WeatherRecord{
			Date: today.AddDate(0, 0, -i), Location: "Pune",
			TemperatureAvg: 25, Humidity: 85, Rainfall: 10,
		}).Error)
	}

	for i := 1; i <= 2; i++ {
		require.NoError(t, db.Create(&entities.InfestationRecord{
			CropID: crop.CropID, PestID: blight.PestID,
			Date: today.AddDate(0, 0, -30*i), Severity: 4,
		}).Error)
	}
}

func TestRun_CreatesPredictionsAndAlerts(t *testing.T) {
	now := time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC)
	db := testDB(t)
	seedScenario(t, db, entities.DateOnly(now))
	svc, _ := newEngine(t, db, now)

	res, err := svc.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, res.PredictionsCreated)
	assert.Equal(t, 1, res.AlertsCreated)

	var preds []entities.RiskPrediction
	require.NoError(t, db.Order("risk_score desc").Find(&preds).Error)
	require.Len(t, preds, 2)
	assert.InDelta(t, 88.0, preds[0].RiskScore, 1e-9)
	assert.Equal(t, entities.RiskHigh, preds[0].RiskLevel)
	assert.InDelta(t, 47.5, preds[1].RiskScore, 1e-9)
	assert.Equal(t, entities.RiskMedium, preds[1].RiskLevel)
	assert.InDelta(t, riskmodel.FallbackConfidence, preds[0].Confidence, 1e-9)

	var alerts []entities.Alert
	require.NoError(t, db.Find(&alerts).Error)
	require.Len(t, alerts, 1)
	assert.Equal(t, entities.AlertCritical, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "Late Blight")
	assert.Contains(t, alerts[0].Message, "Tomato")
}

func TestRun_SameDayRerunIsIdempotent(t *testing.T) {
	now := time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC)
	db := testDB(t)
	seedScenario(t, db, entities.DateOnly(now))
	svc, _ := newEngine(t, db, now)

	_, err := svc.Run()
	require.NoError(t, err)

	res, err := svc.Run()
	require.NoError(t, err)
	assert.Zero(t, res.PredictionsCreated)
	assert.Zero(t, res.AlertsCreated)

	var predCount, alertCount int64
	require.NoError(t, db.Model(&entities.RiskPrediction{}).Count(&predCount).Error)
	require.NoError(t, db.Model(&entities.Alert{}).Count(&alertCount).Error)
	assert.EqualValues(t, 2, predCount)
	assert.EqualValues(t, 1, alertCount)
}

func TestRun_NextDayCreatesFreshRows(t *testing.T) {
	now := time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC)
	db := testDB(t)
	seedScenario(t, db, entities.DateOnly(now))
	svc, clock := newEngine(t, db, now)

	_, err := svc.Run()
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	res, err := svc.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, res.PredictionsCreated)
	assert.Equal(t, 1, res.AlertsCreated)
}

func TestRun_SuppressionNeedsBothQuietScoreAndNoHistory(t *testing.T) {
	now := time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC)
	db := testDB(t)

	// No weather anywhere: a LOW severity pest scores 7.5.
	crop := entities.Crop{
		Name: "Wheat", CropType: entities.CropCereal,
		GrowthStage: entities.StageVegetative, Location: "Nagpur", AreaHectares: 1,
	}
	require.NoError(t, db.Create(&crop).Error)
	pest := entities.Pest{Name: "Aphid", PestType: "INSECT", SeverityLevel: entities.SeverityLow}
	require.NoError(t, db.Create(&pest).Error)

	svc, _ := newEngine(t, db, now)
	res, err := svc.Run()
	require.NoError(t, err)
	assert.Zero(t, res.PredictionsCreated)

	// Same quiet score, but any history forces the row.
	require.NoError(t, db.Create(&entities.InfestationRecord{
		CropID: crop.CropID, PestID: pest.PestID,
		Date: entities.DateOnly(now).AddDate(0, 0, -60), Severity: 1,
	}).Error)

	res, err = svc.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, res.PredictionsCreated)

	var pred entities.RiskPrediction
	require.NoError(t, db.First(&pred).Error)
	assert.InDelta(t, 14.5, pred.RiskScore, 1e-9)
	assert.Equal(t, entities.RiskLow, pred.RiskLevel)
}
