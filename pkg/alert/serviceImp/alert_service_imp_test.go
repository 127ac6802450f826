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
	alertRepoImp "agrorisk/pkg/alert/repositoryImp"
	predRepoImp "agrorisk/pkg/prediction/repositoryImp"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, entities.AlertCritical, SeverityFor(85))
	assert.Equal(t, entities.AlertCritical, SeverityFor(80))
	assert.Equal(t, entities.AlertDanger, SeverityFor(79.9))
	assert.Equal(t, entities.AlertDanger, SeverityFor(72))
	assert.Equal(t, entities.AlertWarning, SeverityFor(69.9))
	assert.Equal(t, entities.AlertWarning, SeverityFor(67))
}

func seedHighRisk(t *testing.T, db *gorm.DB, day time.Time, score float64) {
	t.Helper()
	require.NoError(t, db.Create(&entities.Crop{Name: "Tomato"}).Error)
	require.NoError(t, db.Create(&entities.Pest{Name: "Late Blight"}).Error)
	require.NoError(t, db.Create(&entities.RiskPrediction{
		CropID: 1, PestID: 1, PredictionDate: day, RiskScore: score,
	}).Error)
}

func TestGenerateFromPredictions_DedupPerDay(t *testing.T) {
	now := time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC)
	db := testDB(t)
	seedHighRisk(t, db, entities.DateOnly(now), 85)

	clock := clockwork.NewFakeClockAt(now)
	svc := NewAlertService(predRepoImp.New(db), alertRepoImp.New(db), clock)

	created, err := svc.GenerateFromPredictions()
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	// Second pass the same day finds the alert already present.
	created, err = svc.GenerateFromPredictions()
	require.NoError(t, err)
	assert.Zero(t, created)

	var alerts []entities.Alert
	require.NoError(t, db.Find(&alerts).Error)
	require.Len(t, alerts, 1)
	assert.Equal(t, entities.AlertCritical, alerts[0].Severity)
	assert.Equal(t,
		"High risk of Late Blight outbreak detected on Tomato. Risk score: 85.0%. Immediate preventive action recommended.",
		alerts[0].Message)
}

func TestGenerateFromPredictions_SkipsNonHigh(t *testing.T) {
	now := time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC)
	db := testDB(t)
	seedHighRisk(t, db, entities.DateOnly(now), 60) // MEDIUM

	svc := NewAlertService(predRepoImp.New(db), alertRepoImp.New(db), clockwork.NewFakeClockAt(now))
	created, err := svc.GenerateFromPredictions()
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestCreateCustom_ExemptFromDedup(t *testing.T) {
	now := time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC)
	db := testDB(t)
	seedHighRisk(t, db, entities.DateOnly(now), 85)

	svc := NewAlertService(predRepoImp.New(db), alertRepoImp.New(db), clockwork.NewFakeClockAt(now))
	_, err := svc.GenerateFromPredictions()
	require.NoError(t, err)

	// Two manual alerts for the same prediction on the same day both land.
	for i := 0; i < 2; i++ {
		_, err := svc.CreateCustom(1, entities.AlertInfo, "scouting scheduled")
		require.NoError(t, err)
	}

	var n int64
	require.NoError(t, db.Model(&entities.Alert{}).Count(&n).Error)
	assert.EqualValues(t, 3, n)
}

func TestCleanupOld(t *testing.T) {
	now := time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC)
	db := testDB(t)
	seedHighRisk(t, db, entities.DateOnly(now), 85)

	old := entities.Alert{PredictionID: 1, Severity: entities.AlertWarning, Message: "stale", IsRead: true}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Model(&entities.Alert{}).
		Where("alert_id = ?", old.AlertID).
		Update("created_at", now.AddDate(0, 0, -45)).Error)

	keepUnread := entities.Alert{PredictionID: 1, Severity: entities.AlertWarning, Message: "old but unread"}
	require.NoError(t, db.Create(&keepUnread).Error)
	require.NoError(t, db.Model(&entities.Alert{}).
		Where("alert_id = ?", keepUnread.AlertID).
		Update("created_at", now.AddDate(0, 0, -45)).Error)

	svc := NewAlertService(predRepoImp.New(db), alertRepoImp.New(db), clockwork.NewFakeClockAt(now))
	deleted, err := svc.CleanupOld(30)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var n int64
	require.NoError(t, db.Model(&entities.Alert{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
