package repositoryImp

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agrorisk/entities"
	"agrorisk/pkg/prediction/repository"
)

type predictionRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PredictionRepository { return &predictionRepo{db} }

// Upsert relies on the unique index over (crop_id, pest_id, prediction_date).
// The INSERT ... ON CONFLICT DO NOTHING either claims the key or tells us the
// row exists; the follow-up UPDATE is keyed on the same constraint, so two
// concurrent generation runs cannot double-insert.
func (r *predictionRepo) Upsert(p *entities.RiskPrediction) (bool, error) {
	p.PredictionDate = entities.DateOnly(p.PredictionDate)

	res := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "crop_id"}, {Name: "pest_id"}, {Name: "prediction_date"},
		},
		DoNothing: true,
	}).Create(p)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Existing row: overwrite score and confidence in place. Updates with a
	// map skip the BeforeSave hook, so the derived level is set here too.
	err := r.db.Model(&entities.RiskPrediction{}).
		Where("crop_id = ? AND pest_id = ? AND prediction_date = ?", p.CropID, p.PestID, p.PredictionDate).
		Updates(map[string]any{
			"risk_score": p.RiskScore,
			"risk_level": entities.RiskLevelFor(p.RiskScore),
			"confidence": p.Confidence,
		}).Error
	return false, err
}

func (r *predictionRepo) HighRiskForDate(date time.Time) ([]entities.RiskPrediction, error) {
	var out []entities.RiskPrediction
	if err := r.db.Preload("Crop").Preload("Pest").
		Where("prediction_date = ? AND risk_level = ?", entities.DateOnly(date), entities.RiskHigh).
		Order("risk_score DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *predictionRepo) ForDate(date time.Time) ([]entities.RiskPrediction, error) {
	var out []entities.RiskPrediction
	if err := r.db.Preload("Crop").Preload("Pest").
		Where("prediction_date = ?", entities.DateOnly(date)).
		Order("risk_score DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *predictionRepo) List(f repository.ListFilter) ([]entities.RiskPrediction, error) {
	q := r.db.Preload("Crop").Preload("Pest").
		Order("prediction_date DESC, risk_score DESC")
	if f.RiskLevel != "" {
		q = q.Where("risk_level = ?", f.RiskLevel)
	}
	if f.CropID != 0 {
		q = q.Where("crop_id = ?", f.CropID)
	}
	if f.PestID != 0 {
		q = q.Where("pest_id = ?", f.PestID)
	}
	var out []entities.RiskPrediction
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
