package entities

import (
	"time"

	"gorm.io/gorm"
)

type RiskPrediction struct {
	PredictionID   uint      `gorm:"primaryKey" json:"prediction_id"`
	CropID         uint      `gorm:"uniqueIndex:idx_prediction_key" json:"crop_id"`
	PestID         uint      `gorm:"uniqueIndex:idx_prediction_key" json:"pest_id"`
	PredictionDate time.Time `gorm:"uniqueIndex:idx_prediction_key" json:"prediction_date"`

	RiskScore  float64 `json:"risk_score"` // 0-100
	RiskLevel  string  `json:"risk_level"` // derived from RiskScore, never set by hand
	Confidence float64 `json:"confidence"` // 0-100

	ContributingFactors string `json:"contributing_factors"`

	Crop Crop `json:"crop,omitempty"`
	Pest Pest `json:"pest,omitempty"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// RiskLevelFor buckets a 0-100 score: LOW <=33, MEDIUM <=66, HIGH above.
func RiskLevelFor(score float64) string {
	switch {
	case score <= 33:
		return RiskLow
	case score <= 66:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// BeforeSave keeps RiskLevel in lockstep with RiskScore on every write path.
func (p *RiskPrediction) BeforeSave(*gorm.DB) error {
	p.RiskLevel = RiskLevelFor(p.RiskScore)
	return nil
}
