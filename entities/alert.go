package entities

import "time"

// Alert references exactly one prediction. DedupDate is set by the automatic
// generator only; the (prediction_id, dedup_date) unique index gives at most
// one generated alert per prediction per day, while manual alerts keep it NULL
// and are exempt (SQLite treats NULLs in a unique index as distinct).
type Alert struct {
	AlertID      uint       `gorm:"primaryKey" json:"alert_id"`
	PredictionID uint       `gorm:"index;uniqueIndex:idx_alert_dedup" json:"prediction_id"`
	DedupDate    *time.Time `gorm:"uniqueIndex:idx_alert_dedup" json:"-"`

	Severity string `json:"severity"` // INFO|WARNING|DANGER|CRITICAL
	Message  string `json:"message"`
	IsRead   bool   `json:"is_read"`

	Prediction RiskPrediction `json:"prediction,omitempty"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	AlertInfo     = "INFO"
	AlertWarning  = "WARNING"
	AlertDanger   = "DANGER"
	AlertCritical = "CRITICAL"
)
