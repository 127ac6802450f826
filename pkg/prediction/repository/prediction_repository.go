package repository

import (
	"time"

	"agrorisk/entities"
)

// ListFilter narrows prediction queries; zero values mean "no filter".
type ListFilter struct {
	RiskLevel string
	CropID    uint
	PestID    uint
}

type PredictionRepository interface {
	// Upsert inserts or, when the (crop, pest, date) row already exists,
	// overwrites its score and confidence. The insert is a single
	// conditional write on the unique key; concurrent calls can never
	// produce two rows. Returns true only for a fresh insert.
	Upsert(p *entities.RiskPrediction) (bool, error)
	// HighRiskForDate returns HIGH-level predictions for the given day with
	// crop and pest preloaded.
	HighRiskForDate(date time.Time) ([]entities.RiskPrediction, error)
	ForDate(date time.Time) ([]entities.RiskPrediction, error)
	List(f ListFilter) ([]entities.RiskPrediction, error)
}
