package entities

import "time"

type Pest struct {
	PestID        uint   `gorm:"primaryKey" json:"pest_id"`
	Name          string `json:"name"`
	PestType      string `json:"pest_type"` // INSECT|FUNGAL|BACTERIAL|VIRAL|WEED|NEMATODE|OTHER
	Description   string `json:"description"`
	SeverityLevel string `json:"severity_level"` // LOW|MEDIUM|HIGH|CRITICAL

	// Informational only; scoring never reads this relation.
	AffectedCrops []Crop `gorm:"many2many:pest_affected_crops" json:"affected_crops,omitempty"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	SeverityLow      = "LOW"
	SeverityMedium   = "MEDIUM"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

type PreventiveMeasure struct {
	MeasureID     uint   `gorm:"primaryKey" json:"measure_id"`
	PestID        uint   `gorm:"index" json:"pest_id"`
	Action        string `json:"action"`
	Description   string `json:"description"`
	Effectiveness string `json:"effectiveness"` // LOW|MEDIUM|HIGH|VERY_HIGH
	Timing        string `json:"timing"`
	Dosage        string `json:"dosage"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
