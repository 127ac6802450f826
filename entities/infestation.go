package entities

import "time"

// InfestationRecord is historical ground truth for one observed outbreak.
type InfestationRecord struct {
	RecordID     uint      `gorm:"primaryKey" json:"record_id"`
	CropID       uint      `gorm:"index" json:"crop_id"`
	PestID       uint      `gorm:"index" json:"pest_id"`
	Date         time.Time `json:"date"`
	Severity     int       `json:"severity"` // 1-5
	AreaAffected float64   `json:"area_affected"`
	Notes        string    `json:"notes"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
