package entities

import "time"

type Crop struct {
	CropID       uint      `gorm:"primaryKey" json:"crop_id"`
	Name         string    `json:"name"`
	CropType     string    `json:"crop_type"` // CEREAL|VEGETABLE|FRUIT|LEGUME|CASH_CROP|OTHER
	GrowthStage  string    `json:"growth_stage"` // SEEDLING|VEGETATIVE|FLOWERING|FRUITING|MATURITY|HARVEST
	PlantingDate time.Time `json:"planting_date"`
	Location     string    `gorm:"index" json:"location"`
	AreaHectares float64   `json:"area_hectares"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	CropCereal    = "CEREAL"
	CropVegetable = "VEGETABLE"
	CropFruit     = "FRUIT"
	CropLegume    = "LEGUME"
	CropCashCrop  = "CASH_CROP"
	CropOther     = "OTHER"
)

const (
	StageSeedling   = "SEEDLING"
	StageVegetative = "VEGETATIVE"
	StageFlowering  = "FLOWERING"
	StageFruiting   = "FRUITING"
	StageMaturity   = "MATURITY"
	StageHarvest    = "HARVEST"
)
