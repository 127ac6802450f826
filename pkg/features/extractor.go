package features

import (
	"time"

	"github.com/montanaflynn/stats"

	"agrorisk/entities"
)

// Vector positions. Order is load-bearing: the trained model and the
// fallback scorer both address features by index.
const (
	AvgTemperature = iota
	AvgHumidity
	TotalRainfall
	AvgWindSpeed
	TempRisk
	HumidityRisk
	RainfallRisk
	CropTypeCode
	GrowthStageCode
	CropArea
	PestTypeCode
	PestSeverityCode
	RecentInfestations
	AvgHistoricalSeverity
	DaysSinceLast
	IsMonsoon
	IsWinter
	IsSummer

	Count // total vector length
)

// noHistoryDays is the fixed "no signal" sentinel when the pair has no
// recorded history, not a measured quantity.
const noHistoryDays = 365

var cropTypeCodes = map[string]float64{
	entities.CropCereal:    1,
	entities.CropVegetable: 2,
	entities.CropFruit:     3,
	entities.CropLegume:    4,
	entities.CropCashCrop:  5,
	entities.CropOther:     6,
}

var growthStageCodes = map[string]float64{
	entities.StageSeedling:   1,
	entities.StageVegetative: 2,
	entities.StageFlowering:  3,
	entities.StageFruiting:   4,
	entities.StageMaturity:   5,
	entities.StageHarvest:    6,
}

var pestTypeCodes = map[string]float64{
	"INSECT":    1,
	"FUNGAL":    2,
	"BACTERIAL": 3,
	"VIRAL":     4,
	"WEED":      5,
	"NEMATODE":  6,
	"OTHER":     7,
}

var severityCodes = map[string]float64{
	entities.SeverityLow:      1,
	entities.SeverityMedium:   2,
	entities.SeverityHigh:     3,
	entities.SeverityCritical: 4,
}

// Extract builds the fixed-order feature vector for one scoring call.
// Callers select the weather window and history slice; this function has no
// hidden state. Unknown enum values encode as 0.
func Extract(crop *entities.Crop, pest *entities.Pest, weather []entities.WeatherRecord, history []entities.InfestationRecord, now time.Time) []float64 {
	v := make([]float64, Count)

	if len(weather) > 0 {
		temps := make([]float64, len(weather))
		hums := make([]float64, len(weather))
		winds := make([]float64, len(weather))
		for i, w := range weather {
			temps[i] = w.TemperatureAvg
			hums[i] = w.Humidity
			winds[i] = w.WindSpeed
			v[TotalRainfall] += w.Rainfall
		}
		v[AvgTemperature], _ = stats.Mean(temps)
		v[AvgHumidity], _ = stats.Mean(hums)
		v[AvgWindSpeed], _ = stats.Mean(winds)

		if v[AvgTemperature] >= 20 && v[AvgTemperature] <= 30 {
			v[TempRisk] = 1
		}
		if v[AvgHumidity] > 70 {
			v[HumidityRisk] = 1
		}
		if v[TotalRainfall] > 50 {
			v[RainfallRisk] = 1
		}
	}

	v[CropTypeCode] = cropTypeCodes[crop.CropType]
	v[GrowthStageCode] = growthStageCodes[crop.GrowthStage]
	v[CropArea] = crop.AreaHectares
	v[PestTypeCode] = pestTypeCodes[pest.PestType]
	v[PestSeverityCode] = severityCodes[pest.SeverityLevel]

	v[DaysSinceLast] = noHistoryDays
	if len(history) > 0 {
		sevs := make([]float64, len(history))
		var last time.Time
		for i, r := range history {
			if r.CropID == crop.CropID && r.PestID == pest.PestID {
				v[RecentInfestations]++
			}
			sevs[i] = float64(r.Severity)
			if r.Date.After(last) {
				last = r.Date
			}
		}
		v[AvgHistoricalSeverity], _ = stats.Mean(sevs)
		v[DaysSinceLast] = float64(int(entities.DateOnly(now).Sub(entities.DateOnly(last)).Hours() / 24))
	}

	switch now.Month() {
	case time.June, time.July, time.August, time.September:
		v[IsMonsoon] = 1
	case time.December, time.January, time.February:
		v[IsWinter] = 1
	case time.March, time.April, time.May:
		v[IsSummer] = 1
	}

	return v
}
