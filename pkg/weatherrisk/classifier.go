package weatherrisk

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"agrorisk/entities"
)

// IsHighRisk reports whether a single observation is favorable for pest
// outbreaks: high humidity + moderate temperature + recent rainfall.
func IsHighRisk(w entities.WeatherRecord) bool {
	return w.Humidity > 70 && w.TemperatureAvg >= 20 && w.TemperatureAvg <= 30 && w.Rainfall > 5
}

// WindowStats summarizes a window of observations.
type WindowStats struct {
	HasData        bool     `json:"has_data"`
	DaysAnalyzed   int      `json:"days_analyzed"`
	AvgTemperature float64  `json:"avg_temperature"`
	AvgHumidity    float64  `json:"avg_humidity"`
	TotalRainfall  float64  `json:"total_rainfall"`
	AvgWindSpeed   float64  `json:"avg_wind_speed"`
	HighRiskDays   int      `json:"high_risk_days"`
	RiskPercentage float64  `json:"risk_percentage"`
	RiskLevel      string   `json:"risk_level"`
	RiskFactors    []string `json:"risk_factors"`
}

// AnalyzeWindow aggregates observations into window-level risk statistics.
// An empty window reports HasData=false and zero metrics.
func AnalyzeWindow(obs []entities.WeatherRecord) WindowStats {
	if len(obs) == 0 {
		return WindowStats{HasData: false, RiskLevel: entities.RiskLow}
	}

	temps := make([]float64, len(obs))
	hums := make([]float64, len(obs))
	winds := make([]float64, len(obs))
	total := 0.0
	highRisk := 0
	for i, w := range obs {
		temps[i] = w.TemperatureAvg
		hums[i] = w.Humidity
		winds[i] = w.WindSpeed
		total += w.Rainfall
		if IsHighRisk(w) {
			highRisk++
		}
	}

	avgTemp, _ := stats.Mean(temps)
	avgHum, _ := stats.Mean(hums)
	avgWind, _ := stats.Mean(winds)

	pct := float64(highRisk) / float64(len(obs)) * 100

	level := entities.RiskLow
	if pct >= 50 {
		level = entities.RiskHigh
	} else if pct >= 30 {
		level = entities.RiskMedium
	}

	// Fixed checklist, order preserved.
	var factors []string
	if avgHum > 70 {
		factors = append(factors, "High average humidity (>70%)")
	}
	if total > 50 {
		factors = append(factors, fmt.Sprintf("Significant rainfall (%.1fmm over %d days)", total, len(obs)))
	}
	if avgTemp >= 20 && avgTemp <= 30 {
		factors = append(factors, "Optimal temperature range for pest activity")
	}

	return WindowStats{
		HasData:        true,
		DaysAnalyzed:   len(obs),
		AvgTemperature: avgTemp,
		AvgHumidity:    avgHum,
		TotalRainfall:  total,
		AvgWindSpeed:   avgWind,
		HighRiskDays:   highRisk,
		RiskPercentage: pct,
		RiskLevel:      level,
		RiskFactors:    factors,
	}
}
