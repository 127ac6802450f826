package entities

import "time"

// WeatherRecord is one observation per (date, location). Dates are stored
// truncated to midnight UTC so the unique key compares whole days.
type WeatherRecord struct {
	WeatherID      uint      `gorm:"primaryKey" json:"weather_id"`
	Date           time.Time `gorm:"uniqueIndex:idx_weather_date_location" json:"date"`
	Location       string    `gorm:"uniqueIndex:idx_weather_date_location" json:"location"`
	TemperatureAvg float64   `json:"temperature_avg"`
	TemperatureMin *float64  `json:"temperature_min"`
	TemperatureMax *float64  `json:"temperature_max"`
	Humidity       float64   `json:"humidity"`   // percent, 0-100
	Rainfall       float64   `json:"rainfall"`   // mm
	WindSpeed      float64   `json:"wind_speed"` // km/h

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
