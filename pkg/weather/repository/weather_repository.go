package repository

import (
	"time"

	"agrorisk/entities"
)

type WeatherRepository interface {
	// Create fails on a duplicate (date, location) pair.
	Create(w *entities.WeatherRecord) error
	// Window returns observations for a location between from and to
	// inclusive, newest first. Location matching is a case-insensitive
	// substring match.
	Window(location string, from, to time.Time) ([]entities.WeatherRecord, error)
	// Latest returns the most recent records across all locations.
	Latest(limit int) ([]entities.WeatherRecord, error)
	// Observations are append-only; a bad record is deleted and re-imported.
	Delete(id uint) error
}
