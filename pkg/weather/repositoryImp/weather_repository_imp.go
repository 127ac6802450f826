package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"agrorisk/entities"
	"agrorisk/pkg/weather/repository"
)

type weatherRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.WeatherRepository { return &weatherRepo{db} }

func (r *weatherRepo) Create(w *entities.WeatherRecord) error {
	w.Date = entities.DateOnly(w.Date)
	return r.db.Create(w).Error
}

func (r *weatherRepo) Window(location string, from, to time.Time) ([]entities.WeatherRecord, error) {
	var out []entities.WeatherRecord
	q := r.db.Where("date >= ? AND date <= ?", entities.DateOnly(from), entities.DateOnly(to))
	if location != "" {
		q = q.Where("location LIKE ?", "%"+location+"%")
	}
	if err := q.Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *weatherRepo) Latest(limit int) ([]entities.WeatherRecord, error) {
	var out []entities.WeatherRecord
	if err := r.db.Order("date DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *weatherRepo) Delete(id uint) error {
	return r.db.Delete(&entities.WeatherRecord{}, id).Error
}
