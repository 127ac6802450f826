package repositoryImp

import (
	"gorm.io/gorm"

	"agrorisk/entities"
	"agrorisk/pkg/infestation/repository"
)

type infestationRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.InfestationRepository { return &infestationRepo{db} }

func (r *infestationRepo) Create(rec *entities.InfestationRecord) error {
	return r.db.Create(rec).Error
}

func (r *infestationRepo) RecentForPair(cropID, pestID uint, limit int) ([]entities.InfestationRecord, error) {
	var out []entities.InfestationRecord
	if err := r.db.Where("crop_id = ? AND pest_id = ?", cropID, pestID).
		Order("date DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *infestationRepo) All() ([]entities.InfestationRecord, error) {
	var out []entities.InfestationRecord
	if err := r.db.Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *infestationRepo) ListForCrop(cropID uint) ([]entities.InfestationRecord, error) {
	var out []entities.InfestationRecord
	if err := r.db.Where("crop_id = ?", cropID).Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
