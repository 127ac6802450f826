package repositoryImp

import (
	"gorm.io/gorm"

	"agrorisk/entities"
	"agrorisk/pkg/pest/repository"
)

type pestRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PestRepository { return &pestRepo{db} }

func (r *pestRepo) Create(p *entities.Pest) error { return r.db.Create(p).Error }

func (r *pestRepo) FindByID(id uint) (*entities.Pest, error) {
	var p entities.Pest
	if err := r.db.Preload("AffectedCrops").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pestRepo) All() ([]entities.Pest, error) {
	var out []entities.Pest
	if err := r.db.Preload("AffectedCrops").Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pestRepo) Update(p *entities.Pest) error { return r.db.Save(p).Error }

func (r *pestRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM alerts WHERE prediction_id IN (SELECT prediction_id FROM risk_predictions WHERE pest_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Where("pest_id = ?", id).Delete(&entities.RiskPrediction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pest_id = ?", id).Delete(&entities.InfestationRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pest_id = ?", id).Delete(&entities.PreventiveMeasure{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Pest{}, id).Error
	})
}

func (r *pestRepo) MeasuresFor(pestID uint) ([]entities.PreventiveMeasure, error) {
	var out []entities.PreventiveMeasure
	if err := r.db.Where("pest_id = ?", pestID).
		Order("effectiveness DESC, action ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
