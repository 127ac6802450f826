package repositoryImp

import (
	"gorm.io/gorm"

	"agrorisk/entities"
	"agrorisk/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) Create(c *entities.Crop) error { return r.db.Create(c).Error }

func (r *cropRepo) FindByID(id uint) (*entities.Crop, error) {
	var c entities.Crop
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cropRepo) All() ([]entities.Crop, error) {
	var out []entities.Crop
	if err := r.db.Order("planting_date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cropRepo) Update(c *entities.Crop) error { return r.db.Save(c).Error }

// Delete cascades explicitly: dependent rows never outlive their crop.
func (r *cropRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM alerts WHERE prediction_id IN (SELECT prediction_id FROM risk_predictions WHERE crop_id = ?)`, id).Error; err != nil {
			return err
		}
		if err := tx.Where("crop_id = ?", id).Delete(&entities.RiskPrediction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("crop_id = ?", id).Delete(&entities.InfestationRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Crop{}, id).Error
	})
}
