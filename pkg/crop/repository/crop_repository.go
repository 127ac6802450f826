package repository

import "agrorisk/entities"

type CropRepository interface {
	Create(c *entities.Crop) error
	FindByID(id uint) (*entities.Crop, error)
	All() ([]entities.Crop, error)
	Update(c *entities.Crop) error
	// Delete removes the crop and, in the same transaction, its predictions,
	// the alerts of those predictions, and its infestation records.
	Delete(id uint) error
}
