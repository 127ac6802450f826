package repository

import "agrorisk/entities"

type PestRepository interface {
	Create(p *entities.Pest) error
	FindByID(id uint) (*entities.Pest, error)
	All() ([]entities.Pest, error)
	Update(p *entities.Pest) error
	// Delete removes the pest and, in the same transaction, its predictions,
	// the alerts of those predictions, and its infestation records.
	Delete(id uint) error
	// MeasuresFor lists preventive measures for a pest, most effective first.
	MeasuresFor(pestID uint) ([]entities.PreventiveMeasure, error)
}
