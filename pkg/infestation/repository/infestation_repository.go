package repository

import "agrorisk/entities"

type InfestationRepository interface {
	Create(rec *entities.InfestationRecord) error
	// RecentForPair returns up to limit records for the (crop, pest) pair,
	// newest first.
	RecentForPair(cropID, pestID uint, limit int) ([]entities.InfestationRecord, error)
	All() ([]entities.InfestationRecord, error)
	ListForCrop(cropID uint) ([]entities.InfestationRecord, error)
}
