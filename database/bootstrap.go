// database/bootstrap.go
package database

import (
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"agrorisk/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}

// Migrate is separate from OpenSQLite so tests can run it against an
// in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Crop{},
		&entities.Pest{},
		&entities.PreventiveMeasure{},
		&entities.WeatherRecord{},
		&entities.InfestationRecord{},
		&entities.RiskPrediction{},
		&entities.Alert{},
	)
}
