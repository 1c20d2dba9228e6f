package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the ledger's four tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Food{},
		&CompositeItem{},
		&CompositeFoodLink{},
		&Consumption{},
	)
}
