// Package database opens the Postgres engine and keeps the schema current.
// The handle is passed explicitly to repositories; nothing here is global.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gadgetline/storebot/models"
)

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate creates the order_status enum and brings all tables up to date.
func Migrate(db *gorm.DB) error {
	err := db.Exec(`DO $$ BEGIN
		CREATE TYPE order_status AS ENUM ('PROCESSING', 'READY_FOR_PICKUP', 'COMPLETED', 'CANCELLED');
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`).Error
	if err != nil {
		return fmt.Errorf("create order_status enum: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductSpecification{},
		&models.Banner{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
