package database

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"dinehall/config"
	"dinehall/models"
)

// InitDB opens the primary store.
func InitDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates/updates the record collections.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Staff{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
	)
}

// Seed creates the starter floor plan for a restaurant that has no tables
// yet. Mirrors the sample data new accounts get.
func Seed(db *gorm.DB, restaurantID string) error {
	var count int64
	if err := db.Model(&models.Table{}).Where("restaurant_id = ?", restaurantID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tables := []models.Table{
		{RestaurantID: restaurantID, Name: "T1", Capacity: 2, Status: models.TableAvailable, Size: models.TableSizeSmall},
		{RestaurantID: restaurantID, Name: "T2", Capacity: 4, Status: models.TableAvailable, Size: models.TableSizeMedium},
		{RestaurantID: restaurantID, Name: "T3", Capacity: 6, Status: models.TableAvailable, Size: models.TableSizeLarge},
		{RestaurantID: restaurantID, Name: "T4", Capacity: 8, Status: models.TableAvailable, Size: models.TableSizeBooth},
	}
	return db.Create(&tables).Error
}
