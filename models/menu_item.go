package models

import "time"

type MenuItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RestaurantID    string    `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category        string    `gorm:"type:varchar(100)" json:"category"`
	CourseType      string    `gorm:"type:varchar(20);not null;default:'main'" json:"course_type"`
	PreparationTime int       `gorm:"not null;default:0" json:"preparation_time"`
	Available       bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
