package models

import "time"

type Reservation struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RestaurantID    string    `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	CustomerName    string    `gorm:"type:varchar(255);not null" json:"customer_name"`
	Date            time.Time `gorm:"not null;index" json:"date"`
	PartySize       int       `gorm:"not null" json:"party_size"`
	TableIDs        []uint    `gorm:"serializer:json;type:text" json:"table_ids"`
	SpecialRequests string    `gorm:"type:text" json:"special_requests"`
	Status          string    `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
