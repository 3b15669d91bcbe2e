package models

import "time"

type Table struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RestaurantID   string    `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	Name           string    `gorm:"type:varchar(50);not null" json:"name"`
	Capacity       int       `gorm:"not null" json:"capacity"`
	Status         string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	Size           string    `gorm:"type:varchar(20);not null;default:'medium'" json:"size"`
	CombinedWith   []uint    `gorm:"serializer:json;type:text" json:"combined_with,omitempty"`
	AssignedServer *uint     `gorm:"index" json:"assigned_server"`
	CurrentOrder   *uint     `json:"current_order"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
