package models

import "time"

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	RestaurantID   string      `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	TableID        uint        `gorm:"not null;index" json:"table_id"`
	ServerID       *uint       `gorm:"index" json:"server_id"`
	Status         string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount    float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	SpecialNotes   string      `gorm:"type:text" json:"special_notes"`
	IsHighPriority bool        `gorm:"not null;default:false" json:"is_high_priority"`
	IdempotencyKey *string     `gorm:"type:varchar(64);index" json:"idempotency_key,omitempty"`
	Items          []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
}

// Terminal reports whether no further status change is possible.
func (o *Order) Terminal() bool {
	return o.Status == OrderCompleted || o.Status == OrderCanceled
}
