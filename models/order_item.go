package models

import "time"

// OrderItem carries a name/price snapshot taken at order time so that
// historical orders are unaffected by later menu edits. The live menu row
// is only re-joined for display enrichment (prep time, availability).
type OrderItem struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	OrderID         uint       `gorm:"not null;index" json:"order_id"`
	Order           Order      `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID      uint       `gorm:"not null" json:"menu_item_id"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	Price           float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity        int        `gorm:"not null" json:"quantity"`
	SpecialRequests string     `gorm:"type:text" json:"special_requests"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CourseType      string     `gorm:"type:varchar(20);not null;default:'main'" json:"course_type"`
	StartedAt       *time.Time `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`

	// Display-only enrichment from the live menu row, never persisted.
	PreparationTime int  `gorm:"-" json:"preparation_time"`
	Available       bool `gorm:"-" json:"available"`
	MenuMissing     bool `gorm:"-" json:"menu_missing,omitempty"`
}
