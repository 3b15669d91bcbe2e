// Package localqueue is the durable fallback for public orders that could
// not reach the shared store. It is a single-node write-ahead queue backed
// by a local sqlite file: one record per queued order plus a small
// per-restaurant index that can be listed without loading every payload.
package localqueue

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dinehall/utils"
)

// PendingItem snapshots everything needed to replay one line item.
type PendingItem struct {
	MenuItemID      uint    `json:"menu_item_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
	SpecialRequests string  `json:"special_requests"`
	Status          string  `json:"status"`
	CourseType      string  `json:"course_type"`
}

// PendingLocalOrder is a denormalized copy of a failed public submission.
// LocalID is minted locally (unix milliseconds) and is distinct from any
// server-assigned order id.
type PendingLocalOrder struct {
	LocalID      int64         `gorm:"primaryKey;autoIncrement:false" json:"local_id"`
	RestaurantID string        `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	TableID      uint          `gorm:"not null" json:"table_id"`
	Status       string        `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount  float64       `gorm:"not null" json:"total_amount"`
	Items        []PendingItem `gorm:"serializer:json;type:text" json:"items"`
	CreatedAt    time.Time     `gorm:"not null" json:"created_at"`
}

// IndexEntry lets the staff UI enumerate queued orders cheaply.
type IndexEntry struct {
	RestaurantID string    `gorm:"primaryKey;type:varchar(36)" json:"restaurant_id"`
	LocalID      int64     `gorm:"primaryKey;autoIncrement:false" json:"local_id"`
	TableID      uint      `gorm:"not null" json:"table_id"`
	Timestamp    time.Time `gorm:"not null" json:"timestamp"`
}

func (IndexEntry) TableName() string { return "pending_order_index" }

type Queue struct {
	db *gorm.DB
}

// Open creates or opens the queue file and migrates its two tables.
func Open(path string) (*Queue, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&PendingLocalOrder{}, &IndexEntry{}); err != nil {
		return nil, err
	}
	return &Queue{db: db}, nil
}

// NewLocalID mints a queue key. Millisecond resolution matches the ids the
// diner sees on a queued confirmation.
func NewLocalID() int64 {
	return time.Now().UnixMilli()
}

// Enqueue stores the order payload and its index entry together.
func (q *Queue) Enqueue(ctx context.Context, entry PendingLocalOrder) error {
	if entry.LocalID == 0 {
		entry.LocalID = NewLocalID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		idx := IndexEntry{
			RestaurantID: entry.RestaurantID,
			LocalID:      entry.LocalID,
			TableID:      entry.TableID,
			Timestamp:    entry.CreatedAt,
		}
		return tx.Create(&idx).Error
	})
}

// List returns the restaurant's queued orders, oldest first.
func (q *Queue) List(ctx context.Context, restaurantID string) ([]IndexEntry, error) {
	var entries []IndexEntry
	err := q.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("timestamp asc").
		Find(&entries).Error
	if err != nil {
		return nil, utils.StoreUnavailable("could not list pending orders", err)
	}
	return entries, nil
}

// Get loads one queued order payload.
func (q *Queue) Get(ctx context.Context, restaurantID string, localID int64) (*PendingLocalOrder, error) {
	var entry PendingLocalOrder
	err := q.db.WithContext(ctx).
		Where("restaurant_id = ? AND local_id = ?", restaurantID, localID).
		First(&entry).Error
	if err != nil {
		return nil, utils.WrapDB(err, "pending order %d not found", localID)
	}
	return &entry, nil
}

// Remove deletes the payload and its index entry. Called only after a
// successful replay.
func (q *Queue) Remove(ctx context.Context, restaurantID string, localID int64) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ? AND local_id = ?", restaurantID, localID).
			Delete(&PendingLocalOrder{}).Error; err != nil {
			return err
		}
		return tx.Where("restaurant_id = ? AND local_id = ?", restaurantID, localID).
			Delete(&IndexEntry{}).Error
	})
}
