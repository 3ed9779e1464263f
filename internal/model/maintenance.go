package model

import "time"

// Maintenance task statuses.
const (
	TaskPending   = "pending"
	TaskCompleted = "completed"
)

// MaintenanceTask is a repair request for a room. Priority 1 is the most urgent.
type MaintenanceTask struct {
	ID          int64     `gorm:"primaryKey"`
	RoomID      int64     `gorm:"index;not null"`
	Description string    `gorm:"size:255;not null"`
	Priority    int       `gorm:"not null;default:3;index"`
	Status      string    `gorm:"size:15;not null;default:pending;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	Room Room `gorm:"constraint:OnDelete:CASCADE"`
}

// RoomServiceOrder is an open room-service request. Completed orders are deleted.
type RoomServiceOrder struct {
	ID        int64     `gorm:"primaryKey"`
	RoomID    int64     `gorm:"index;not null"`
	Item      string    `gorm:"size:100;not null"`
	Timestamp time.Time `gorm:"autoCreateTime;not null"`

	Room Room `gorm:"constraint:OnDelete:CASCADE"`
}
