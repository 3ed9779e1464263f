package model

import "time"

// Notification priorities.
const (
	PriorityNormal = "Normal"
	PriorityUrgent = "Urgent"
)

// DNDEntry marks a room number as do-not-disturb for a tenant.
type DNDEntry struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	TenantID   int64     `gorm:"uniqueIndex:idx_dnd_tenant_room;not null" json:"-"`
	RoomNumber string    `gorm:"uniqueIndex:idx_dnd_tenant_room;size:10;not null" json:"room"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"since"`
}

// TableName keeps the historical table name.
func (DNDEntry) TableName() string { return "dnd_sets" }

// Notification is a queued message for a tenant, consumed oldest first.
type Notification struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	TenantID  int64     `gorm:"index;not null" json:"-"`
	Message   string    `gorm:"size:255;not null" json:"message"`
	Priority  string    `gorm:"size:20;not null;default:Normal" json:"priority"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// ActionLog is an append-only audit line.
type ActionLog struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	TenantID  int64     `gorm:"index;not null" json:"-"`
	Action    string    `gorm:"size:255;not null" json:"action"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// WaitlistEntry is a guest waiting for a room type.
type WaitlistEntry struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	TenantID  int64     `gorm:"index;not null" json:"-"`
	GuestName string    `gorm:"size:100;not null" json:"guest_name"`
	RoomType  string    `gorm:"size:50;not null" json:"room_type"`
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// TableName keeps the historical table name.
func (WaitlistEntry) TableName() string { return "room_waitlists" }
