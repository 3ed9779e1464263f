package model

import "time"

// Room states.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
	RoomCleaning    = "cleaning"
)

// RoomStates lists every state a room may be in.
var RoomStates = []string{RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning}

// RoomStateLabel returns the display name of a room state.
func RoomStateLabel(state string) string {
	switch state {
	case RoomAvailable:
		return "Available"
	case RoomOccupied:
		return "Occupied"
	case RoomMaintenance:
		return "Under Maintenance"
	case RoomCleaning:
		return "Being Cleaned"
	}
	return state
}

// RoomType is hotel-wide reference data shared by all tenants.
type RoomType struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Capacity    int    `gorm:"not null;default:1" json:"capacity"`
}

// Room is a bookable room owned by a tenant.
type Room struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	TenantID      int64     `gorm:"uniqueIndex:idx_room_tenant_number;not null" json:"-"`
	Number        string    `gorm:"uniqueIndex:idx_room_tenant_number;size:10;not null" json:"number"`
	RoomTypeID    int64     `gorm:"index;not null" json:"room_type_id"`
	PricePerNight float64   `gorm:"not null" json:"price"`
	State         string    `gorm:"size:15;not null;default:available;index" json:"state"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`

	// Associations
	RoomType RoomType `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
