package model

import (
	"time"

	"gorm.io/datatypes"
)

// Guest is a person who has booked with a tenant. Email is unique per tenant.
type Guest struct {
	ID          int64   `gorm:"primaryKey"`
	TenantID    int64   `gorm:"uniqueIndex:idx_guest_tenant_email;not null"`
	FirstName   string  `gorm:"size:50;not null"`
	LastName    string  `gorm:"size:50;not null"`
	Email       string  `gorm:"uniqueIndex:idx_guest_tenant_email;size:254;not null"`
	PhoneNumber *string `gorm:"size:15"`
}

// FullName returns "First Last".
func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// Booking reserves a room for the half-open date range [CheckInDate, CheckOutDate).
type Booking struct {
	ID           int64           `gorm:"primaryKey"`
	GuestID      int64           `gorm:"index;not null"`
	RoomID       int64           `gorm:"index;not null"`
	CheckInDate  datatypes.Date  `gorm:"index;index:idx_booking_dates;index:idx_booking_active_checkin,priority:2;not null"`
	CheckOutDate datatypes.Date  `gorm:"index;index:idx_booking_dates;not null"`
	TotalPrice   float64         `gorm:"not null"`
	IsActive     bool            `gorm:"index:idx_booking_active_checkin,priority:1;not null;default:true"`
	CheckInTime  *datatypes.Time `gorm:"type:time"`
	CheckedIn    bool            `gorm:"not null;default:false"`
	Notes        string          `gorm:"type:text"`
	CreatedAt    time.Time

	// Associations
	Guest Guest `gorm:"constraint:OnDelete:CASCADE"`
	Room  Room  `gorm:"constraint:OnDelete:RESTRICT"`
}

// Nights returns the number of nights between check-in and check-out.
func (b Booking) Nights() int {
	return int(time.Time(b.CheckOutDate).Sub(time.Time(b.CheckInDate)).Hours() / 24)
}
