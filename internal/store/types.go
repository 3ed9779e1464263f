package store

import (
	"errors"
	"time"

	"hotel-ops-backend/internal/model"
	"hotel-ops-backend/internal/parse"
)

var (
	// ErrNotFound is returned when a record does not exist in the tenant's scope.
	ErrNotFound = errors.New("not found")
	// ErrForbiddenRoom is returned when a room belongs to another tenant.
	ErrForbiddenRoom = errors.New("invalid room")
	// ErrDuplicateRoom is returned when a tenant already has a room with that number.
	ErrDuplicateRoom = errors.New("room number already exists")
	// ErrInvalidState is returned for an unknown room state.
	ErrInvalidState = errors.New("invalid room state")
	// ErrInvalidDates is returned when check-out is not after check-in.
	ErrInvalidDates = errors.New("check-out date must be after check-in date")
	// ErrPastBooking is returned when check-in is before today.
	ErrPastBooking = errors.New("cannot create booking in the past")
	// ErrOverlap is returned when the room is already booked for part of the stay.
	ErrOverlap = errors.New("room not available for selected dates")
	// ErrEndpointTaken is returned when a push endpoint is registered to another tenant.
	ErrEndpointTaken = errors.New("subscription endpoint is registered to another tenant")
)

// BookingRequest carries the fields needed to create a booking.
type BookingRequest struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	RoomID      int64
	CheckIn     time.Time // UTC midnight
	CheckOut    time.Time // UTC midnight
}

// CheckInRequest carries the fields recorded at check-in.
type CheckInRequest struct {
	Time  parse.Clock
	Notes string
}

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) intersect.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// ValidRoomState reports whether state is one of the known room states.
func ValidRoomState(state string) bool {
	for _, s := range model.RoomStates {
		if s == state {
			return true
		}
	}
	return false
}
