package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-ops-backend/internal/model"
)

// CreateBooking validates the stay, upserts the guest by email and books the room.
//
// The overlap check reads the current bookings and is not serialized with the
// insert, so two concurrent requests for the same dates can both succeed.
func (s *gormStore) CreateBooking(ctx context.Context, tenantID int64, req BookingRequest, today time.Time) (model.Booking, error) {
	if !req.CheckOut.After(req.CheckIn) {
		return model.Booking{}, ErrInvalidDates
	}
	if req.CheckIn.Before(today) {
		return model.Booking{}, ErrPastBooking
	}

	var booking model.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.Preload("RoomType").First(&room, req.RoomID).Error; err != nil {
			return notFound(err, fmt.Sprintf("room %d", req.RoomID))
		}
		if room.TenantID != tenantID {
			return ErrForbiddenRoom
		}

		var overlapping int64
		if err := tx.Model(&model.Booking{}).
			Where("room_id = ? AND is_active = ? AND check_in_date < ? AND check_out_date > ?",
				room.ID, true, req.CheckOut, req.CheckIn).
			Count(&overlapping).Error; err != nil {
			return fmt.Errorf("failed to check availability of room %d: %w", room.ID, err)
		}
		if overlapping > 0 {
			return ErrOverlap
		}

		guest, err := upsertGuest(tx, tenantID, req)
		if err != nil {
			return err
		}

		nights := int(req.CheckOut.Sub(req.CheckIn).Hours() / 24)
		booking = model.Booking{
			GuestID:      guest.ID,
			RoomID:       room.ID,
			CheckInDate:  datatypes.Date(req.CheckIn),
			CheckOutDate: datatypes.Date(req.CheckOut),
			TotalPrice:   math.Round(room.PricePerNight*float64(nights)*100) / 100,
			IsActive:     true,
		}
		if err := tx.Omit("Guest", "Room").Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		booking.Guest = guest
		booking.Room = room
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

// upsertGuest updates the tenant's guest with the same email or creates one.
func upsertGuest(tx *gorm.DB, tenantID int64, req BookingRequest) (model.Guest, error) {
	var phone *string
	if p := strings.TrimSpace(req.PhoneNumber); p != "" {
		phone = &p
	}

	var guest model.Guest
	err := tx.Where("tenant_id = ? AND email = ?", tenantID, req.Email).First(&guest).Error
	switch {
	case err == nil:
		if err := tx.Model(&guest).Updates(map[string]any{
			"first_name":   req.FirstName,
			"last_name":    req.LastName,
			"phone_number": phone,
		}).Error; err != nil {
			return model.Guest{}, fmt.Errorf("failed to update guest %d: %w", guest.ID, err)
		}
		guest.FirstName, guest.LastName, guest.PhoneNumber = req.FirstName, req.LastName, phone
		return guest, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		guest = model.Guest{
			TenantID:    tenantID,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			PhoneNumber: phone,
		}
		if err := tx.Create(&guest).Error; err != nil {
			return model.Guest{}, fmt.Errorf("failed to create guest: %w", err)
		}
		return guest, nil

	default:
		return model.Guest{}, fmt.Errorf("failed to look up guest: %w", err)
	}
}

func (s *gormStore) tenantBookings(ctx context.Context, tenantID int64) *gorm.DB {
	tx := s.db.WithContext(ctx)
	return tx.Preload("Guest").Preload("Room.RoomType").
		Where("room_id IN (?)", tenantRoomIDs(tx, tenantID))
}

// TodayCheckIns returns bookings arriving today that have not checked in yet.
func (s *gormStore) TodayCheckIns(ctx context.Context, tenantID int64, today time.Time) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.tenantBookings(ctx, tenantID).
		Where("check_in_date = ? AND checked_in = ?", today, false).
		Order("id").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list today's check-ins: %w", err)
	}
	return bookings, nil
}

// CheckIn records the arrival of a booking's guest and marks the room occupied.
func (s *gormStore) CheckIn(ctx context.Context, tenantID, bookingID int64, req CheckInRequest) (model.Booking, error) {
	var booking model.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Guest").Preload("Room").
			Where("id = ? AND room_id IN (?)", bookingID, tenantRoomIDs(tx, tenantID)).
			First(&booking).Error; err != nil {
			return notFound(err, fmt.Sprintf("booking %d", bookingID))
		}

		at := datatypes.NewTime(req.Time.Hour, req.Time.Minute, req.Time.Second, 0)
		if err := tx.Model(&booking).Omit("Guest", "Room").Updates(map[string]any{
			"check_in_time": at,
			"checked_in":    true,
			"notes":         req.Notes,
		}).Error; err != nil {
			return fmt.Errorf("failed to check in booking %d: %w", bookingID, err)
		}
		if err := tx.Model(&model.Room{}).Where("id = ?", booking.RoomID).
			Update("state", model.RoomOccupied).Error; err != nil {
			return fmt.Errorf("failed to occupy room %d: %w", booking.RoomID, err)
		}

		booking.CheckInTime = &at
		booking.CheckedIn = true
		booking.Notes = req.Notes
		booking.Room.State = model.RoomOccupied
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

// InHouseBookings returns active bookings whose guest has checked in.
func (s *gormStore) InHouseBookings(ctx context.Context, tenantID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.tenantBookings(ctx, tenantID).
		Where("is_active = ? AND checked_in = ?", true, true).
		Order("id").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list in-house bookings: %w", err)
	}
	return bookings, nil
}

// BookingsNewestFirst returns all of the tenant's bookings, latest check-in first.
func (s *gormStore) BookingsNewestFirst(ctx context.Context, tenantID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := s.tenantBookings(ctx, tenantID).
		Order("check_in_date DESC").
		Order("id").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
