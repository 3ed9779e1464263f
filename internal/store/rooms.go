package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"hotel-ops-backend/internal/model"
)

// ListRoomTypes returns all room types ordered by name.
func (s *gormStore) ListRoomTypes(ctx context.Context) ([]model.RoomType, error) {
	var types []model.RoomType
	if err := s.db.WithContext(ctx).Order("name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	return types, nil
}

// CreateRoomType inserts a room type.
func (s *gormStore) CreateRoomType(ctx context.Context, rt *model.RoomType) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.RoomType{}).Where("name = ?", rt.Name).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check room type %q: %w", rt.Name, err)
	}
	if count > 0 {
		return fmt.Errorf("room type %q: %w", rt.Name, ErrDuplicateRoom)
	}
	if err := s.db.WithContext(ctx).Create(rt).Error; err != nil {
		return fmt.Errorf("failed to create room type %q: %w", rt.Name, err)
	}
	return nil
}

// CreateRoom adds a room to the tenant's inventory.
func (s *gormStore) CreateRoom(ctx context.Context, tenantID int64, room *model.Room) error {
	room.TenantID = tenantID
	if room.State == "" {
		room.State = model.RoomAvailable
	}
	if !ValidRoomState(room.State) {
		return fmt.Errorf("%q: %w", room.State, ErrInvalidState)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt model.RoomType
		if err := tx.First(&rt, room.RoomTypeID).Error; err != nil {
			return notFound(err, fmt.Sprintf("room type %d", room.RoomTypeID))
		}

		var count int64
		if err := tx.Model(&model.Room{}).
			Where("tenant_id = ? AND number = ?", tenantID, room.Number).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check room %q: %w", room.Number, err)
		}
		if count > 0 {
			return fmt.Errorf("room %q: %w", room.Number, ErrDuplicateRoom)
		}

		if err := tx.Omit("RoomType").Create(room).Error; err != nil {
			return fmt.Errorf("failed to create room %q: %w", room.Number, err)
		}
		room.RoomType = rt
		return nil
	})
}

// ListRooms returns the tenant's rooms ordered by number.
func (s *gormStore) ListRooms(ctx context.Context, tenantID int64) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Preload("RoomType").
		Where("tenant_id = ?", tenantID).
		Order("number").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// GetRoom returns one of the tenant's rooms.
func (s *gormStore) GetRoom(ctx context.Context, tenantID, roomID int64) (model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).Preload("RoomType").
		Where("id = ? AND tenant_id = ?", roomID, tenantID).
		First(&room).Error; err != nil {
		return model.Room{}, notFound(err, fmt.Sprintf("room %d", roomID))
	}
	return room, nil
}

// RoomsInState returns the tenant's rooms in state, ordered by number.
func (s *gormStore) RoomsInState(ctx context.Context, tenantID int64, state string) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND state = ?", tenantID, state).
		Order("number").
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s rooms: %w", state, err)
	}
	return rooms, nil
}

// SetRoomState overrides a room's state. Any known state is allowed.
func (s *gormStore) SetRoomState(ctx context.Context, tenantID, roomID int64, state string) (model.Room, error) {
	if !ValidRoomState(state) {
		return model.Room{}, fmt.Errorf("%q: %w", state, ErrInvalidState)
	}
	room, err := s.GetRoom(ctx, tenantID, roomID)
	if err != nil {
		return model.Room{}, err
	}
	if err := s.db.WithContext(ctx).Model(&room).Update("state", state).Error; err != nil {
		return model.Room{}, fmt.Errorf("failed to update room %d: %w", roomID, err)
	}
	room.State = state
	return room, nil
}

// RoomDateInfo returns the short date hint shown next to a room:
// the current guest's departure, or the next arrival.
func (s *gormStore) RoomDateInfo(ctx context.Context, room model.Room, today time.Time) (string, error) {
	var booking model.Booking
	switch room.State {
	case model.RoomOccupied:
		err := s.db.WithContext(ctx).
			Where("room_id = ? AND check_in_date <= ? AND check_out_date >= ? AND checked_in = ?", room.ID, today, today, true).
			Order("check_in_date DESC").
			Limit(1).
			Find(&booking).Error
		if err != nil {
			return "", fmt.Errorf("failed to load current booking for room %d: %w", room.ID, err)
		}
		if booking.ID == 0 {
			return "Occ.", nil
		}
		return "Out: " + time.Time(booking.CheckOutDate).Format("02/01"), nil

	case model.RoomAvailable:
		err := s.db.WithContext(ctx).
			Where("room_id = ? AND check_in_date > ? AND is_active = ?", room.ID, today, true).
			Order("check_in_date").
			Limit(1).
			Find(&booking).Error
		if err != nil {
			return "", fmt.Errorf("failed to load next booking for room %d: %w", room.ID, err)
		}
		if booking.ID == 0 {
			return "Free", nil
		}
		return "Next: " + time.Time(booking.CheckInDate).Format("02/01"), nil
	}
	return "", nil
}

// StartDayCleaning puts every room of the tenant into cleaning, whatever its state.
func (s *gormStore) StartDayCleaning(ctx context.Context, tenantID int64) (int64, error) {
	return s.setAllRooms(ctx, tenantID, model.RoomCleaning)
}

// ResetAllRooms makes every room of the tenant available.
func (s *gormStore) ResetAllRooms(ctx context.Context, tenantID int64) (int64, error) {
	return s.setAllRooms(ctx, tenantID, model.RoomAvailable)
}

func (s *gormStore) setAllRooms(ctx context.Context, tenantID int64, state string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("tenant_id = ?", tenantID).
		Update("state", state)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to set rooms of tenant %d to %s: %w", tenantID, state, res.Error)
	}
	log.Printf("tenant %d: %d rooms set to %s", tenantID, res.RowsAffected, state)
	return res.RowsAffected, nil
}

// MarkRoomCleaned ends cleaning for a room. It becomes occupied when an
// active, checked-in booking covers today and available otherwise.
func (s *gormStore) MarkRoomCleaned(ctx context.Context, tenantID, roomID int64, today time.Time) (model.Room, error) {
	room, err := s.GetRoom(ctx, tenantID, roomID)
	if err != nil {
		return model.Room{}, err
	}

	var guests int64
	if err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Where("room_id = ? AND check_in_date <= ? AND check_out_date >= ? AND checked_in = ? AND is_active = ?",
			room.ID, today, today, true, true).
		Count(&guests).Error; err != nil {
		return model.Room{}, fmt.Errorf("failed to check guests of room %d: %w", roomID, err)
	}

	next := model.RoomAvailable
	if guests > 0 {
		next = model.RoomOccupied
	}
	if err := s.db.WithContext(ctx).Model(&room).Update("state", next).Error; err != nil {
		return model.Room{}, fmt.Errorf("failed to update room %d: %w", roomID, err)
	}
	room.State = next
	return room, nil
}

// TenantIDs returns every tenant that owns at least one room.
func (s *gormStore) TenantIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.db.WithContext(ctx).Model(&model.Room{}).
		Distinct("tenant_id").
		Order("tenant_id").
		Pluck("tenant_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return ids, nil
}
