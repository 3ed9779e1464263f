package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-ops-backend/internal/model"
)

// DNDSet returns the tenant's do-not-disturb rooms ordered by number.
func (s *gormStore) DNDSet(ctx context.Context, tenantID int64) ([]model.DNDEntry, error) {
	var entries []model.DNDEntry
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("room_number").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list DND rooms: %w", err)
	}
	return entries, nil
}

// ToggleDND flips the do-not-disturb flag of a room and reports whether it is now set.
func (s *gormStore) ToggleDND(ctx context.Context, tenantID int64, roomNumber string) (bool, error) {
	var added bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rooms int64
		if err := tx.Model(&model.Room{}).
			Where("tenant_id = ? AND number = ?", tenantID, roomNumber).
			Count(&rooms).Error; err != nil {
			return fmt.Errorf("failed to check room %q: %w", roomNumber, err)
		}
		if rooms == 0 {
			return ErrForbiddenRoom
		}

		res := tx.Where("tenant_id = ? AND room_number = ?", tenantID, roomNumber).Delete(&model.DNDEntry{})
		if res.Error != nil {
			return fmt.Errorf("failed to clear DND for room %q: %w", roomNumber, res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}

		if err := tx.Create(&model.DNDEntry{TenantID: tenantID, RoomNumber: roomNumber}).Error; err != nil {
			return fmt.Errorf("failed to set DND for room %q: %w", roomNumber, err)
		}
		added = true
		return nil
	})
	return added, err
}

// Notify queues a notification and records it in the action log.
func (s *gormStore) Notify(ctx context.Context, tenantID int64, message, priority string) (model.Notification, error) {
	if priority == "" {
		priority = model.PriorityNormal
	}
	n := model.Notification{TenantID: tenantID, Message: message, Priority: priority}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&n).Error; err != nil {
			return fmt.Errorf("failed to queue notification: %w", err)
		}
		return addLog(tx, tenantID, "SYSTEM: "+message)
	})
	if err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

// Notifications returns the tenant's queue, oldest first.
func (s *gormStore) Notifications(ctx context.Context, tenantID int64) ([]model.Notification, error) {
	var queue []model.Notification
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("timestamp").Order("id").
		Find(&queue).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return queue, nil
}

// GetNotification loads a notification by id regardless of tenant.
func (s *gormStore) GetNotification(ctx context.Context, id int64) (model.Notification, error) {
	var n model.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return model.Notification{}, notFound(err, fmt.Sprintf("notification %d", id))
	}
	return n, nil
}

// PopNotification removes and returns the oldest notification, logging that it was read.
func (s *gormStore) PopNotification(ctx context.Context, tenantID int64) (model.Notification, error) {
	var n model.Notification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ?", tenantID).
			Order("timestamp").Order("id").
			First(&n).Error; err != nil {
			return notFound(err, "notification")
		}
		if err := tx.Delete(&n).Error; err != nil {
			return fmt.Errorf("failed to delete notification %d: %w", n.ID, err)
		}
		return addLog(tx, tenantID, fmt.Sprintf("Read: '%s'", n.Message))
	})
	if err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

func addLog(tx *gorm.DB, tenantID int64, action string) error {
	if err := tx.Create(&model.ActionLog{TenantID: tenantID, Action: action}).Error; err != nil {
		return fmt.Errorf("failed to write action log: %w", err)
	}
	return nil
}

// ActionLogs returns the newest limit log lines.
func (s *gormStore) ActionLogs(ctx context.Context, tenantID int64, limit int) ([]model.ActionLog, error) {
	var logs []model.ActionLog
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("timestamp DESC").Order("id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list action logs: %w", err)
	}
	return logs, nil
}

// Waitlist returns the tenant's waitlist, oldest first.
func (s *gormStore) Waitlist(ctx context.Context, tenantID int64) ([]model.WaitlistEntry, error) {
	var entries []model.WaitlistEntry
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).
		Order("timestamp").Order("id").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list waitlist: %w", err)
	}
	return entries, nil
}

// AddToWaitlist appends a guest to the waitlist.
func (s *gormStore) AddToWaitlist(ctx context.Context, tenantID int64, guestName, roomType string) (model.WaitlistEntry, error) {
	e := model.WaitlistEntry{TenantID: tenantID, GuestName: guestName, RoomType: roomType}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return model.WaitlistEntry{}, fmt.Errorf("failed to add %q to waitlist: %w", guestName, err)
	}
	return e, nil
}

// PopWaitlist removes and returns the longest-waiting guest.
func (s *gormStore) PopWaitlist(ctx context.Context, tenantID int64) (model.WaitlistEntry, error) {
	var e model.WaitlistEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ?", tenantID).
			Order("timestamp").Order("id").
			First(&e).Error; err != nil {
			return notFound(err, "waitlist entry")
		}
		return tx.Delete(&e).Error
	})
	if err != nil {
		return model.WaitlistEntry{}, err
	}
	return e, nil
}

// PutSubscription creates a push subscription or refreshes its keys. An
// endpoint stays with the tenant that registered it first.
func (s *gormStore) PutSubscription(ctx context.Context, sub *model.PushSubscription) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner model.PushSubscription
		res := tx.Select("tenant_id").Where("endpoint = ?", sub.Endpoint).Limit(1).Find(&owner)
		if res.Error != nil {
			return fmt.Errorf("failed to look up subscription: %w", res.Error)
		}
		if res.RowsAffected > 0 && owner.TenantID != sub.TenantID {
			return ErrEndpointTaken
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth"}),
		}).Create(sub).Error
	})
}

// GetSubscription returns one of the tenant's push subscriptions.
func (s *gormStore) GetSubscription(ctx context.Context, tenantID int64, endpoint string) (model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).Where("endpoint = ? AND tenant_id = ?", endpoint, tenantID).First(&sub).Error
	if err != nil {
		return model.PushSubscription{}, notFound(err, "subscription")
	}
	return sub, nil
}

// DeleteSubscription removes a push subscription.
func (s *gormStore) DeleteSubscription(ctx context.Context, tenantID int64, endpoint string) error {
	res := s.db.WithContext(ctx).Where("endpoint = ? AND tenant_id = ?", endpoint, tenantID).
		Delete(&model.PushSubscription{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("subscription: %w", ErrNotFound)
	}
	return nil
}

// TenantSubscriptions returns all push subscriptions of a tenant.
func (s *gormStore) TenantSubscriptions(ctx context.Context, tenantID int64) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

// IsNotFound reports whether err means the record is absent from the tenant's scope.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
