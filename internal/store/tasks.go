package store

import (
	"context"
	"fmt"

	"hotel-ops-backend/internal/model"
)

// PendingTasks returns the tenant's open maintenance tasks in storage order.
// Ordering by urgency is left to the caller.
func (s *gormStore) PendingTasks(ctx context.Context, tenantID int64) ([]model.MaintenanceTask, error) {
	tx := s.db.WithContext(ctx)
	var tasks []model.MaintenanceTask
	if err := tx.Preload("Room").
		Where("status = ? AND room_id IN (?)", model.TaskPending, tenantRoomIDs(tx, tenantID)).
		Order("id").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending tasks: %w", err)
	}
	return tasks, nil
}

// AddTask reports a maintenance task for one of the tenant's rooms.
func (s *gormStore) AddTask(ctx context.Context, tenantID int64, task *model.MaintenanceTask) error {
	room, err := s.roomForTenant(ctx, tenantID, task.RoomID)
	if err != nil {
		return err
	}
	task.Status = model.TaskPending
	if task.Priority == 0 {
		task.Priority = 3
	}
	if err := s.db.WithContext(ctx).Omit("Room").Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task for room %d: %w", task.RoomID, err)
	}
	task.Room = room
	return nil
}

// CompleteTask closes a task. Completed tasks are never reopened.
func (s *gormStore) CompleteTask(ctx context.Context, tenantID, taskID int64) error {
	tx := s.db.WithContext(ctx)
	var task model.MaintenanceTask
	if err := tx.Where("id = ? AND room_id IN (?)", taskID, tenantRoomIDs(tx, tenantID)).
		First(&task).Error; err != nil {
		return notFound(err, fmt.Sprintf("task %d", taskID))
	}
	if err := tx.Model(&task).Update("status", model.TaskCompleted).Error; err != nil {
		return fmt.Errorf("failed to complete task %d: %w", taskID, err)
	}
	return nil
}

// ServiceOrders returns the tenant's open room-service orders in storage order.
func (s *gormStore) ServiceOrders(ctx context.Context, tenantID int64) ([]model.RoomServiceOrder, error) {
	tx := s.db.WithContext(ctx)
	var orders []model.RoomServiceOrder
	if err := tx.Preload("Room").
		Where("room_id IN (?)", tenantRoomIDs(tx, tenantID)).
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list service orders: %w", err)
	}
	return orders, nil
}

// AddServiceOrder records a room-service order.
func (s *gormStore) AddServiceOrder(ctx context.Context, tenantID, roomID int64, item string) (model.RoomServiceOrder, error) {
	room, err := s.GetRoom(ctx, tenantID, roomID)
	if err != nil {
		return model.RoomServiceOrder{}, err
	}
	order := model.RoomServiceOrder{RoomID: room.ID, Item: item}
	if err := s.db.WithContext(ctx).Omit("Room").Create(&order).Error; err != nil {
		return model.RoomServiceOrder{}, fmt.Errorf("failed to create order for room %d: %w", roomID, err)
	}
	order.Room = room
	return order, nil
}

// CompleteServiceOrder deletes a delivered order.
func (s *gormStore) CompleteServiceOrder(ctx context.Context, tenantID, orderID int64) error {
	tx := s.db.WithContext(ctx)
	res := tx.Where("id = ? AND room_id IN (?)", orderID, tenantRoomIDs(tx, tenantID)).
		Delete(&model.RoomServiceOrder{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete order %d: %w", orderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return nil
}

// roomForTenant loads a room and distinguishes a missing room from another tenant's room.
func (s *gormStore) roomForTenant(ctx context.Context, tenantID, roomID int64) (model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, roomID).Error; err != nil {
		return model.Room{}, notFound(err, fmt.Sprintf("room %d", roomID))
	}
	if room.TenantID != tenantID {
		return model.Room{}, ErrForbiddenRoom
	}
	return room, nil
}
