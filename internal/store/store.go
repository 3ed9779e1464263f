package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotel-ops-backend/internal/model"
)

// Store defines every read and write the API needs. All methods except the
// room-type and notification-id lookups are scoped to a tenant.
type Store interface {
	DB() *gorm.DB

	ListRoomTypes(ctx context.Context) ([]model.RoomType, error)
	CreateRoomType(ctx context.Context, rt *model.RoomType) error

	CreateRoom(ctx context.Context, tenantID int64, room *model.Room) error
	ListRooms(ctx context.Context, tenantID int64) ([]model.Room, error)
	GetRoom(ctx context.Context, tenantID, roomID int64) (model.Room, error)
	RoomsInState(ctx context.Context, tenantID int64, state string) ([]model.Room, error)
	SetRoomState(ctx context.Context, tenantID, roomID int64, state string) (model.Room, error)
	RoomDateInfo(ctx context.Context, room model.Room, today time.Time) (string, error)
	StartDayCleaning(ctx context.Context, tenantID int64) (int64, error)
	MarkRoomCleaned(ctx context.Context, tenantID, roomID int64, today time.Time) (model.Room, error)
	ResetAllRooms(ctx context.Context, tenantID int64) (int64, error)
	TenantIDs(ctx context.Context) ([]int64, error)

	CreateBooking(ctx context.Context, tenantID int64, req BookingRequest, today time.Time) (model.Booking, error)
	TodayCheckIns(ctx context.Context, tenantID int64, today time.Time) ([]model.Booking, error)
	CheckIn(ctx context.Context, tenantID, bookingID int64, req CheckInRequest) (model.Booking, error)
	InHouseBookings(ctx context.Context, tenantID int64) ([]model.Booking, error)
	BookingsNewestFirst(ctx context.Context, tenantID int64) ([]model.Booking, error)

	PendingTasks(ctx context.Context, tenantID int64) ([]model.MaintenanceTask, error)
	AddTask(ctx context.Context, tenantID int64, task *model.MaintenanceTask) error
	CompleteTask(ctx context.Context, tenantID, taskID int64) error

	ServiceOrders(ctx context.Context, tenantID int64) ([]model.RoomServiceOrder, error)
	AddServiceOrder(ctx context.Context, tenantID, roomID int64, item string) (model.RoomServiceOrder, error)
	CompleteServiceOrder(ctx context.Context, tenantID, orderID int64) error

	DNDSet(ctx context.Context, tenantID int64) ([]model.DNDEntry, error)
	ToggleDND(ctx context.Context, tenantID int64, roomNumber string) (bool, error)

	Notify(ctx context.Context, tenantID int64, message, priority string) (model.Notification, error)
	Notifications(ctx context.Context, tenantID int64) ([]model.Notification, error)
	GetNotification(ctx context.Context, id int64) (model.Notification, error)
	PopNotification(ctx context.Context, tenantID int64) (model.Notification, error)
	ActionLogs(ctx context.Context, tenantID int64, limit int) ([]model.ActionLog, error)

	Waitlist(ctx context.Context, tenantID int64) ([]model.WaitlistEntry, error)
	AddToWaitlist(ctx context.Context, tenantID int64, guestName, roomType string) (model.WaitlistEntry, error)
	PopWaitlist(ctx context.Context, tenantID int64) (model.WaitlistEntry, error)

	PutSubscription(ctx context.Context, sub *model.PushSubscription) error
	GetSubscription(ctx context.Context, tenantID int64, endpoint string) (model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, tenantID int64, endpoint string) error
	TenantSubscriptions(ctx context.Context, tenantID int64) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// tenantRoomIDs is a subquery selecting the ids of a tenant's rooms.
func tenantRoomIDs(tx *gorm.DB, tenantID int64) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).Model(&model.Room{}).Select("id").Where("tenant_id = ?", tenantID)
}

// notFound maps gorm.ErrRecordNotFound onto ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}
