package housekeeping

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hotel-ops-backend/config"
	"hotel-ops-backend/internal/db"
	"hotel-ops-backend/internal/model"
	"hotel-ops-backend/internal/store"
)

// mockStore overrides the store methods used by the service.
type mockStore struct {
	store.Store
	TenantIDsFunc        func(ctx context.Context) ([]int64, error)
	StartDayCleaningFunc func(ctx context.Context, tenantID int64) (int64, error)
	notified             map[int64]string
}

func (m *mockStore) TenantIDs(ctx context.Context) ([]int64, error) {
	return m.TenantIDsFunc(ctx)
}

func (m *mockStore) StartDayCleaning(ctx context.Context, tenantID int64) (int64, error) {
	return m.StartDayCleaningFunc(ctx, tenantID)
}

func (m *mockStore) Notify(ctx context.Context, tenantID int64, message, priority string) (model.Notification, error) {
	m.notified[tenantID] = message
	return model.Notification{TenantID: tenantID, Message: message, Priority: priority}, nil
}

func TestRunOnce_SkipsFailingTenant(t *testing.T) {
	ms := &mockStore{
		TenantIDsFunc: func(ctx context.Context) ([]int64, error) { return []int64{1, 2, 3}, nil },
		StartDayCleaningFunc: func(ctx context.Context, tenantID int64) (int64, error) {
			if tenantID == 2 {
				return 0, errors.New("database is locked")
			}
			return tenantID * 10, nil
		},
		notified: map[int64]string{},
	}
	svc := NewService(&config.Config{}, ms)

	assert.Equal(t, 2, svc.RunOnce(context.Background()))
	assert.Equal(t, map[int64]string{
		1: "Start of day: 10 rooms set to cleaning",
		3: "Start of day: 30 rooms set to cleaning",
	}, ms.notified)
}

func TestRunOnce_TenantListFails(t *testing.T) {
	ms := &mockStore{
		TenantIDsFunc: func(ctx context.Context) ([]int64, error) { return nil, errors.New("boom") },
		notified:      map[int64]string{},
	}
	assert.Equal(t, 0, NewService(&config.Config{}, ms).RunOnce(context.Background()))
	assert.Empty(t, ms.notified)
}

func TestRunOnce_SQLite(t *testing.T) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(gormDB))
	require.NoError(t, db.SeedRoomTypes(gormDB))

	s := store.NewGormStore(gormDB)
	ctx := context.Background()
	for _, r := range []struct {
		tenant int64
		number string
	}{{1, "101"}, {1, "102"}, {2, "201"}} {
		room := model.Room{Number: r.number, RoomTypeID: 1, PricePerNight: 60}
		require.NoError(t, s.CreateRoom(ctx, r.tenant, &room))
	}

	svc := NewService(&config.Config{}, s)
	assert.Equal(t, 2, svc.RunOnce(ctx))

	for _, tenant := range []int64{1, 2} {
		rooms, err := s.ListRooms(ctx, tenant)
		require.NoError(t, err)
		for _, r := range rooms {
			assert.Equal(t, model.RoomCleaning, r.State)
		}
		queue, err := s.Notifications(ctx, tenant)
		require.NoError(t, err)
		require.Len(t, queue, 1)
	}
}

func TestRun_Disabled(t *testing.T) {
	svc := NewService(&config.Config{}, &mockStore{})
	assert.NoError(t, svc.Run(context.Background()))
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Housekeeping.Enabled = true
	cfg.Housekeeping.StartDayAt = "07:00"
	cfg.Hotel.Location = time.UTC

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- NewService(cfg, &mockStore{}).Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestRun_InvalidTime(t *testing.T) {
	cfg := &config.Config{}
	cfg.Housekeeping.Enabled = true
	cfg.Housekeeping.StartDayAt = "7am"
	cfg.Hotel.Location = time.UTC

	assert.Error(t, NewService(cfg, &mockStore{}).Run(context.Background()))
}
