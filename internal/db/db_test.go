package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-ops-backend/config"
	"hotel-ops-backend/internal/model"
)

type recordingWriter struct {
	lines []string
}

func (w *recordingWriter) Printf(format string, args ...any) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func TestLogger(t *testing.T) {
	query := func() (string, int64) { return `SELECT * FROM "guests" WHERE email = 'ana@example.com'`, 0 }

	testCases := []struct {
		name    string
		err     error
		elapsed time.Duration
		logged  bool
	}{
		{name: "Record not found", err: gorm.ErrRecordNotFound, logged: false},
		{name: "Wrapped record not found", err: fmt.Errorf("guest: %w", gorm.ErrRecordNotFound), logged: false},
		{name: "Real error", err: errors.New("disk I/O error"), logged: true},
		{name: "Fast query", logged: false},
		{name: "Slow query", elapsed: time.Second, logged: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := &recordingWriter{}
			newLogger(w).Trace(context.Background(), time.Now().Add(-tc.elapsed), query, tc.err)
			if tc.logged {
				assert.NotEmpty(t, w.lines)
			} else {
				assert.Empty(t, w.lines)
			}
		})
	}
}

func TestInit_SQLite(t *testing.T) {
	gormDB, err := Init(&config.DatabaseConfig{
		Driver:        "sqlite",
		DSN:           "file::memory:",
		MaxOpenConns:  1,
		SeedRoomTypes: true,
	})
	require.NoError(t, err)

	var types []model.RoomType
	require.NoError(t, gormDB.Order("id").Find(&types).Error)
	require.Len(t, types, 4)
	assert.Equal(t, "Single", types[0].Name)

	// Seeding twice keeps the table as it is.
	require.NoError(t, SeedRoomTypes(gormDB))
	var count int64
	require.NoError(t, gormDB.Model(&model.RoomType{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}

func TestInit_UnsupportedDriver(t *testing.T) {
	_, err := Init(&config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
}
