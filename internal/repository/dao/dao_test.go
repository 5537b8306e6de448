package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	// One connection, so every statement sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, InitTables(db))

	return db
}

func mustUser(t *testing.T, db *gorm.DB, username string) User {
	t.Helper()

	user, _, err := NewUserDAO(db).Insert(context.Background(), User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hash",
		IsActive: true,
	}, Preferences{NotificationPreference: "all", EmailNotifications: true, PushNotifications: true})
	require.NoError(t, err)

	return user
}

var futureStart = time.Now().UTC().Add(30 * 24 * time.Hour).Truncate(time.Second)

func mustEvent(t *testing.T, db *gorm.DB, e Event) Event {
	t.Helper()

	if e.Slug == "" {
		e.Slug = fmt.Sprintf("event-%d", time.Now().UnixNano())
	}
	if e.StartDate.IsZero() {
		e.StartDate = futureStart
	}
	if e.EndDate.IsZero() {
		e.EndDate = e.StartDate.Add(2 * time.Hour)
	}
	if e.Capacity == 0 {
		e.Capacity = 100
	}
	if e.Status == "" {
		e.Status = "published"
	}

	created, err := NewEventDAO(db).Insert(context.Background(), e)
	require.NoError(t, err)

	return created
}
