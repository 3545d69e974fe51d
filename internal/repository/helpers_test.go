package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, title string, price int64, capacity int) *domain.Room {
	t.Helper()
	room := &domain.Room{Title: title, Price: price, Size: 30, Capacity: capacity, Existing: true}
	require.NoError(t, NewRoomRepository(db).Create(context.Background(), room))
	return room
}

func seedUser(t *testing.T, db *gorm.DB, phone string) *domain.User {
	t.Helper()
	u := &domain.User{Phone: phone, IsActive: true}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func day(offset int) time.Time {
	return domain.DateOf(time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)).AddDate(0, 0, offset)
}
