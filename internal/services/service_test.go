package services

import (
	"testing"
	"time"

	"inkwell/internal/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB swaps the package-level DB for a sqlmock-backed connection.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = prev })

	return mock
}

func userRows(id uint, username, email, password string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "username", "email", "password", "created_at", "updated_at"}).
		AddRow(id, username, email, password, now, now)
}

func postRows(id, userID uint, title string, likes int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "title", "excerpt", "category", "cover_image",
		"content", "likes", "created_at", "updated_at",
	}).AddRow(id, userID, title, "excerpt", "tech", "", "body", likes, now, now)
}

func commentRows(id, postID, userID uint, message string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "post_id", "user_id", "message", "created_at"}).
		AddRow(id, postID, userID, message, time.Now())
}

func emptyPostRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title", "likes"})
}
