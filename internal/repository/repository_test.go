package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"twitterclone/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Tweet{},
		&model.Like{},
		&model.Reply{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Password: "digest",
		Name:     "Name of " + username,
		Gender:   "other",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedFollow(t *testing.T, db *gorm.DB, followerID, followingID uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.Follow{
		FollowerUserID:  followerID,
		FollowingUserID: followingID,
	}).Error)
}
