package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"twitterclone/internal/model"
	"twitterclone/internal/repository"
)

const testSecret = "test-secret"

type repos struct {
	user   *repository.UserRepository
	follow *repository.FollowRepository
	tweet  *repository.TweetRepository
	like   *repository.LikeRepository
	reply  *repository.ReplyRepository
}

func setupTestDB(t *testing.T) (*gorm.DB, repos) {
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

	return db, repos{
		user:   repository.NewUserRepository(db),
		follow: repository.NewFollowRepository(db),
		tweet:  repository.NewTweetRepository(db),
		like:   repository.NewLikeRepository(db),
		reply:  repository.NewReplyRepository(db),
	}
}

func newTestTweetService(r repos) *TweetService {
	return NewTweetService(r.user, r.tweet, r.follow, r.like, r.reply, nil, nil)
}
