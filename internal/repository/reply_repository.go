package repository

import (
	"fmt"

	"gorm.io/gorm"

	"twitterclone/internal/model"
)

type ReplyRepository struct {
	db *gorm.DB
}

// ReplyEntry is a reply row joined with the replying user's username.
type ReplyEntry struct {
	Username string `gorm:"column:username" json:"username"`
	Reply    string `gorm:"column:reply" json:"reply"`
}

func NewReplyRepository(db *gorm.DB) *ReplyRepository {
	return &ReplyRepository{db: db}
}

func (r *ReplyRepository) Create(reply *model.Reply) error {
	if err := r.db.Create(reply).Error; err != nil {
		return fmt.Errorf("create reply failed: %w", err)
	}
	return nil
}

func (r *ReplyRepository) ListByTweet(tweetID uint) ([]ReplyEntry, error) {
	var entries []ReplyEntry
	err := r.db.Model(&model.Reply{}).
		Select("`user`.username AS username, `reply`.reply AS reply").
		Joins("JOIN `user` ON `user`.user_id = `reply`.user_id").
		Where("`reply`.tweet_id = ?", tweetID).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list replies failed: %w", err)
	}
	return entries, nil
}
