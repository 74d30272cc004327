package repository

import (
	"fmt"

	"gorm.io/gorm"

	"twitterclone/internal/model"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Create(like *model.Like) error {
	if err := r.db.Create(like).Error; err != nil {
		return fmt.Errorf("create like failed: %w", err)
	}
	return nil
}

// ListUsernames returns the usernames of everyone who liked tweetID.
func (r *LikeRepository) ListUsernames(tweetID uint) ([]string, error) {
	var usernames []string
	err := r.db.Model(&model.Like{}).
		Joins("JOIN `user` ON `user`.user_id = `like`.user_id").
		Where("`like`.tweet_id = ?", tweetID).
		Pluck("`user`.username", &usernames).Error
	if err != nil {
		return nil, fmt.Errorf("list likes failed: %w", err)
	}
	return usernames, nil
}
