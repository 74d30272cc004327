package repository

import (
	"fmt"

	"gorm.io/gorm"

	"twitterclone/internal/model"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Create(edge *model.Follow) error {
	if err := r.db.Create(edge).Error; err != nil {
		return fmt.Errorf("create follow edge failed: %w", err)
	}
	return nil
}

// ListFollowingNames returns the display names of the users followed by
// followerID.
func (r *FollowRepository) ListFollowingNames(followerID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&model.Follow{}).
		Joins("JOIN `user` ON `user`.user_id = `follower`.following_user_id").
		Where("`follower`.follower_user_id = ?", followerID).
		Pluck("`user`.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list following failed: %w", err)
	}
	return names, nil
}

// ListFollowerIDs returns the ids of the users who follow followeeID.
func (r *FollowRepository) ListFollowerIDs(followeeID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Follow{}).
		Where("following_user_id = ?", followeeID).
		Pluck("follower_user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list followers failed: %w", err)
	}
	return ids, nil
}
