package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"twitterclone/internal/model"
)

type TweetRepository struct {
	db *gorm.DB
}

// FeedEntry is a feed row: a tweet joined with its author's username.
type FeedEntry struct {
	Username string    `gorm:"column:username" json:"username"`
	Tweet    string    `gorm:"column:tweet" json:"tweet"`
	DateTime time.Time `gorm:"column:date_time" json:"dateTime"`
}

// TweetWithCounts is a tweet row with its aggregated like/reply counts.
type TweetWithCounts struct {
	TweetID  uint      `gorm:"column:tweet_id" json:"-"`
	Tweet    string    `gorm:"column:tweet" json:"tweet"`
	DateTime time.Time `gorm:"column:date_time" json:"dateTime"`
	Likes    int64     `gorm:"column:likes" json:"likes"`
	Replies  int64     `gorm:"column:replies" json:"replies"`
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

func (r *TweetRepository) Create(tweet *model.Tweet) error {
	if err := r.db.Create(tweet).Error; err != nil {
		return fmt.Errorf("create tweet failed: %w", err)
	}
	return nil
}

// Feed returns the latest tweets authored by users that userID follows,
// newest first. The followee set is evaluated as a subquery, so an empty
// follow list yields an empty feed rather than malformed SQL.
func (r *TweetRepository) Feed(userID uint, limit int) ([]FeedEntry, error) {
	followees := r.db.Model(&model.Follow{}).
		Select("following_user_id").
		Where("follower_user_id = ?", userID)

	entries := make([]FeedEntry, 0, limit)
	err := r.db.Model(&model.Tweet{}).
		Select("`user`.username AS username, `tweet`.tweet AS tweet, `tweet`.date_time AS date_time").
		Joins("JOIN `user` ON `user`.user_id = `tweet`.user_id").
		Where("`tweet`.user_id IN (?)", followees).
		Order("`tweet`.date_time DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("query feed failed: %w", err)
	}
	return entries, nil
}

// CanView reports whether callerID may see tweetID: true iff the tweet
// exists and its author is followed by the caller. A nonexistent tweet is
// indistinguishable from an unauthorized one; both come back false. Kept
// as a single existence query so there is no window between a follow
// check and the tweet lookup.
func (r *TweetRepository) CanView(callerID, tweetID uint) (bool, error) {
	followees := r.db.Model(&model.Follow{}).
		Select("following_user_id").
		Where("follower_user_id = ?", callerID)

	var count int64
	err := r.db.Model(&model.Tweet{}).
		Where("tweet_id = ?", tweetID).
		Where("user_id IN (?)", followees).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check tweet visibility failed: %w", err)
	}
	return count > 0, nil
}

// GetWithCounts returns (nil, nil) when the tweet does not exist.
func (r *TweetRepository) GetWithCounts(tweetID uint) (*TweetWithCounts, error) {
	var row TweetWithCounts
	err := r.db.Model(&model.Tweet{}).
		Select("`tweet`.tweet_id, `tweet`.tweet, `tweet`.date_time, "+
			"(SELECT COUNT(*) FROM `like` WHERE `like`.tweet_id = `tweet`.tweet_id) AS likes, "+
			"(SELECT COUNT(*) FROM `reply` WHERE `reply`.tweet_id = `tweet`.tweet_id) AS replies").
		Where("`tweet`.tweet_id = ?", tweetID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query tweet detail failed: %w", err)
	}
	return &row, nil
}

// ListByAuthor returns userID's own tweets, oldest first, each with its
// like/reply counts.
func (r *TweetRepository) ListByAuthor(userID uint) ([]TweetWithCounts, error) {
	var rows []TweetWithCounts
	err := r.db.Model(&model.Tweet{}).
		Select("`tweet`.tweet_id, `tweet`.tweet, `tweet`.date_time, "+
			"(SELECT COUNT(*) FROM `like` WHERE `like`.tweet_id = `tweet`.tweet_id) AS likes, "+
			"(SELECT COUNT(*) FROM `reply` WHERE `reply`.tweet_id = `tweet`.tweet_id) AS replies").
		Where("`tweet`.user_id = ?", userID).
		Order("`tweet`.date_time ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list tweets by author failed: %w", err)
	}
	return rows, nil
}
