package model

import "time"

type Tweet struct {
	TweetID  uint      `gorm:"column:tweet_id;primaryKey" json:"tweet_id"`
	Tweet    string    `gorm:"column:tweet;type:text;not null" json:"tweet"`
	UserID   uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	DateTime time.Time `gorm:"column:date_time;not null" json:"date_time"`
}

func (Tweet) TableName() string { return "tweet" }
