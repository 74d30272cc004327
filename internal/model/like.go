package model

type Like struct {
	TweetID uint `gorm:"column:tweet_id;primaryKey;autoIncrement:false" json:"tweet_id"`
	UserID  uint `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`
}

func (Like) TableName() string { return "like" }
