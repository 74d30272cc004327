package model

// Reply has no primary key in the legacy schema; a user may reply to the
// same tweet more than once.
type Reply struct {
	TweetID uint   `gorm:"column:tweet_id;not null;index" json:"tweet_id"`
	UserID  uint   `gorm:"column:user_id;not null" json:"user_id"`
	Reply   string `gorm:"column:reply;type:text;not null" json:"reply"`
}

func (Reply) TableName() string { return "reply" }
