package model

// Follow is a directed edge: follower follows following.
type Follow struct {
	FollowerUserID  uint `gorm:"column:follower_user_id;primaryKey;autoIncrement:false" json:"follower_user_id"`
	FollowingUserID uint `gorm:"column:following_user_id;primaryKey;autoIncrement:false" json:"following_user_id"`
}

func (Follow) TableName() string { return "follower" }
