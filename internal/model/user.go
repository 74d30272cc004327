package model

// User maps the legacy `user` table. Password holds the bcrypt digest.
type User struct {
	UserID   uint   `gorm:"column:user_id;primaryKey" json:"user_id"`
	Username string `gorm:"column:username;size:64;not null;uniqueIndex" json:"username"`
	Password string `gorm:"column:password;size:255;not null" json:"-"`
	Name     string `gorm:"column:name;size:128" json:"name"`
	Gender   string `gorm:"column:gender;size:16" json:"gender"`
}

func (User) TableName() string { return "user" }
