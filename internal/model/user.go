package model

import (
	"time"
)

type User struct {
	ID        uint64  `gorm:"primaryKey"`
	Username  string  `gorm:"type:varchar(50);uniqueIndex:idx_username;not null"`
	Email     string  `gorm:"type:varchar(100);uniqueIndex:idx_email;not null"`
	Password  string  `gorm:"type:varchar(255);not null"`
	Role      Role    `gorm:"type:varchar(20);not null;index:idx_role"`
	Phone     *string `gorm:"type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

// Actor 返回用于鉴权的身份
func (u *User) Actor() *Actor {
	return &Actor{ID: u.ID, Role: u.Role}
}
