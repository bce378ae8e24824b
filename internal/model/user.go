package model

import (
	"time"
)

type User struct {
	ID             uint64  `gorm:"primaryKey"`
	Username       *string `gorm:"type:varchar(50);uniqueIndex:idx_username"`
	Email          *string `gorm:"type:varchar(100);uniqueIndex:idx_email"`
	Password       *string `gorm:"type:varchar(255)"`
	Nickname       string  `gorm:"type:varchar(50)"`
	Bio            string  `gorm:"type:varchar(255)"`
	AvatarURL      string  `gorm:"type:varchar(255)"`
	PostCount      int     `gorm:"not null;default:0"`
	FollowerCount  int     `gorm:"not null;default:0"`
	FollowingCount int     `gorm:"not null;default:0"`
	IsBan          bool    `gorm:"type:tinyint(1);default:0"`
	IsDelete       bool    `gorm:"type:tinyint(1);default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (User) TableName() string {
	return "users"
}
