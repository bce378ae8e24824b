package model

import (
	"time"
)

type Blog struct {
	ID           uint64    `gorm:"primaryKey"`
	UserID       uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	LikeCount    int       `gorm:"not null;default:0" json:"like_count"`
	CommentCount int       `gorm:"not null;default:0" json:"comment_count"`
	IsDeleted    bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

func (Blog) TableName() string {
	return "blogs"
}
