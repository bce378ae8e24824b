package model

import (
	"time"
)

type Post struct {
	ID           uint64    `gorm:"primaryKey"`
	UserID       uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Caption      string    `gorm:"type:varchar(1000)" json:"caption"`
	PhotoURL     string    `gorm:"type:varchar(255);not null" json:"photo_url"`
	ThumbnailURL string    `gorm:"type:varchar(255)" json:"thumbnail_url"`
	Lens         string    `gorm:"type:varchar(100)" json:"lens"`
	FilmStock    string    `gorm:"type:varchar(100)" json:"film_stock"`
	Camera       string    `gorm:"type:varchar(100)" json:"camera"`
	Settings     string    `gorm:"type:varchar(255)" json:"settings"` // 光圈/快门/ISO 自由文本
	LikeCount    int       `gorm:"not null;default:0" json:"like_count"`
	VoteCount    int       `gorm:"not null;default:0;index:idx_vote_count" json:"vote_count"`
	CommentCount int       `gorm:"not null;default:0" json:"comment_count"`
	Status       int8      `gorm:"not null;default:1" json:"status"`
	IsDeleted    bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt    time.Time `gorm:"index:idx_created_at" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
