package model

import (
	"time"
)

// Vote 月度评选投票，每用户每帖一票
type Vote struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	PostID    uint64    `gorm:"primaryKey;index:idx_post_id" json:"postId"`
	Value     int       `gorm:"not null;default:1" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Vote) TableName() string {
	return "votes"
}
