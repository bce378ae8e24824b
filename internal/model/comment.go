package model

import (
	"time"
)

// Comment 评论恰好挂在一篇作品或一篇随笔上，两个外键互斥
type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    *uint64   `gorm:"index:idx_post_id" json:"postId"`
	BlogID    *uint64   `gorm:"index:idx_blog_id" json:"blogId"`
	UserID    uint64    `gorm:"not null" json:"userId"`
	ParentID  *uint64   `gorm:"index:idx_parent_id" json:"parentId"` // nil 表示直接评论
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	LikeCount int       `gorm:"not null;default:0" json:"likeCount"`
	IsDeleted bool      `gorm:"type:tinyint(1);not null;default:0" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;references:ID"`
}

func (Comment) TableName() string {
	return "comments"
}
