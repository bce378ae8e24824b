package model

import (
	"time"
)

// Like 点赞记录，三个目标列互斥，恰有一个非空。
// MySQL 唯一索引不约束 NULL 值，因此三组复合唯一索引互不干扰，
// 同一用户对同一目标的重复点赞由对应索引兜底。
type Like struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_post;uniqueIndex:idx_user_comment;uniqueIndex:idx_user_blog" json:"userId"`
	PostID    *uint64   `gorm:"uniqueIndex:idx_user_post;index:idx_post_id" json:"postId"`
	CommentID *uint64   `gorm:"uniqueIndex:idx_user_comment;index:idx_comment_id" json:"commentId"`
	BlogID    *uint64   `gorm:"uniqueIndex:idx_user_blog;index:idx_blog_id" json:"blogId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}

// LikeTargetKind 点赞目标类型
type LikeTargetKind int8

const (
	LikeTargetPost LikeTargetKind = iota + 1
	LikeTargetComment
	LikeTargetBlog
)

// LikeTarget 一次解析，后续行谓词与计数列均以此为准
type LikeTarget struct {
	Kind LikeTargetKind
	ID   uint64
}

// Fill 将目标写入对应的外键列
func (t LikeTarget) Fill(like *Like) {
	id := t.ID
	switch t.Kind {
	case LikeTargetPost:
		like.PostID = &id
	case LikeTargetComment:
		like.CommentID = &id
	case LikeTargetBlog:
		like.BlogID = &id
	}
}

// Column 返回目标对应的外键列名
func (t LikeTarget) Column() string {
	switch t.Kind {
	case LikeTargetComment:
		return "comment_id"
	case LikeTargetBlog:
		return "blog_id"
	default:
		return "post_id"
	}
}
