package es

import "time"

// PostES 写入 ES 的帖子文档
type PostES struct {
	ID           uint64    `json:"id"`
	UserID       uint64    `json:"user_id"`
	Status       int       `json:"status"`
	Caption      string    `json:"caption"`
	Lens         string    `json:"lens"`
	FilmStock    string    `json:"film_stock"`
	Camera       string    `json:"camera"`
	ThumbnailURL string    `json:"thumbnail_url"`
	UserNickname string    `json:"user_nickname"`
	UserAvatar   string    `json:"user_avatar"`
	LikeCount    int       `json:"like_count"`
	VoteCount    int       `json:"vote_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Sort 游标值，仅查询结果包含，不入索引
	Sort []interface{} `json:"-"`
}
