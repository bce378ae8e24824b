package dto

// CommentCreateDTO 评论目标二选一：post_id 或 blog_id
type CommentCreateDTO struct {
	PostID   uint64  `json:"post_id"`
	BlogID   uint64  `json:"blog_id"`
	ParentID *uint64 `json:"parent_id"`
	Content  string  `json:"content" validate:"required,max=1000"`
}

type CommentDTO struct {
	ID        uint64  `json:"id"`
	PostID    uint64  `json:"post_id,omitempty"`
	BlogID    uint64  `json:"blog_id,omitempty"`
	ParentID  *uint64 `json:"parent_id,omitempty"`
	Content   string  `json:"content"`
	LikeCount int64   `json:"like_count"`
	IsLiked   bool    `json:"is_liked"`
	CreatedAt string  `json:"created_at"`

	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

type CommentListDTO struct {
	List    []*CommentDTO `json:"list"`
	HasMore bool          `json:"has_more"`
}
