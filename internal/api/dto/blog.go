package dto

type BlogCreateDTO struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type BlogUpdateDTO struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Content *string `json:"content"`
}

type BlogDTO struct {
	ID           uint64 `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
	IsLiked      bool   `json:"is_liked"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`

	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

type BlogWaterfallDTO struct {
	List    []*BlogDTO `json:"list"`
	HasMore bool       `json:"has_more"`
}
