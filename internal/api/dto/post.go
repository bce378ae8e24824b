package dto

type CreatePostDTO struct {
	Caption   string `json:"caption" validate:"omitempty,max=1000"`
	PhotoURL  string `json:"photo_url" validate:"required"`
	ThumbURL  string `json:"thumbnail_url"`
	Lens      string `json:"lens" validate:"omitempty,max=100"`
	FilmStock string `json:"film_stock" validate:"omitempty,max=100"`
	Camera    string `json:"camera" validate:"omitempty,max=100"`
	Settings  string `json:"settings" validate:"omitempty,max=255"`
}

// UpdatePostDTO 作品编辑，图片本身不可替换
type UpdatePostDTO struct {
	Caption   *string `json:"caption" validate:"omitempty,max=1000"`
	Lens      *string `json:"lens" validate:"omitempty,max=100"`
	FilmStock *string `json:"film_stock" validate:"omitempty,max=100"`
	Camera    *string `json:"camera" validate:"omitempty,max=100"`
	Settings  *string `json:"settings" validate:"omitempty,max=255"`
}

type PostDTO struct {
	ID           uint64 `json:"id"`
	Caption      string `json:"caption"`
	PhotoURL     string `json:"photo_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Lens         string `json:"lens,omitempty"`
	FilmStock    string `json:"film_stock,omitempty"`
	Camera       string `json:"camera,omitempty"`
	Settings     string `json:"settings,omitempty"`
	LikeCount    int64  `json:"like_count"`
	VoteCount    int64  `json:"vote_count"`
	CommentCount int64  `json:"comment_count"`
	IsLiked      bool   `json:"is_liked"`
	IsVoted      bool   `json:"is_voted"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`

	// User
	UserID    uint64 `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}

// PostWaterfallDTO 瀑布流响应，多取一条探测下一页；page_size 回显收敛后的实际值
type PostWaterfallDTO struct {
	List     []*PostDTO `json:"list"`
	HasMore  bool       `json:"has_more"`
	PageSize int        `json:"page_size"`
}

// PostNeighborsDTO 同月相邻作品，用于详情页左右翻页
type PostNeighborsDTO struct {
	Prev *PostDTO `json:"prev"`
	Next *PostDTO `json:"next"`
}

// MediaUploadDTO 图片上传结果
type MediaUploadDTO struct {
	PhotoURL     string `json:"photo_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}
