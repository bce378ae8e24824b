package dto

// SearchUserListDTO 用户搜索结果
type SearchUserListDTO struct {
	List    []*UserCardDTO `json:"list"`
	HasMore bool           `json:"has_more"`
}

// SearchPostListDTO 帖子搜索结果
type SearchPostListDTO struct {
	List    []*PostDTO `json:"list"`
	HasMore bool       `json:"has_more"`
	Cursor  string     `json:"cursor,omitempty"`
}
