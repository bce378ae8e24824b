package dto

// FollowListDTO 关注/粉丝列表
type FollowListDTO struct {
	List    []*UserCardDTO `json:"list"`
	HasMore bool           `json:"has_more"`
}
