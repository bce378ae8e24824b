package dto

import "time"

// NotificationDTO 通知信箱条目
type NotificationDTO struct {
	ID        string         `json:"id"`
	SenderID  uint64         `json:"sender_id"`
	Type      int8           `json:"type"`
	TargetID  uint64         `json:"target_id"`
	Content   string         `json:"content"`
	Payload   map[string]any `json:"payload,omitempty"`
	IsRead    bool           `json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}

// NotifyListDTO 通知列表
type NotifyListDTO struct {
	List        []*NotificationDTO `json:"list"`
	HasMore     bool               `json:"has_more"`
	UnreadCount int64              `json:"unread_count"`
}
