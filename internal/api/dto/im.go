package dto

import "time"

// SendMessageReq 发送消息请求体
type SendMessageReq struct {
	ConversationID uint64 `json:"conversation_id"`
	TargetUserID   uint64 `json:"target_user_id"`
	Content        string `json:"content" binding:"required"`
	ReplyTo        uint64 `json:"reply_to"`
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID             string    `json:"id,omitempty"`
	ConversationID uint64    `json:"conversation_id"`
	SenderID       uint64    `json:"sender_id"`
	Content        string    `json:"content"`
	Seq            uint64    `json:"seq"`
	ReplyTo        uint64    `json:"reply_to,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ConversationDTO 会话列表项响应
type ConversationDTO struct {
	ConversationID uint64    `json:"conversation_id"`
	PeerID         uint64    `json:"peer_id"`
	LastMsgContent string    `json:"last_msg_content"`
	LastSenderID   uint64    `json:"last_sender_id"`
	LastMessageAt  time.Time `json:"lastMessageAt"`
	UnreadCount    uint64    `json:"unreadCount"`
	PeerReadSeq    uint64    `json:"peerReadSeq"` // 对方已读进度，用于渲染已读标记
}

// ReadReceiptDTO 已读回执推送
type ReadReceiptDTO struct {
	ConversationID uint64 `json:"conversation_id"`
	UserID         uint64 `json:"user_id"`
	ReadSeq        uint64 `json:"read_seq"`
	Type           string `json:"type"`
}

// MarkAsReadReq 标记为已读请求
type MarkAsReadReq struct {
	ConversationID uint64 `json:"conversation_id" binding:"required"`
	Sequence       uint64 `json:"sequence" binding:"required"` // 客户端当前看到的最后一条消息序号
}
