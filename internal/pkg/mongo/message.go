package mongo

import (
	"time"
)

// Message MongoDB 消息明细模型
type Message struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	ConversationID uint64    `bson:"conversation_id" json:"conversationId"` // 关联 MySQL 的会话 ID
	SenderID       uint64    `bson:"sender_id" json:"senderId"`
	Content        string    `bson:"content" json:"content"`
	Seq            uint64    `bson:"seq" json:"seq"` // 该消息在会话中的唯一绝对序号 (来自 MySQL)
	ReplyTo        uint64    `bson:"reply_to,omitempty" json:"replyTo"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
