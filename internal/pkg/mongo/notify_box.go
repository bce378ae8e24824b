package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 通知类型
const (
	NotifyTypePostLike    int8 = 1
	NotifyTypePostVote    int8 = 2
	NotifyTypePostComment int8 = 3
	NotifyTypeCommentLike int8 = 4
	NotifyTypeFollowed    int8 = 5
	NotifyTypeBlogLike    int8 = 6
	NotifyTypeMessage     int8 = 7
	NotifyTypeBlogComment int8 = 8
)

// NotifyModel 通知信箱模型
type NotifyModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID uint64             `bson:"receiver_id" json:"receiverId"`
	SenderID   uint64             `bson:"sender_id" json:"senderId"` // 动作发起者ID (系统通知可为0)
	Type       int8               `bson:"type" json:"type"`
	TargetID   uint64             `bson:"target_id" json:"targetId"` // 关联的目标ID (如帖子ID、评论ID)
	Content    string             `bson:"content" json:"content"`    // 通知文案预览或评论片段
	Payload    map[string]any     `bson:"payload" json:"payload"`
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
