package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotifyBoxRepo interface {
	CreateNotification(ctx context.Context, msg *NotifyModel) error
	GetNotificationList(ctx context.Context, userID uint64, limit, offset int64) ([]*NotifyModel, error)
	MarkAsRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*NotifyModel, error)
	DeleteNotification(ctx context.Context, userID uint64, msgID string) error
	DeleteAllNotifications(ctx context.Context, userID uint64) error
}

type notifyBoxRepoImpl struct {
	col *mongo.Collection
}

func NewNotifyBoxRepo(db *mongo.Database) NotifyBoxRepo {
	return &notifyBoxRepoImpl{
		col: db.Collection("notify_box"),
	}
}

// CreateNotification 插入新通知
func (s *notifyBoxRepoImpl) CreateNotification(ctx context.Context, msg *NotifyModel) error {
	_, err := s.col.InsertOne(ctx, msg)
	return err
}

// GetNotificationList 分页获取用户的通知列表 (按时间倒序)
func (s *notifyBoxRepoImpl) GetNotificationList(ctx context.Context, userID uint64, limit, offset int64) ([]*NotifyModel, error) {
	filter := bson.M{"receiver_id": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var list []*NotifyModel
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkAsRead 标记单条通知为已读
func (s *notifyBoxRepoImpl) MarkAsRead(ctx context.Context, userID uint64, msgID string) error {
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return mongo.ErrInvalidIndexValue
	}
	filter := bson.M{"_id": objectID, "receiver_id": userID}
	update := bson.M{"$set": bson.M{"is_read": true}}
	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllAsRead 将用户所有未读通知标记为已读
func (s *notifyBoxRepoImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	filter := bson.M{"receiver_id": userID, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := s.col.UpdateMany(ctx, filter, update)
	return err
}

// GetUnreadCount 获取用户的未读通知总数
func (s *notifyBoxRepoImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	filter := bson.M{"receiver_id": userID, "is_read": false}
	return s.col.CountDocuments(ctx, filter)
}

// DeleteNotification 删除单条通知，只允许收件人本人删除
func (s *notifyBoxRepoImpl) DeleteNotification(ctx context.Context, userID uint64, msgID string) error {
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return mongo.ErrInvalidIndexValue
	}
	filter := bson.M{"_id": objectID, "receiver_id": userID}
	result, err := s.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteAllNotifications 清空用户信箱
func (s *notifyBoxRepoImpl) DeleteAllNotifications(ctx context.Context, userID uint64) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"receiver_id": userID})
	return err
}

// GetByID 根据 ID 获取通知
func (s *notifyBoxRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*NotifyModel, error) {
	var msg NotifyModel
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
