package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/mongo"
	"Halation/internal/pkg/redis"
	"Halation/internal/pkg/util"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// NotifyService 通知信箱：入库并向在线连接实时推送
type NotifyService interface {
	Notify(ctx context.Context, msg *mongo.NotifyModel) error
	GetNotifications(ctx context.Context, userID uint64, page, pageSize int) (*dto.NotifyListDTO, error)
	MarkAsRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	DeleteNotification(ctx context.Context, userID uint64, msgID string) error
	DeleteAllNotifications(ctx context.Context, userID uint64) error
}

type notifyServiceImpl struct {
	boxRepo mongo.NotifyBoxRepo
}

func NewNotifyService(boxRepo mongo.NotifyBoxRepo) NotifyService {
	return &notifyServiceImpl{boxRepo: boxRepo}
}

func (s *notifyServiceImpl) Notify(ctx context.Context, msg *mongo.NotifyModel) error {
	// 自己触发的动作不通知自己
	if msg.ReceiverID == msg.SenderID {
		return nil
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	if err := s.boxRepo.CreateNotification(ctx, msg); err != nil {
		return err
	}

	go func() {
		data, err := json.Marshal(map[string]any{
			"type":      "NOTIFY",
			"notify":    msg,
			"timestamp": time.Now().Unix(),
		})
		if err != nil {
			return
		}
		channel := consts.IMUserKey + strconv.FormatUint(msg.ReceiverID, 10)
		pushCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err = redis.Publish(pushCtx, channel, data); err != nil {
			log.Error("Failed to push notification", "receiver", msg.ReceiverID, "err", err)
		}
	}()

	return nil
}

func (s *notifyServiceImpl) GetNotifications(ctx context.Context, userID uint64, page, pageSize int) (*dto.NotifyListDTO, error) {
	page, pageSize = util.ClampPage(page, pageSize)
	offset := int64((page - 1) * pageSize)
	list, err := s.boxRepo.GetNotificationList(ctx, userID, int64(pageSize)+1, offset)
	if err != nil {
		return nil, err
	}

	hasMore := len(list) > pageSize
	if hasMore {
		list = list[:pageSize]
	}

	items := make([]*dto.NotificationDTO, 0, len(list))
	for _, m := range list {
		items = append(items, &dto.NotificationDTO{
			ID:        m.ID.Hex(),
			SenderID:  m.SenderID,
			Type:      m.Type,
			TargetID:  m.TargetID,
			Content:   m.Content,
			Payload:   m.Payload,
			IsRead:    m.IsRead,
			CreatedAt: m.CreatedAt,
		})
	}

	unread, _ := s.boxRepo.GetUnreadCount(ctx, userID)

	return &dto.NotifyListDTO{List: items, HasMore: hasMore, UnreadCount: unread}, nil
}

func (s *notifyServiceImpl) MarkAsRead(ctx context.Context, userID uint64, msgID string) error {
	if err := s.boxRepo.MarkAsRead(ctx, userID, msgID); err != nil {
		return ErrNotifyNotFound
	}
	return nil
}

func (s *notifyServiceImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	return s.boxRepo.MarkAllAsRead(ctx, userID)
}

func (s *notifyServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.boxRepo.GetUnreadCount(ctx, userID)
}

func (s *notifyServiceImpl) DeleteNotification(ctx context.Context, userID uint64, msgID string) error {
	if err := s.boxRepo.DeleteNotification(ctx, userID, msgID); err != nil {
		return ErrNotifyNotFound
	}
	return nil
}

func (s *notifyServiceImpl) DeleteAllNotifications(ctx context.Context, userID uint64) error {
	return s.boxRepo.DeleteAllNotifications(ctx, userID)
}
