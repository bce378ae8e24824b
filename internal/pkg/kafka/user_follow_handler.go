package kafka

import (
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
)

// UserFollowsHandler 消费 user_follow 表的 Canal 事件。
// 关系变更后丢弃双方的列表与计数缓存并标脏，读路径回源重建
type UserFollowsHandler struct {
}

func NewUserFollowsHandler() *UserFollowsHandler {
	return &UserFollowsHandler{}
}

func (s *UserFollowsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user follow consumer setup")
	return nil
}

func (s *UserFollowsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user follow consumer cleanup")
	return nil
}

func (s *UserFollowsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user-follow consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-user-follow process batch error", "err", err)
		return err
	}
	log.Info("topic-user-follow consume claim end")
	return nil
}

func (s *UserFollowsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "user_follows")
	if err != nil || canalMsg == nil {
		return nil
	}

	if canalMsg.Type != INSERT && canalMsg.Type != DELETE {
		return nil
	}

	var affectedUIDs []interface{}

	for _, row := range canalMsg.Data {
		followerID := StrToUint64(row["follower_id"])
		followingID := StrToUint64(row["following_id"])
		if followerID == 0 || followingID == 0 {
			continue
		}
		affectedUIDs = append(affectedUIDs, followerID, followingID)

		follower := strconv.FormatUint(followerID, 10)
		following := strconv.FormatUint(followingID, 10)

		_ = redis.DeleteKey(ctx, consts.UserFollowingKey+follower)
		_ = redis.DeleteKey(ctx, consts.UserFollowerKey+following)
		_ = redis.DeleteKey(ctx, consts.UserFollowingCountKey+follower)
		_ = redis.DeleteKey(ctx, consts.UserFollowerCountKey+following)
	}

	if len(affectedUIDs) > 0 {
		if err = redis.SAdd(ctx, consts.UserFollowDirtyKey, affectedUIDs...); err != nil {
			log.Error("failed to mark follow dirty", "err", err, "msg_key", string(msg.Key))
			return err
		}
	}

	return nil
}
