package kafka

import (
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/es"
	"Halation/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// UsersHandler 消费 user 表的 Canal 事件，同步用户搜索索引，
// 昵称或头像变更时批量覆写作品索引里的冗余字段
type UsersHandler struct {
	userESRepo es.UserRepo
	postESRepo es.PostRepo
}

func NewUsersHandler(userESRepo es.UserRepo, postESRepo es.PostRepo) *UsersHandler {
	return &UsersHandler{
		userESRepo: userESRepo,
		postESRepo: postESRepo,
	}
}

func (s *UsersHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer setup")
	return nil
}

func (s *UsersHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer cleanup")
	return nil
}

func (s *UsersHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-user process batch error", "err", err)
		return err
	}
	log.Info("topic-user consume claim end")
	return nil
}

func (s *UsersHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "users")
	if err != nil {
		return err
	}

	row := canalMsg.Data[0]
	userID := StrToUint64(row["id"])
	if userID == 0 {
		return nil
	}

	// 注销用户从索引摘除
	if StrToString(row["is_delete"]) == "1" {
		return s.userESRepo.DeleteUser(ctx, userID)
	}

	user := s.toESModel(row)

	switch canalMsg.Type {
	case INSERT:
		return s.userESRepo.IndexUser(ctx, user, canalMsg.TS)
	case UPDATE:
		// 同一用户的并发变更加锁串行化
		lockKey := consts.UserESLock + strconv.FormatUint(userID, 10)
		uuidStr := uuid.NewString()
		lock, err := redis.TryLock(ctx, lockKey, uuidStr, 30*time.Second, 1)
		if err != nil {
			return err
		}
		if !lock {
			return nil
		}
		defer redis.UnLock(ctx, lockKey, uuidStr)

		if err = s.userESRepo.IndexUser(ctx, user, canalMsg.TS); err != nil {
			return err
		}

		if s.profileChanged(canalMsg) {
			return s.postESRepo.UpdatePostUserDetail(ctx, userID, user.Nickname, user.AvatarURL)
		}
		return nil
	default:
		return nil
	}
}

// profileChanged 判断这次变更是否触碰了作品索引冗余的展示字段
func (s *UsersHandler) profileChanged(msg *CanalMessage) bool {
	if len(msg.Old) == 0 {
		return false
	}
	_, nicknameChanged := msg.Old[0]["nickname"]
	_, avatarChanged := msg.Old[0]["avatar_url"]
	return nicknameChanged || avatarChanged
}

func (s *UsersHandler) toESModel(row map[string]interface{}) *es.UserES {
	return &es.UserES{
		ID:             StrToUint64(row["id"]),
		Username:       StrToString(row["username"]),
		Nickname:       StrToString(row["nickname"]),
		Bio:            StrToString(row["bio"]),
		AvatarURL:      StrToString(row["avatar_url"]),
		FollowerCount:  StrToInt(row["follower_count"]),
		FollowingCount: StrToInt(row["following_count"]),
		PostCount:      StrToInt(row["post_count"]),
	}
}
