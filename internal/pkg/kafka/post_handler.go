package kafka

import (
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/es"
	"Halation/internal/pkg/redis"
	"Halation/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// PostsHandler 消费 posts 表的 Canal 事件，维护作品搜索索引。
// 索引里冗余了作者昵称和头像，写入前回源 MySQL 补齐
type PostsHandler struct {
	userDBRepo repository.UserRepo
	postESRepo es.PostRepo
}

func NewPostsHandler(userDBRepo repository.UserRepo, postESRepo es.PostRepo) *PostsHandler {
	return &PostsHandler{
		userDBRepo: userDBRepo,
		postESRepo: postESRepo,
	}
}

func (s *PostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer setup")
	return nil
}

func (s *PostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer cleanup")
	return nil
}

func (s *PostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-post consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-post process batch error", "err", err)
		return err
	}
	log.Info("topic-post consume claim end")
	return nil
}

func (s *PostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "posts")
	if err != nil {
		return err
	}

	row := canalMsg.Data[0]
	postID := StrToUint64(row["id"])
	if postID == 0 {
		return nil
	}

	// 软删和物理删都从索引摘除
	if canalMsg.Type == DELETE || StrToString(row["is_deleted"]) == "1" {
		return s.postESRepo.DeletePost(ctx, postID)
	}

	switch canalMsg.Type {
	case INSERT, UPDATE:
		return s.fillUserDetailAndIndex(ctx, s.toESModel(row), canalMsg.TS)
	default:
		return nil
	}
}

func (s *PostsHandler) toESModel(row map[string]interface{}) *es.PostES {
	return &es.PostES{
		ID:           StrToUint64(row["id"]),
		UserID:       StrToUint64(row["user_id"]),
		Status:       StrToInt(row["status"]),
		Caption:      StrToString(row["caption"]),
		Lens:         StrToString(row["lens"]),
		FilmStock:    StrToString(row["film_stock"]),
		Camera:       StrToString(row["camera"]),
		ThumbnailURL: StrToString(row["thumbnail_url"]),
		LikeCount:    StrToInt(row["like_count"]),
		VoteCount:    StrToInt(row["vote_count"]),
		CommentCount: StrToInt(row["comment_count"]),
		CreatedAt:    StrToDateTime(row["created_at"]),
		UpdatedAt:    StrToDateTime(row["updated_at"]),
	}
}

// fillUserDetailAndIndex 补齐作者信息后覆写 ES，同一作者加锁避免并发覆写乱序
func (s *PostsHandler) fillUserDetailAndIndex(ctx context.Context, post *es.PostES, timeStamp int64) error {
	uuidStr := uuid.NewString()
	lockKey := consts.UserDetailLock + strconv.FormatUint(post.UserID, 10)
	if _, err := redis.TryLock(ctx, lockKey, uuidStr, 5*time.Second, -1); err != nil {
		return err
	}
	defer redis.UnLock(ctx, lockKey, uuidStr)

	users, err := s.userDBRepo.GetUserByIds(ctx, []uint64{post.UserID})
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return errors.New("post author not found")
	}
	post.UserNickname = users[0].Nickname
	post.UserAvatar = users[0].AvatarURL
	return s.postESRepo.IndexPost(ctx, post, timeStamp)
}
