package kafka

import (
	"Halation/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// LikesHandler 消费 like 表的 Canal 事件。
// 一行点赞记录指向作品、评论、博客三者之一，按非空外键路由
type LikesHandler struct {
}

func NewLikesHandler() *LikesHandler {
	return &LikesHandler{}
}

func (s *LikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("like consumer setup")
	return nil
}

func (s *LikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("like consumer cleanup")
	return nil
}

func (s *LikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-like consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-like process batch error", "err", err)
		return err
	}
	return nil
}

func (s *LikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "likes")
	if err != nil {
		return err
	}

	// 点赞是物理增删，UPDATE 不会出现
	if canalMsg.Type != INSERT && canalMsg.Type != DELETE {
		return nil
	}

	for _, row := range canalMsg.Data {
		if postID := StrToUint64(row["post_id"]); postID != 0 {
			ExecAction(ctx, ActionParams{
				TargetID:       postID,
				CountKeyPrefix: consts.PostLikeKey,
				DirtyKey:       consts.PostDirtyKey,
			})
			continue
		}
		if commentID := StrToUint64(row["comment_id"]); commentID != 0 {
			ExecAction(ctx, ActionParams{
				TargetID:       commentID,
				CountKeyPrefix: consts.CommentLikeKey,
				DirtyKey:       consts.CommentLikeDirtyKey,
			})
			continue
		}
		if blogID := StrToUint64(row["blog_id"]); blogID != 0 {
			ExecAction(ctx, ActionParams{
				TargetID:       blogID,
				CountKeyPrefix: consts.BlogLikeKey,
				DirtyKey:       consts.BlogDirtyKey,
			})
		}
	}
	return nil
}
