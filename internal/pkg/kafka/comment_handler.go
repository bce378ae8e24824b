package kafka

import (
	"Halation/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// CommentsHandler 消费 comment 表的 Canal 事件，按挂载实体维护评论数缓存
type CommentsHandler struct {
}

func NewCommentsHandler() *CommentsHandler {
	return &CommentsHandler{}
}

func (s *CommentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer setup")
	return nil
}

func (s *CommentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("comment consumer cleanup")
	return nil
}

func (s *CommentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-comment consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-comment process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CommentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "comments")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT, DELETE:
	case UPDATE:
		// 软删除才影响计数
		if !s.isSoftDeleted(canalMsg) {
			return nil
		}
	default:
		return nil
	}

	for _, row := range canalMsg.Data {
		if postID := StrToUint64(row["post_id"]); postID != 0 {
			ExecAction(ctx, ActionParams{
				TargetID:       postID,
				CountKeyPrefix: consts.PostCommentKey,
				DirtyKey:       consts.PostDirtyKey,
			})
			continue
		}
		if blogID := StrToUint64(row["blog_id"]); blogID != 0 {
			ExecAction(ctx, ActionParams{
				TargetID:       blogID,
				CountKeyPrefix: consts.BlogCommentKey,
				DirtyKey:       consts.BlogDirtyKey,
			})
		}
	}
	return nil
}

func (s *CommentsHandler) isSoftDeleted(msg *CanalMessage) bool {
	if len(msg.Data) == 0 || len(msg.Old) == 0 {
		return false
	}
	oldVal, okOld := msg.Old[0]["is_deleted"]
	newVal, okNew := msg.Data[0]["is_deleted"]
	return okOld && okNew && StrToString(oldVal) == "0" && StrToString(newVal) == "1"
}
