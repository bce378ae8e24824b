package kafka

import (
	"Halation/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// VotesHandler 消费 vote 表的 Canal 事件，维护作品票数缓存
type VotesHandler struct {
}

func NewVotesHandler() *VotesHandler {
	return &VotesHandler{}
}

func (s *VotesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("vote consumer setup")
	return nil
}

func (s *VotesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("vote consumer cleanup")
	return nil
}

func (s *VotesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-vote consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-vote process batch error", "err", err)
		return err
	}
	return nil
}

func (s *VotesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "votes")
	if err != nil {
		return err
	}

	if canalMsg.Type != INSERT && canalMsg.Type != DELETE {
		return nil
	}

	for _, row := range canalMsg.Data {
		postID := StrToUint64(row["post_id"])
		if postID == 0 {
			continue
		}
		ExecAction(ctx, ActionParams{
			TargetID:       postID,
			CountKeyPrefix: consts.PostVoteKey,
			DirtyKey:       consts.PostDirtyKey,
		})
	}
	return nil
}
