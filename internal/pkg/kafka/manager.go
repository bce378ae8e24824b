package kafka

import (
	"Halation/internal/api/config"
	"Halation/internal/pkg/es"
	"Halation/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// consumerUnit 一个消费组与其处理器、topic 的绑定
type consumerUnit struct {
	name     string
	topic    string
	consumer sarama.ConsumerGroup
	handler  sarama.ConsumerGroupHandler
}

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	units []consumerUnit
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	userESRepo es.UserRepo,
	postESRepo es.PostRepo,
	userDBRepo repository.UserRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	bindings := []struct {
		name    string
		binding config.KafkaConsumerBinding
		handler sarama.ConsumerGroupHandler
	}{
		{"user", cfg.KafkaUserConsumer, NewUsersHandler(userESRepo, postESRepo)},
		{"user_follow", cfg.KafkaUserFollowConsumer, NewUserFollowsHandler()},
		{"post", cfg.KafkaPostConsumer, NewPostsHandler(userDBRepo, postESRepo)},
		{"like", cfg.KafkaLikeConsumer, NewLikesHandler()},
		{"vote", cfg.KafkaVoteConsumer, NewVotesHandler()},
		{"comment", cfg.KafkaCommentConsumer, NewCommentsHandler()},
	}

	m := &ConsumerManager{units: make([]consumerUnit, 0, len(bindings))}
	for _, b := range bindings {
		consumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, b.binding.GroupID, saramaCfg)
		if err != nil {
			return nil, err
		}
		m.units = append(m.units, consumerUnit{
			name:     b.name,
			topic:    b.binding.Topic,
			consumer: consumer,
			handler:  b.handler,
		})
	}

	return m, nil
}

// Start 启动所有消费者，阻塞到 ctx 取消后统一关闭
func (m *ConsumerManager) Start(ctx context.Context) error {
	for i := range m.units {
		unit := m.units[i]
		go func() {
			log.Info("kafka consumer started", "name", unit.name, "topic", unit.topic)
			for {
				if err := unit.consumer.Consume(ctx, []string{unit.topic}, unit.handler); err != nil {
					log.Error("error from consumer", "name", unit.name, "err", err)
				}
				if ctx.Err() != nil {
					return
				}
			}
		}()
	}

	<-ctx.Done()
	log.Info("kafka manager shutting down...")

	for i := range m.units {
		if err := m.units[i].consumer.Close(); err != nil {
			log.Error("failed to close consumer", "name", m.units[i].name, "err", err)
		}
	}

	return nil
}
