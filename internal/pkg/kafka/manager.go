package kafka

import (
	"Statistics/internal/api/config"
	"Statistics/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// ConsumerManager 管理统计任务消费者
type ConsumerManager struct {
	statsConsumer sarama.ConsumerGroup
	statsHandler  sarama.ConsumerGroupHandler
	topic         string
}

func NewConsumerManager(cfg *config.Config, aggregateSvc service.StatsAggregateService) (*ConsumerManager, error) {
	statsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaStatsConsumer.GroupID, newConsumerConfig(cfg.Kafka))
	if err != nil {
		return nil, errors.Wrap(err, "create stats consumer group")
	}

	return &ConsumerManager{
		statsConsumer: statsConsumer,
		statsHandler:  NewStatsTableHandler(aggregateSvc, cfg.Kafka.Consumer.MaxRetries),
		topic:         cfg.KafkaStatsConsumer.Topic,
	}, nil
}

// Start 启动消费者，直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) {
	go func() {
		for err := range m.statsConsumer.Errors() {
			log.Error("stats consumer error", "err", err)
		}
	}()

	go func() {
		log.Info("Stats consumer started", "topic", m.topic)
		for {
			if err := m.statsConsumer.Consume(ctx, []string{m.topic}, m.statsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()
}

func (m *ConsumerManager) Close() error {
	return m.statsConsumer.Close()
}
