package kafka

import (
	"Statistics/internal/api/config"
	"Statistics/internal/api/dto"
	"Statistics/internal/pkg/logger"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// StatsProducer 投递统计任务消息
type StatsProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewStatsProducer(cfg *config.Config) (*StatsProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newProducerConfig(cfg.Kafka))
	if err != nil {
		return nil, errors.Wrap(err, "create stats producer")
	}
	return newStatsProducer(producer, cfg.KafkaStatsConsumer.Topic), nil
}

func newStatsProducer(producer sarama.SyncProducer, topic string) *StatsProducer {
	return &StatsProducer{producer: producer, topic: topic}
}

// Dispatch 以 统计表|开始时间 作为消息 key，同一时间段的任务落在同一分区
func (p *StatsProducer) Dispatch(ctx context.Context, msg *dto.StatsTableMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrapf(err, "marshal stats message %s", msg.Key())
	}

	pm := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.Key()),
		Value: sarama.ByteEncoder(body),
	}
	if traceID, ok := ctx.Value(logger.TraceIDKey).(string); ok {
		pm.Headers = []sarama.RecordHeader{{Key: []byte(logger.TraceIDKey), Value: []byte(traceID)}}
	}

	partition, offset, err := p.producer.SendMessage(pm)
	if err != nil {
		return errors.Wrapf(err, "send stats message %s", msg.Key())
	}

	log.InfoContext(ctx, "stats message dispatched",
		"key", msg.Key(),
		"partition", partition,
		"offset", offset)
	return nil
}

func (p *StatsProducer) Close() error {
	return p.producer.Close()
}
