package kafka

import (
	"Statistics/internal/api/dto"
	"Statistics/internal/service"
	"context"
	"errors"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// StatsTableHandler 消费统计任务消息并执行统计
type StatsTableHandler struct {
	aggregateSvc service.StatsAggregateService
	maxRetries   int
}

func NewStatsTableHandler(aggregateSvc service.StatsAggregateService, maxRetries int) *StatsTableHandler {
	return &StatsTableHandler{
		aggregateSvc: aggregateSvc,
		maxRetries:   maxRetries,
	}
}

func (s *StatsTableHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("stats table consumer setup")
	return nil
}

func (s *StatsTableHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("stats table consumer cleanup")
	return nil
}

func (s *StatsTableHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-stats consume claim", "partition", claim.Partition())
	if err := pullMessageBatch(session, claim, s.logic, s.maxRetries); err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-stats consume claim end", "partition", claim.Partition())
	return nil
}

// logic 格式错误的消息直接丢弃，其余错误交给重试
func (s *StatsTableHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var statsMsg dto.StatsTableMessage
	if err := json.Unmarshal(msg.Value, &statsMsg); err != nil {
		log.ErrorContext(ctx, "unmarshal stats message error", "offset", msg.Offset, "err", err)
		return nil
	}

	err := s.aggregateSvc.HandleStatsMessage(ctx, &statsMsg)
	if errors.Is(err, service.ErrStatsMessageInvalid) {
		log.ErrorContext(ctx, "invalid stats message", "key", string(msg.Key), "err", err)
		return nil
	}
	return err
}
