package kafka

import (
	"Statistics/internal/pkg/logger"
	"context"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

const (
	batchSize        = 32
	batchTimeout     = 1 * time.Second
	minRetryInterval = 100 * time.Millisecond
	maxRetryInterval = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc, maxRetries int) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()

	flush := func() {
		if len(batch) > 0 {
			processBatch(session, batch, logic, maxRetries)
			batch = make([]*sarama.ConsumerMessage, 0, batchSize)
		}
	}

	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			flush()
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，全部结束后提交最后一条的位移
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc, maxRetries int) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)
		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			consumeWithRetry(session.Context(), m, logic, maxRetries)
		}(msg)
	}
	wg.Wait()

	if len(messages) > 0 {
		session.MarkMessage(messages[len(messages)-1], "")
	}
}

// consumeWithRetry 指数退避重试，maxRetries <= 0 时一直重试直到成功或会话结束
func consumeWithRetry(parent context.Context, m *sarama.ConsumerMessage, logic LogicFunc, maxRetries int) bool {
	ctx := logger.WithTraceID(parent, traceIDOf(m))
	retryInterval := minRetryInterval

	for attempt := 1; ; attempt++ {
		err := logic(ctx, m)
		if err == nil {
			return true
		}
		if maxRetries > 0 && attempt > maxRetries {
			log.ErrorContext(ctx, "drop message after retries",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"attempts", attempt,
				"err", err)
			return false
		}

		log.WarnContext(ctx, "process message error", "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(retryInterval):
		}

		retryInterval *= 2
		if retryInterval > maxRetryInterval {
			retryInterval = maxRetryInterval
		}
	}
}

// traceIDOf 生产者写入的 trace_id 头，没有时按位移生成
func traceIDOf(m *sarama.ConsumerMessage) string {
	for _, h := range m.Headers {
		if h != nil && string(h.Key) == logger.TraceIDKey && len(h.Value) > 0 {
			return string(h.Value)
		}
	}
	return "kafka-" + m.Topic + "-" + time.Now().Format("20060102150405.000")
}
