package kafka

import (
	"Statistics/internal/api/dto"
	"Statistics/internal/service"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAggregateService struct {
	handled []*dto.StatsTableMessage
	errs    []error
}

func (f *fakeAggregateService) HandleStatsMessage(_ context.Context, msg *dto.StatsTableMessage) error {
	f.handled = append(f.handled, msg)
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func consumerMessage(t *testing.T, msg *dto.StatsTableMessage) *sarama.ConsumerMessage {
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{Topic: "stats", Key: []byte(msg.Key()), Value: body}
}

func TestStatsTableHandler_Logic(t *testing.T) {
	svc := &fakeAggregateService{}
	h := NewStatsTableHandler(svc, 3)

	require.NoError(t, h.logic(context.Background(), consumerMessage(t, sampleMessage())))
	require.Len(t, svc.handled, 1)
	assert.Equal(t, "order_daily_stats", svc.handled[0].StatsTable)
	assert.Equal(t, "2024-06-02 23:59:59", svc.handled[0].EndTime)
}

func TestStatsTableHandler_DropsMalformedMessages(t *testing.T) {
	svc := &fakeAggregateService{errs: []error{fmt.Errorf("%w: start_time", service.ErrStatsMessageInvalid)}}
	h := NewStatsTableHandler(svc, 3)

	assert.NoError(t, h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte("{not json")}))
	assert.Empty(t, svc.handled)

	assert.NoError(t, h.logic(context.Background(), consumerMessage(t, sampleMessage())))
	assert.Len(t, svc.handled, 1)
}

func TestStatsTableHandler_ReturnsRetryableErrors(t *testing.T) {
	dbErr := errors.New("deadlock")
	svc := &fakeAggregateService{errs: []error{dbErr}}
	h := NewStatsTableHandler(svc, 3)

	assert.ErrorIs(t, h.logic(context.Background(), consumerMessage(t, sampleMessage())), dbErr)
}

func TestConsumeWithRetry(t *testing.T) {
	attempts := 0
	failTwice := func(context.Context, *sarama.ConsumerMessage) error {
		attempts++
		if attempts <= 2 {
			return errors.New("temporary")
		}
		return nil
	}
	assert.True(t, consumeWithRetry(context.Background(), &sarama.ConsumerMessage{}, failTwice, 5))
	assert.Equal(t, 3, attempts)

	attempts = 0
	alwaysFail := func(context.Context, *sarama.ConsumerMessage) error {
		attempts++
		return errors.New("permanent")
	}
	assert.False(t, consumeWithRetry(context.Background(), &sarama.ConsumerMessage{}, alwaysFail, 2))
	assert.Equal(t, 3, attempts)
}

func TestTraceIDOf(t *testing.T) {
	m := &sarama.ConsumerMessage{
		Topic:   "stats",
		Headers: []*sarama.RecordHeader{{Key: []byte("trace_id"), Value: []byte("job-stats-1")}},
	}
	assert.Equal(t, "job-stats-1", traceIDOf(m))
	assert.Contains(t, traceIDOf(&sarama.ConsumerMessage{Topic: "stats"}), "kafka-stats-")
}
