package metric

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func static(id, name string, v any) Provider {
	return NewFuncProvider(Info{ID: id, Name: name}, func(context.Context, time.Time) (any, error) { return v, nil })
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	r := NewRegistry(static("a", "first", 1), static("b", "B", 2))
	r.Register(static("a", "second", 3))

	require.Equal(t, 2, r.Len())
	providers := r.Providers()
	assert.Equal(t, "a", providers[0].MetricID())
	assert.Equal(t, "second", providers[0].MetricName())
	assert.Equal(t, "b", providers[1].MetricID())

	v, err := r.Get("a").MetricValue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Nil(t, r.Get("missing"))
}

type stubCounter struct {
	table      string
	start, end time.Time
}

func (s *stubCounter) CountCreatedBetween(_ context.Context, table string, start, end time.Time) (int64, error) {
	s.table, s.start, s.end = table, start, end
	return 4, nil
}

func TestEntityCountProvider(t *testing.T) {
	counter := &stubCounter{}
	p := NewEntityCountProvider("order", "订单", counter)

	assert.Equal(t, "order_daily_new", p.MetricID())
	assert.Equal(t, EntityCategory, p.Category())

	date := time.Date(2024, 6, 1, 15, 30, 0, 0, time.Local)
	v, err := p.MetricValue(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)
	assert.Equal(t, "order", counter.table)
	assert.True(t, counter.start.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)))
	assert.True(t, counter.end.Equal(time.Date(2024, 6, 1, 23, 59, 59, 0, time.Local)))
}

func TestInfo_Accessors(t *testing.T) {
	info := Info{ID: "gmv", Name: "成交额", Description: "当日成交额", Unit: "元", CategoryName: "order", Order: 2}

	var p Provider = NewFuncProvider(info, func(context.Context, time.Time) (any, error) { return 1, nil })
	assert.Equal(t, "gmv", p.MetricID())
	assert.Equal(t, "成交额", p.MetricName())
	assert.Equal(t, "当日成交额", p.MetricDescription())
	assert.Equal(t, "元", p.MetricUnit())
	assert.Equal(t, "order", p.Category())
	assert.Equal(t, 2, p.CategoryOrder())
}
