package metric

import (
	"Statistics/internal/pkg/util"
	"context"
	"time"
)

// CreatedCounter 统计某张表在时间段内新建的记录数
type CreatedCounter interface {
	CountCreatedBetween(ctx context.Context, table string, start, end time.Time) (int64, error)
}

// EntityCountProvider 当日新增记录数
type EntityCountProvider struct {
	Info
	table   string
	counter CreatedCounter
}

const EntityCategory = "entity"

// NewEntityCountProvider 指标 ID 为 {table}_daily_new
func NewEntityCountProvider(table, name string, counter CreatedCounter) *EntityCountProvider {
	return &EntityCountProvider{
		Info: Info{
			ID:           table + "_daily_new",
			Name:         name,
			Description:  "当日新增" + name,
			Unit:         "个",
			CategoryName: EntityCategory,
			Order:        10,
		},
		table:   table,
		counter: counter,
	}
}

func (p *EntityCountProvider) MetricValue(ctx context.Context, date time.Time) (any, error) {
	count, err := p.counter.CountCreatedBetween(ctx, p.table, util.GetMidnight(date), util.EndOfDay(date))
	if err != nil {
		return nil, err
	}
	return count, nil
}
