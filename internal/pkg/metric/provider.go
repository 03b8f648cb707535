package metric

import (
	"context"
	"time"
)

// Provider 日报指标提供者
type Provider interface {
	MetricID() string
	MetricName() string
	MetricDescription() string
	// MetricUnit 为空表示无单位
	MetricUnit() string
	Category() string
	CategoryOrder() int
	// MetricValue 计算指定日期的指标值
	MetricValue(ctx context.Context, date time.Time) (any, error)
}

// Info 指标的描述信息
type Info struct {
	ID           string
	Name         string
	Description  string
	Unit         string
	CategoryName string
	Order        int
}

func (i Info) MetricID() string          { return i.ID }
func (i Info) MetricName() string        { return i.Name }
func (i Info) MetricDescription() string { return i.Description }
func (i Info) MetricUnit() string        { return i.Unit }
func (i Info) Category() string          { return i.CategoryName }
func (i Info) CategoryOrder() int        { return i.Order }

// FuncProvider 由函数计算指标值
type FuncProvider struct {
	Info
	fn func(ctx context.Context, date time.Time) (any, error)
}

func NewFuncProvider(info Info, fn func(ctx context.Context, date time.Time) (any, error)) *FuncProvider {
	return &FuncProvider{Info: info, fn: fn}
}

func (p *FuncProvider) MetricValue(ctx context.Context, date time.Time) (any, error) {
	return p.fn(ctx, date)
}
