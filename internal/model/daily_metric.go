package model

import (
	"Statistics/internal/pkg/util"
	"time"
)

type DailyMetric struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	ReportID   uint64    `gorm:"not null;index:idx_statistics_daily_metric_report_metric,priority:1" json:"report_id"`
	MetricID   string    `gorm:"type:varchar(50);not null;index:idx_statistics_daily_metric_report_metric,priority:2;index:idx_statistics_daily_metric_metric_id" json:"metric_id"`
	MetricName string    `gorm:"type:varchar(50);not null" json:"metric_name"`
	MetricUnit *string   `gorm:"type:varchar(50)" json:"metric_unit"`
	Category   *string   `gorm:"type:varchar(50)" json:"category"`
	Value      float64   `gorm:"not null;default:0" json:"value"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

func (DailyMetric) TableName() string {
	return "statistics_daily_metric"
}

// SetValue 将任意类型的指标值转换为 float64
func (m *DailyMetric) SetValue(value any) {
	m.Value = util.ToFloat64(value)
}
