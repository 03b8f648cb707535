package model

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

// DailyReport 统计日报，删除日报时级联删除其指标
type DailyReport struct {
	ID         uint64            `gorm:"primaryKey" json:"id"`
	ReportDate string            `gorm:"type:varchar(20);not null;uniqueIndex:idx_statistics_daily_report_date" json:"report_date"` // YYYY-MM-DD
	Metrics    []*DailyMetric    `gorm:"foreignKey:ReportID;references:ID;constraint:OnDelete:CASCADE" json:"metrics"`
	ExtraData  datatypes.JSONMap `gorm:"type:json" json:"extra_data"`
	CreateTime time.Time         `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime time.Time         `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

func (DailyReport) TableName() string {
	return "statistics_daily_report"
}

// NewDailyReport 构造指定日期的空日报
func NewDailyReport(reportDate string) *DailyReport {
	return &DailyReport{
		ReportDate: reportDate,
		Metrics:    make([]*DailyMetric, 0),
	}
}

// FindMetric 按指标 ID 查找
func (r *DailyReport) FindMetric(metricID string) *DailyMetric {
	for _, m := range r.Metrics {
		if m.MetricID == metricID {
			return m
		}
	}
	return nil
}

func (r *DailyReport) HasMetric(metricID string) bool {
	return r.FindMetric(metricID) != nil
}

// GetMetricValue 指标不存在时返回 def
func (r *DailyReport) GetMetricValue(metricID string, def float64) float64 {
	if m := r.FindMetric(metricID); m != nil {
		return m.Value
	}
	return def
}

// AddMetric 添加指标，同一个对象不会重复添加
func (r *DailyReport) AddMetric(metric *DailyMetric) {
	for _, m := range r.Metrics {
		if m == metric {
			return
		}
	}
	metric.ReportID = r.ID
	r.Metrics = append(r.Metrics, metric)
}

// RemoveMetric 移除指标，返回是否移除成功
func (r *DailyReport) RemoveMetric(metric *DailyMetric) bool {
	for i, m := range r.Metrics {
		if m == metric {
			r.Metrics = append(r.Metrics[:i], r.Metrics[i+1:]...)
			return true
		}
	}
	return false
}

// SetMetricValue 按指标 ID 查找或创建指标并写入值；unit/category 为 nil 时保留原值
func (r *DailyReport) SetMetricValue(metricID, metricName string, value any, unit, category *string) *DailyMetric {
	metric := r.FindMetric(metricID)
	if metric == nil {
		metric = &DailyMetric{MetricID: metricID}
		r.AddMetric(metric)
	}

	metric.MetricName = metricName
	if unit != nil {
		metric.MetricUnit = unit
	}
	if category != nil {
		metric.Category = category
	}
	metric.SetValue(value)
	return metric
}

// AddMetrics 批量设置指标
// 格式: {"metric_id": {"name": "...", "value": 1, "unit": "...", "category": "..."}}
// 兼容旧格式 {"metric_id": value}，此时名称即为指标 ID
// 新指标按指标 ID 字典序追加
func (r *DailyReport) AddMetrics(metrics map[string]any) {
	metricIDs := make([]string, 0, len(metrics))
	for metricID := range metrics {
		metricIDs = append(metricIDs, metricID)
	}
	sort.Strings(metricIDs)

	for _, metricID := range metricIDs {
		data := metrics[metricID]
		fields, ok := data.(map[string]any)
		if ok {
			name, hasName := fields["name"].(string)
			value, hasValue := fields["value"]
			if hasName && hasValue {
				r.SetMetricValue(metricID, name, value, optionalString(fields["unit"]), optionalString(fields["category"]))
				continue
			}
		}
		r.SetMetricValue(metricID, metricID, data, nil, nil)
	}
}

// ToPlainMap 导出为简单结构
func (r *DailyReport) ToPlainMap() map[string]any {
	metrics := make(map[string]any, len(r.Metrics))
	for _, m := range r.Metrics {
		metrics[m.MetricID] = map[string]any{
			"name":     m.MetricName,
			"value":    m.Value,
			"unit":     m.MetricUnit,
			"category": m.Category,
		}
	}
	return map[string]any{
		"id":          r.ID,
		"report_date": r.ReportDate,
		"metrics":     metrics,
		"extra_data":  r.ExtraData,
		"create_time": r.CreateTime,
		"update_time": r.UpdateTime,
	}
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}
