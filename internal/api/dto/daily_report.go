package dto

import "time"

type DailyMetricDTO struct {
	MetricID   string    `json:"metric_id"`
	MetricName string    `json:"metric_name"`
	MetricUnit *string   `json:"metric_unit"`
	Category   *string   `json:"category"`
	Value      float64   `json:"value"`
	UpdateTime time.Time `json:"update_time"`
}

type DailyReportDTO struct {
	ID         uint64                 `json:"id"`
	ReportDate string                 `json:"report_date"`
	Metrics    []*DailyMetricDTO      `json:"metrics"`
	ExtraData  map[string]interface{} `json:"extra_data"`
	CreateTime time.Time              `json:"create_time"`
	UpdateTime time.Time              `json:"update_time"`
}

// DailyReportUpsertDTO 指标格式 {"metric_id": {"name","value","unit","category"}}，或 {"metric_id": value}
type DailyReportUpsertDTO struct {
	Metrics   map[string]interface{} `json:"metrics" validate:"required"`
	ExtraData map[string]interface{} `json:"extra_data"`
}

type DateRangeQueryDTO struct {
	Start string `form:"start" validate:"required,datetime=2006-01-02"`
	End   string `form:"end" validate:"required,datetime=2006-01-02"`
}

type RecentReportsQueryDTO struct {
	Days int `form:"days" validate:"omitempty,min=1,max=366"`
}

type GenerateReportDTO struct {
	// Force 兼容旧参数，生成总是覆盖已有指标
	Force bool `json:"force"`
}

type GenerateReportResultDTO struct {
	Report    *DailyReportDTO `json:"report"`
	Generated int             `json:"generated"`
	Failed    []string        `json:"failed"`
	Force     bool            `json:"force"`
}

type MetricProviderDTO struct {
	MetricID      string `json:"metric_id"`
	MetricName    string `json:"metric_name"`
	Description   string `json:"description"`
	Unit          string `json:"unit"`
	Category      string `json:"category"`
	CategoryOrder int    `json:"category_order"`
}
