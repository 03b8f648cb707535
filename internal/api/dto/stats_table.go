package dto

import "Statistics/internal/model"

// StatColumn 统计列的来源字段、聚合方式与时间维度
type StatColumn struct {
	Field         string                  `json:"field"`
	StatsType     model.StatType          `json:"stats_type"`
	TimeDimension model.StatTimeDimension `json:"time_dimension"`
}

// StatsTableMessage 统计任务消息，由调度器投递、消费者执行
type StatsTableMessage struct {
	StartTime   string                `json:"start_time"` // 2006-01-02 15:04:05
	EndTime     string                `json:"end_time"`
	StatsTable  string                `json:"stats_table"`
	TableName   string                `json:"table_name"`
	StatColumns map[string]StatColumn `json:"stat_columns"`
}

// Key 同一时间段的消息落到同一分区
func (m *StatsTableMessage) Key() string {
	return m.StatsTable + "|" + m.StartTime
}

// StatsTableSpecDTO 统计表结构
type StatsTableSpecDTO struct {
	Entity      string                `json:"entity"`
	TableName   string                `json:"table_name"`
	SourceTable string                `json:"source_table"`
	Columns     map[string]StatColumn `json:"columns"`
}

// StatsRunResultDTO 手动执行统计的结果
type StatsRunResultDTO struct {
	Dispatched int      `json:"dispatched"`
	Skipped    []string `json:"skipped"`
}
