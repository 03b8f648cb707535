package model

// StatTimeDimension 统计的时间维度
type StatTimeDimension string

const (
	DailyNew     StatTimeDimension = "daily_new"
	WeeklyNew    StatTimeDimension = "weekly_new"
	MonthlyNew   StatTimeDimension = "monthly_new"
	DailyTotal   StatTimeDimension = "daily_total"
	WeeklyTotal  StatTimeDimension = "weekly_total"
	MonthlyTotal StatTimeDimension = "monthly_total"
)

const (
	DailyStatsSuffix   = "_daily_stats"
	WeeklyStatsSuffix  = "_weekly_stats"
	MonthlyStatsSuffix = "_monthly_stats"
)

// TableNameSuffix 同一粒度的 NEW/TOTAL 共用一张统计表
func (d StatTimeDimension) TableNameSuffix() string {
	switch d {
	case DailyNew, DailyTotal:
		return DailyStatsSuffix
	case WeeklyNew, WeeklyTotal:
		return WeeklyStatsSuffix
	case MonthlyNew, MonthlyTotal:
		return MonthlyStatsSuffix
	}
	return ""
}

// IsNew 是否只统计时间段内新增的数据
func (d StatTimeDimension) IsNew() bool {
	return d == DailyNew || d == WeeklyNew || d == MonthlyNew
}

func (d StatTimeDimension) Valid() bool {
	return d.TableNameSuffix() != ""
}

// StatType 聚合方式
type StatType string

const (
	StatSum   StatType = "sum"
	StatCount StatType = "count"
	StatAvg   StatType = "avg"
)

// Label 显示名称
func (t StatType) Label() string {
	switch t {
	case StatSum:
		return "总和"
	case StatCount:
		return "计数"
	case StatAvg:
		return "平均值"
	}
	return ""
}

func (t StatType) Valid() bool {
	return t.Label() != ""
}
