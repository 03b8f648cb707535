package consts

const (
	// UncategorizedCategory 指标未设置分类时的展示名
	UncategorizedCategory = "未分类"
	// DefaultRecentDays 最近日报默认天数
	DefaultRecentDays = 7
	// MaxRecentDays 最近日报最大天数
	MaxRecentDays = 366
)
