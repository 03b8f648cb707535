package consts

const (
	StatsTableLock  = "lock:statistics:stats_table"
	DailyReportLock = "lock:statistics:daily_report:"
)
