package api

import "Statistics/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	DailyReportHandler *handler.DailyReportHandler
	StatsTableHandler  *handler.StatsTableHandler
}
