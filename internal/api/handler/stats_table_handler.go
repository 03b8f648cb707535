package handler

import (
	"Statistics/internal/api/dto"
	"Statistics/internal/pkg/response"
	"Statistics/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

// StatsRunner 加锁执行一次统计调度
type StatsRunner interface {
	RunNow(ctx context.Context) (*dto.StatsRunResultDTO, error)
}

type StatsTableHandler struct {
	statsTableSvc service.StatsTableService
	runner        StatsRunner
}

func NewStatsTableHandler(statsTableSvc service.StatsTableService, runner StatsRunner) *StatsTableHandler {
	return &StatsTableHandler{
		statsTableSvc: statsTableSvc,
		runner:        runner,
	}
}

// GetTables 当前声明的统计表
func (h *StatsTableHandler) GetTables(c *gin.Context) {
	response.Success(c, h.statsTableSvc.GetTableSpecs())
}

// RunTables 立即同步统计表并投递统计任务
func (h *StatsTableHandler) RunTables(c *gin.Context) {
	res, err := h.runner.RunNow(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
