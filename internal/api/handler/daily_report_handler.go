package handler

import (
	"Statistics/internal/api/dto"
	"Statistics/internal/model"
	"Statistics/internal/pkg/consts"
	"Statistics/internal/pkg/response"
	"Statistics/internal/pkg/util"
	"Statistics/internal/service"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

// ReportGenerator 加锁生成日报
type ReportGenerator interface {
	Generate(ctx context.Context, date time.Time) (*service.GenerateReportResult, error)
}

type DailyReportHandler struct {
	reportSvc service.DailyReportService
	generator ReportGenerator
}

func NewDailyReportHandler(reportSvc service.DailyReportService, generator ReportGenerator) *DailyReportHandler {
	return &DailyReportHandler{
		reportSvc: reportSvc,
		generator: generator,
	}
}

// GetReport 获取指定日期的日报
func (h *DailyReportHandler) GetReport(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.GetDailyReport(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toReportDTO(report))
}

// GetReportsByRange 获取日期区间内的日报
func (h *DailyReportHandler) GetReportsByRange(c *gin.Context) {
	var query dto.DateRangeQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	reports, err := h.reportSvc.GetDailyReportsByDateRange(c.Request.Context(), query.Start, query.End)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toReportDTOs(reports))
}

// GetRecentReports 获取最近 N 天的日报
func (h *DailyReportHandler) GetRecentReports(c *gin.Context) {
	var query dto.RecentReportsQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}
	if query.Days == 0 {
		query.Days = consts.DefaultRecentDays
	}

	reports, err := h.reportSvc.GetRecentDailyReports(c.Request.Context(), query.Days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toReportDTOs(reports))
}

// GetMetricValues 获取日期区间内各指标的值，指标 ID -> 日期 -> 值
func (h *DailyReportHandler) GetMetricValues(c *gin.Context) {
	var query dto.DateRangeQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	values, err := h.reportSvc.GetMetricValuesByDateRange(c.Request.Context(), query.Start, query.End)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, values)
}

// UpsertReport 创建或更新日报
func (h *DailyReportHandler) UpsertReport(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var req dto.DailyReportUpsertDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.reportSvc.CreateOrUpdateDailyReport(c.Request.Context(), date, req.Metrics, req.ExtraData)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toReportDTO(report))
}

// DeleteReport 删除日报
func (h *DailyReportHandler) DeleteReport(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	deleted, err := h.reportSvc.DeleteDailyReport(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, service.ErrReportNotFound)
		return
	}
	response.Success(c, nil)
}

// GenerateReport 立即生成指定日期的日报
func (h *DailyReportHandler) GenerateReport(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	day, _ := util.ParseDate(date)

	var req dto.GenerateReportDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, err)
			return
		}
	}

	res, err := h.generator.Generate(c.Request.Context(), day)
	if err != nil {
		response.Error(c, err)
		return
	}

	failed := res.Failed
	if failed == nil {
		failed = []string{}
	}
	response.Success(c, &dto.GenerateReportResultDTO{
		Report:    toReportDTO(res.Report),
		Generated: len(res.Generated),
		Failed:    failed,
		Force:     req.Force,
	})
}

// GetProviders 获取已注册的指标提供者
func (h *DailyReportHandler) GetProviders(c *gin.Context) {
	providers := h.reportSvc.GetMetricProviders()
	res := make([]*dto.MetricProviderDTO, 0, len(providers))
	for _, p := range providers {
		res = append(res, &dto.MetricProviderDTO{
			MetricID:      p.MetricID(),
			MetricName:    p.MetricName(),
			Description:   p.MetricDescription(),
			Unit:          p.MetricUnit(),
			Category:      p.Category(),
			CategoryOrder: p.CategoryOrder(),
		})
	}
	response.Success(c, res)
}

func dateParam(c *gin.Context) (string, bool) {
	date := c.Param("date")
	if _, err := util.ParseDate(date); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return "", false
	}
	return date, true
}

func toReportDTO(report *model.DailyReport) *dto.DailyReportDTO {
	if report == nil {
		return nil
	}
	res := &dto.DailyReportDTO{}
	_ = copier.Copy(res, report)
	if res.Metrics == nil {
		res.Metrics = make([]*dto.DailyMetricDTO, 0)
	}
	return res
}

func toReportDTOs(reports []*model.DailyReport) []*dto.DailyReportDTO {
	res := make([]*dto.DailyReportDTO, 0, len(reports))
	for _, r := range reports {
		res = append(res, toReportDTO(r))
	}
	return res
}
