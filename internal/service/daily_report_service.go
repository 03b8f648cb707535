package service

import (
	"Statistics/internal/model"
	"Statistics/internal/pkg/metric"
	"Statistics/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

// GenerateReportResult 一次日报生成的结果
type GenerateReportResult struct {
	Report *model.DailyReport
	// Generated 本次写入的指标
	Generated []*model.DailyMetric
	// Failed 计算失败的指标 ID
	Failed []string
}

type DailyReportService interface {
	// RegisterMetricProvider 注册指标提供者，同 ID 后注册的覆盖先注册的
	RegisterMetricProvider(p metric.Provider)
	GetMetricProviders() []metric.Provider
	GetMetricProvider(metricID string) (metric.Provider, error)
	// GenerateDailyReport 调用所有指标提供者生成指定日期的日报
	GenerateDailyReport(ctx context.Context, date time.Time) (*GenerateReportResult, error)
	// CreateOrUpdateDailyReport 按日期创建或更新日报
	CreateOrUpdateDailyReport(ctx context.Context, reportDate string, metrics map[string]any, extraData map[string]any) (*model.DailyReport, error)
	GetDailyReport(ctx context.Context, reportDate string) (*model.DailyReport, error)
	GetDailyReportsByDateRange(ctx context.Context, startDate, endDate string) ([]*model.DailyReport, error)
	// GetRecentDailyReports 最近 days 天（含今天）的日报
	GetRecentDailyReports(ctx context.Context, days int) ([]*model.DailyReport, error)
	// DeleteDailyReport 返回是否删除了日报
	DeleteDailyReport(ctx context.Context, reportDate string) (bool, error)
	// GetMetricValuesByDateRange 指标 ID -> 日期 -> 值
	GetMetricValuesByDateRange(ctx context.Context, startDate, endDate string) (map[string]map[string]float64, error)
}

type dailyReportServiceImpl struct {
	reportRepo repository.DailyReportRepo
	metricRepo repository.DailyMetricRepo
	registry   *metric.Registry
	now        func() time.Time
}

func NewDailyReportService(
	reportRepo repository.DailyReportRepo,
	metricRepo repository.DailyMetricRepo,
	registry *metric.Registry,
) DailyReportService {
	if registry == nil {
		registry = metric.NewRegistry()
	}
	return &dailyReportServiceImpl{
		reportRepo: reportRepo,
		metricRepo: metricRepo,
		registry:   registry,
		now:        time.Now,
	}
}

func (s *dailyReportServiceImpl) RegisterMetricProvider(p metric.Provider) {
	s.registry.Register(p)
}

func (s *dailyReportServiceImpl) GetMetricProviders() []metric.Provider {
	return s.registry.Providers()
}

func (s *dailyReportServiceImpl) GetMetricProvider(metricID string) (metric.Provider, error) {
	p := s.registry.Get(metricID)
	if p == nil {
		return nil, ErrProviderNotFound
	}
	return p, nil
}

func (s *dailyReportServiceImpl) GenerateDailyReport(ctx context.Context, date time.Time) (*GenerateReportResult, error) {
	reportDate := date.Format(time.DateOnly)

	report, err := s.loadOrCreate(ctx, reportDate)
	if err != nil {
		return nil, err
	}

	result := &GenerateReportResult{
		Report:    report,
		Generated: make([]*model.DailyMetric, 0, s.registry.Len()),
		Failed:    make([]string, 0),
	}

	for _, p := range s.registry.Providers() {
		value, err := p.MetricValue(ctx, date)
		if err != nil {
			log.ErrorContext(ctx, "compute daily metric error",
				"metric_id", p.MetricID(),
				"report_date", reportDate,
				"err", fmt.Errorf("%w: %w", ErrProviderCompute, err))
			result.Failed = append(result.Failed, p.MetricID())
			continue
		}

		m := report.SetMetricValue(p.MetricID(), p.MetricName(), value, optionalString(p.MetricUnit()), optionalString(p.Category()))
		m.ReportID = report.ID
		if err = s.metricRepo.Save(ctx, m); err != nil {
			return result, fmt.Errorf("save metric %s: %w", p.MetricID(), err)
		}
		result.Generated = append(result.Generated, m)
	}

	log.InfoContext(ctx, "daily report generated",
		"report_date", reportDate,
		"generated", len(result.Generated),
		"failed", len(result.Failed))
	return result, nil
}

func (s *dailyReportServiceImpl) CreateOrUpdateDailyReport(ctx context.Context, reportDate string, metrics map[string]any, extraData map[string]any) (*model.DailyReport, error) {
	if _, err := time.Parse(time.DateOnly, reportDate); err != nil {
		return nil, ErrParamInvalid
	}

	report, err := s.loadOrCreate(ctx, reportDate)
	if err != nil {
		return nil, err
	}

	report.AddMetrics(metrics)
	if extraData != nil {
		report.ExtraData = extraData
	}
	if err = s.reportRepo.Save(ctx, report); err != nil {
		return nil, err
	}

	for _, m := range report.Metrics {
		m.ReportID = report.ID
		if err = s.metricRepo.Save(ctx, m); err != nil {
			return nil, fmt.Errorf("save metric %s: %w", m.MetricID, err)
		}
	}
	return report, nil
}

func (s *dailyReportServiceImpl) GetDailyReport(ctx context.Context, reportDate string) (*model.DailyReport, error) {
	report, err := s.reportRepo.FindByDate(ctx, reportDate)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrReportNotFound
	}
	return report, nil
}

func (s *dailyReportServiceImpl) GetDailyReportsByDateRange(ctx context.Context, startDate, endDate string) ([]*model.DailyReport, error) {
	if startDate > endDate {
		return nil, ErrParamInvalid
	}
	return s.reportRepo.FindByDateRange(ctx, startDate, endDate)
}

func (s *dailyReportServiceImpl) GetRecentDailyReports(ctx context.Context, days int) ([]*model.DailyReport, error) {
	if days <= 0 {
		return nil, ErrParamInvalid
	}
	now := s.now()
	start := now.AddDate(0, 0, -(days - 1)).Format(time.DateOnly)
	return s.reportRepo.FindByDateRange(ctx, start, now.Format(time.DateOnly))
}

func (s *dailyReportServiceImpl) DeleteDailyReport(ctx context.Context, reportDate string) (bool, error) {
	report, err := s.reportRepo.FindByDate(ctx, reportDate)
	if err != nil {
		return false, err
	}
	if report == nil {
		return false, nil
	}
	if err = s.reportRepo.Remove(ctx, report); err != nil {
		return false, err
	}
	return true, nil
}

func (s *dailyReportServiceImpl) GetMetricValuesByDateRange(ctx context.Context, startDate, endDate string) (map[string]map[string]float64, error) {
	reports, err := s.GetDailyReportsByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return map[string]map[string]float64{}, nil
	}

	reportIDs := make([]uint64, 0, len(reports))
	dates := make(map[uint64]string, len(reports))
	for _, r := range reports {
		reportIDs = append(reportIDs, r.ID)
		dates[r.ID] = r.ReportDate
	}

	values, err := s.metricRepo.GetMetricValuesForReports(ctx, reportIDs)
	if err != nil {
		return nil, err
	}

	res := make(map[string]map[string]float64, len(values))
	for metricID, byReport := range values {
		byDate := make(map[string]float64, len(byReport))
		for reportID, v := range byReport {
			byDate[dates[reportID]] = v
		}
		res[metricID] = byDate
	}
	return res, nil
}

// loadOrCreate 日报不存在时先落库，指标才能关联到日报 ID
func (s *dailyReportServiceImpl) loadOrCreate(ctx context.Context, reportDate string) (*model.DailyReport, error) {
	report, err := s.reportRepo.FindByDate(ctx, reportDate)
	if err != nil {
		return nil, err
	}
	if report != nil {
		return report, nil
	}

	report = model.NewDailyReport(reportDate)
	if err = s.reportRepo.Save(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// optionalString 空字符串按 NULL 存储
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
