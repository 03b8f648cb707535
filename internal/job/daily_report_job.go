package job

import (
	"Statistics/internal/pkg/consts"
	"Statistics/internal/pkg/logger"
	"Statistics/internal/pkg/util"
	"Statistics/internal/service"
	"context"
	"errors"
	log "log/slog"
	"time"
)

// DailyReportJob 生成前一天的日报
type DailyReportJob struct {
	reportSvc service.DailyReportService
	locker    Locker
	lockTTL   time.Duration
	now       func() time.Time
}

func NewDailyReportJob(reportSvc service.DailyReportService, locker Locker, lockTTL time.Duration) *DailyReportJob {
	return &DailyReportJob{
		reportSvc: reportSvc,
		locker:    locker,
		lockTTL:   lockTTL,
		now:       time.Now,
	}
}

func (s *DailyReportJob) Run() {
	ctx := logger.NewTraceContext("job-report")

	res, err := s.Generate(ctx, util.Yesterday(s.now()))
	if errors.Is(err, service.ErrTaskRunning) {
		log.WarnContext(ctx, "daily report job is already running")
		return
	}
	if err != nil {
		log.ErrorContext(ctx, "daily report job error", "err", err)
		return
	}
	if len(res.Generated) == 0 {
		log.WarnContext(ctx, "daily report generated without metrics", "report_date", res.Report.ReportDate)
	}
}

// Generate 生成指定日期的日报，同一日期同时只会有一次生成
func (s *DailyReportJob) Generate(ctx context.Context, date time.Time) (*service.GenerateReportResult, error) {
	var res *service.GenerateReportResult
	key := consts.DailyReportLock + date.Format(time.DateOnly)
	err := withLock(ctx, s.locker, key, s.lockTTL, func() error {
		var err error
		res, err = s.reportSvc.GenerateDailyReport(ctx, date)
		return err
	})
	return res, err
}
