package job

import (
	"Statistics/internal/api/dto"
	"Statistics/internal/pkg/consts"
	"Statistics/internal/pkg/logger"
	"Statistics/internal/service"
	"context"
	"errors"
	log "log/slog"
	"time"
)

// StatsTableJob 同步统计表结构并投递统计任务
type StatsTableJob struct {
	statsTableSvc service.StatsTableService
	locker        Locker
	lockTTL       time.Duration
	now           func() time.Time
}

func NewStatsTableJob(statsTableSvc service.StatsTableService, locker Locker, lockTTL time.Duration) *StatsTableJob {
	return &StatsTableJob{
		statsTableSvc: statsTableSvc,
		locker:        locker,
		lockTTL:       lockTTL,
		now:           time.Now,
	}
}

func (s *StatsTableJob) Run() {
	ctx := logger.NewTraceContext("job-stats")

	res, err := s.RunNow(ctx)
	if errors.Is(err, service.ErrTaskRunning) {
		log.WarnContext(ctx, "stats table job is already running")
		return
	}
	if err != nil {
		log.ErrorContext(ctx, "stats table job error", "err", err)
		return
	}
	log.InfoContext(ctx, "stats table job success", "dispatched", res.Dispatched, "skipped", res.Skipped)
}

// RunNow 立即执行一次
func (s *StatsTableJob) RunNow(ctx context.Context) (*dto.StatsRunResultDTO, error) {
	var res *dto.StatsRunResultDTO
	err := withLock(ctx, s.locker, consts.StatsTableLock, s.lockTTL, func() error {
		var err error
		res, err = s.statsTableSvc.Execute(ctx, s.now())
		return err
	})
	return res, err
}
