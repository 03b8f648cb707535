package cron

import (
	"Statistics/internal/api/config"
	"Statistics/internal/job"
	"context"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	cfg            config.StatsConfig
	statsTableJob  *job.StatsTableJob
	dailyReportJob *job.DailyReportJob
}

func NewCronManager(cfg config.StatsConfig, statsTableJob *job.StatsTableJob, dailyReportJob *job.DailyReportJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		cfg:            cfg,
		statsTableJob:  statsTableJob,
		dailyReportJob: dailyReportJob,
	}
}

// RegisterJobs 注册定时任务：统计表每小时与每天收尾各一次，日报每天一次
func (s *Manager) RegisterJobs() error {
	for _, spec := range []string{s.cfg.HourlySpec, s.cfg.DailySpec} {
		if _, err := s.engine.AddJob(spec, s.statsTableJob); err != nil {
			return err
		}
	}
	if _, err := s.engine.AddJob(s.cfg.ReportSpec, s.dailyReportJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "entries", len(s.engine.Entries()))
	s.engine.Start()
}

// Stop 停止调度并等待运行中的任务结束
func (s *Manager) Stop() context.Context {
	log.Info("Cron 定时任务引擎停止")
	return s.engine.Stop()
}
