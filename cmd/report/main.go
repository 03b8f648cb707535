package main

import (
	"Statistics/internal/api/config"
	"Statistics/internal/pkg/database"
	"Statistics/internal/pkg/logger"
	"Statistics/internal/pkg/util"
	"Statistics/internal/wire"
	"fmt"
	log "log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"
)

func main() {
	yesterday := util.Yesterday(time.Now()).Format(time.DateOnly)
	dateFlag := pflag.StringP("date", "d", yesterday, "日期 (格式: YYYY-MM-DD)")
	force := pflag.BoolP("force", "f", false, "强制重新生成报告")
	pflag.Parse()

	date, err := util.ParseDate(*dateFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid date %q: %v\n", *dateFlag, err)
		os.Exit(2)
	}

	if err = config.LoadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.InitLogger(config.Cfg.Logstash)

	dbCfg := config.Cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("failed to create database connection", "err", err)
		os.Exit(1)
	}

	reportSvc := wire.BuildDailyReportService(db)
	ctx := logger.NewTraceContext("cli-report")

	out := newOutput(os.Stdout)
	out.header(date, *force, len(reportSvc.GetMetricProviders()))

	res, err := reportSvc.GenerateDailyReport(ctx, date)
	if err != nil {
		log.ErrorContext(ctx, "generate daily report error", "err", err)
		out.failure(err)
		os.Exit(1)
	}
	out.results(res)
}
