package service

import (
	"Statistics/internal/api/dto"
	"Statistics/internal/model"
	"Statistics/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type StatsAggregateService interface {
	// HandleStatsMessage 计算消息中的每个统计列并写入对应时间段的统计行
	HandleStatsMessage(ctx context.Context, msg *dto.StatsTableMessage) error
}

type statsAggregateServiceImpl struct {
	statsRepo repository.StatsTableRepo
	// trueSum 为 false 时 sum 按 COUNT(field) 计算，与历史数据保持一致
	trueSum bool
	now     func() time.Time
}

func NewStatsAggregateService(statsRepo repository.StatsTableRepo, trueSum bool) StatsAggregateService {
	return &statsAggregateServiceImpl{
		statsRepo: statsRepo,
		trueSum:   trueSum,
		now:       time.Now,
	}
}

func (s *statsAggregateServiceImpl) HandleStatsMessage(ctx context.Context, msg *dto.StatsTableMessage) error {
	if msg == nil || msg.StatsTable == "" || msg.TableName == "" {
		return ErrStatsMessageInvalid
	}
	start, err := time.ParseInLocation(time.DateTime, msg.StartTime, time.Local)
	if err != nil {
		return fmt.Errorf("%w: start_time %q", ErrStatsMessageInvalid, msg.StartTime)
	}
	end, err := time.ParseInLocation(time.DateTime, msg.EndTime, time.Local)
	if err != nil {
		return fmt.Errorf("%w: end_time %q", ErrStatsMessageInvalid, msg.EndTime)
	}

	names := make([]string, 0, len(msg.StatColumns))
	for name := range msg.StatColumns {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		col := msg.StatColumns[name]
		value, err := s.compute(ctx, msg.TableName, col, start, end)
		if err != nil {
			return fmt.Errorf("%w: %s.%s: %w", ErrAggregateCompute, msg.StatsTable, name, err)
		}
		if err = s.upsert(ctx, msg.StatsTable, name, value, start, end); err != nil {
			return fmt.Errorf("save %s.%s: %w", msg.StatsTable, name, err)
		}
	}

	log.InfoContext(ctx, "stats table updated",
		"table", msg.StatsTable,
		"start_time", msg.StartTime,
		"columns", len(names))
	return nil
}

// compute 返回保留两位小数的结果，结果为 NULL 时返回 nil
func (s *statsAggregateServiceImpl) compute(ctx context.Context, table string, col dto.StatColumn, start, end time.Time) (interface{}, error) {
	expr, err := s.aggregateExpr(col.StatsType)
	if err != nil {
		return nil, err
	}
	q := repository.AggregateQuery{
		Table: table,
		Field: col.Field,
		Expr:  expr,
	}
	if col.TimeDimension.IsNew() {
		q.Between = &[2]time.Time{start, end}
	}

	res, err := s.statsRepo.Aggregate(ctx, q)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}
	return decimal.NewFromFloat(*res).Round(2), nil
}

func (s *statsAggregateServiceImpl) aggregateExpr(t model.StatType) (string, error) {
	switch t {
	case model.StatCount:
		return "COUNT(DISTINCT ?)", nil
	case model.StatSum:
		if s.trueSum {
			return "SUM(?)", nil
		}
		return "COUNT(?)", nil
	case model.StatAvg:
		return "AVG(?)", nil
	default:
		return "", fmt.Errorf("%w: stats type %q", ErrStatsMessageInvalid, t)
	}
}

func (s *statsAggregateServiceImpl) upsert(ctx context.Context, table, column string, value interface{}, start, end time.Time) error {
	now := s.now()

	count, err := s.statsRepo.CountBucket(ctx, table, start, end)
	if err != nil {
		return err
	}
	if count > 0 {
		return s.statsRepo.UpdateBucket(ctx, table, start, end, map[string]interface{}{
			column:        value,
			"update_time": now,
		})
	}

	err = s.statsRepo.InsertBucket(ctx, table, map[string]interface{}{
		column:        value,
		"start_time":  start,
		"end_time":    end,
		"create_time": now,
	})
	if errors.Is(err, repository.ErrDuplicateBucket) {
		return s.statsRepo.UpdateBucket(ctx, table, start, end, map[string]interface{}{
			column:        value,
			"update_time": now,
		})
	}
	return err
}
