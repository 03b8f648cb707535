package service

import (
	"Statistics/internal/api/dto"
	"Statistics/internal/model"
	"Statistics/internal/pkg/statsmeta"
	"Statistics/internal/pkg/util"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

// StatsDispatcher 投递统计任务消息
type StatsDispatcher interface {
	Dispatch(ctx context.Context, msg *dto.StatsTableMessage) error
}

type StatsTableService interface {
	// Execute 同步所有统计表结构，并为每张统计表投递当前时间段的统计任务
	Execute(ctx context.Context, now time.Time) (*dto.StatsRunResultDTO, error)
	// GetTableSpecs 当前声明的全部统计表
	GetTableSpecs() []*dto.StatsTableSpecDTO
}

type statsTableServiceImpl struct {
	registry   *statsmeta.Registry
	schemaSvc  StatsSchemaService
	dispatcher StatsDispatcher
}

func NewStatsTableService(registry *statsmeta.Registry, schemaSvc StatsSchemaService, dispatcher StatsDispatcher) StatsTableService {
	return &statsTableServiceImpl{
		registry:   registry,
		schemaSvc:  schemaSvc,
		dispatcher: dispatcher,
	}
}

func (s *statsTableServiceImpl) Execute(ctx context.Context, now time.Time) (*dto.StatsRunResultDTO, error) {
	result := &dto.StatsRunResultDTO{Skipped: []string{}}

	for _, meta := range s.registry.Entities() {
		if !meta.HasStats() {
			continue
		}

		for _, spec := range statsmeta.ExtractTableSpecs(meta) {
			if err := s.schemaSvc.Reconcile(ctx, spec.TableName, spec.ColumnNames()); err != nil {
				log.ErrorContext(ctx, "reconcile stats table error", "table", spec.TableName, "err", err)
				result.Skipped = append(result.Skipped, spec.TableName)
				continue
			}

			start, end := StatsTimeRange(spec.Suffix, now)
			msg := &dto.StatsTableMessage{
				StartTime:   start.Format(time.DateTime),
				EndTime:     end.Format(time.DateTime),
				StatsTable:  spec.TableName,
				TableName:   spec.SourceTable,
				StatColumns: spec.Columns,
			}
			if err := s.dispatcher.Dispatch(ctx, msg); err != nil {
				return result, fmt.Errorf("%w: %s: %w", ErrDispatch, spec.TableName, err)
			}
			result.Dispatched++
		}
	}

	log.InfoContext(ctx, "stats tasks dispatched",
		"dispatched", result.Dispatched,
		"skipped", len(result.Skipped))
	return result, nil
}

func (s *statsTableServiceImpl) GetTableSpecs() []*dto.StatsTableSpecDTO {
	specs := s.registry.TableSpecs()
	res := make([]*dto.StatsTableSpecDTO, 0, len(specs))
	for _, spec := range specs {
		res = append(res, &dto.StatsTableSpecDTO{
			Entity:      spec.Entity,
			TableName:   spec.TableName,
			SourceTable: spec.SourceTable,
			Columns:     spec.Columns,
		})
	}
	return res
}

// StatsTimeRange 统计时间段；凌晨 0 点和 1 点统计的是前一天所在的时间段
func StatsTimeRange(suffix string, now time.Time) (time.Time, time.Time) {
	ref := now
	if now.Hour() <= 1 {
		ref = util.Yesterday(now)
	}

	switch suffix {
	case model.WeeklyStatsSuffix:
		return util.StartOfWeek(ref), util.EndOfWeek(ref)
	case model.MonthlyStatsSuffix:
		return util.StartOfMonth(ref), util.EndOfMonth(ref)
	default:
		return util.GetMidnight(ref), util.EndOfDay(ref)
	}
}
