package service

import (
	"Statistics/internal/repository"
	"context"
	"fmt"
	log "log/slog"
)

type StatsSchemaService interface {
	// Reconcile 使统计表结构与声明的统计列保持一致
	Reconcile(ctx context.Context, table string, columns []string) error
}

type statsSchemaServiceImpl struct {
	statsRepo repository.StatsTableRepo
	// retainUnused 为 true 时不删除已不再声明的列，只记录日志
	retainUnused bool
}

func NewStatsSchemaService(statsRepo repository.StatsTableRepo, retainUnused bool) StatsSchemaService {
	return &statsSchemaServiceImpl{
		statsRepo:    statsRepo,
		retainUnused: retainUnused,
	}
}

func (s *statsSchemaServiceImpl) Reconcile(ctx context.Context, table string, columns []string) error {
	exists, err := s.statsRepo.HasTable(ctx, table)
	if err != nil {
		return schemaError(table, err)
	}

	if !exists {
		if err = s.statsRepo.CreateStatsTable(ctx, table, columns); err != nil {
			return schemaError(table, err)
		}
		log.InfoContext(ctx, "stats table created", "table", table, "columns", columns)
		return nil
	}

	if err = s.addMissingColumns(ctx, table, columns); err != nil {
		return schemaError(table, err)
	}
	if err = s.removeUnusedColumns(ctx, table, columns); err != nil {
		return schemaError(table, err)
	}
	if err = s.ensureIndexExists(ctx, table); err != nil {
		return schemaError(table, err)
	}
	return nil
}

func (s *statsSchemaServiceImpl) addMissingColumns(ctx context.Context, table string, columns []string) error {
	existing, err := s.statsRepo.GetColumns(ctx, table)
	if err != nil {
		return err
	}
	existingSet := toSet(existing)

	for _, column := range columns {
		if _, ok := existingSet[column]; ok {
			continue
		}
		if err = s.statsRepo.AddStatsColumn(ctx, table, column); err != nil {
			return err
		}
		log.InfoContext(ctx, "stats column added", "table", table, "column", column)
	}
	return nil
}

// removeUnusedColumns 前五列为固定列，其后不在声明中的列会被删除
func (s *statsSchemaServiceImpl) removeUnusedColumns(ctx context.Context, table string, columns []string) error {
	existing, err := s.statsRepo.GetColumns(ctx, table)
	if err != nil {
		return err
	}
	fixed := len(repository.StatsFixedColumns)
	if len(existing) <= fixed {
		return nil
	}
	desired := toSet(columns)

	for _, column := range existing[fixed:] {
		if _, ok := desired[column]; ok {
			continue
		}
		if s.retainUnused {
			log.WarnContext(ctx, "stats column no longer declared", "table", table, "column", column)
			continue
		}
		if err = s.statsRepo.DropColumn(ctx, table, column); err != nil {
			return err
		}
		log.WarnContext(ctx, "stats column dropped", "table", table, "column", column)
	}
	return nil
}

func (s *statsSchemaServiceImpl) ensureIndexExists(ctx context.Context, table string) error {
	ok, err := s.statsRepo.HasIndex(ctx, table, repository.StatsIndexName)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.statsRepo.CreateUniqueIndex(ctx, table, repository.StatsIndexName, "start_time", "end_time")
}

func schemaError(table string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSchemaMismatch, table, err)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
