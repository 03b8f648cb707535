package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	StatsIndexName = "start_end_time_idx"
	mysqlDupEntry  = 1062
)

// StatsFixedColumns 统计表固定列，按建表顺序
var StatsFixedColumns = []string{"id", "create_time", "update_time", "start_time", "end_time"}

// ErrDuplicateBucket 同一时间段的统计行已存在
var ErrDuplicateBucket = errors.New("stats bucket already exists")

// AggregateQuery 对源表执行的标量聚合
type AggregateQuery struct {
	Table string
	Field string
	// Expr 聚合表达式，字段位置使用 ?，如 COUNT(DISTINCT ?)
	Expr string
	// Between 非空时按 create_time 过滤
	Between *[2]time.Time
}

type StatsTableRepo interface {
	HasTable(ctx context.Context, table string) (bool, error)
	// GetColumns 按列顺序返回
	GetColumns(ctx context.Context, table string) ([]string, error)
	HasIndex(ctx context.Context, table, index string) (bool, error)
	CreateStatsTable(ctx context.Context, table string, columns []string) error
	AddStatsColumn(ctx context.Context, table, column string) error
	DropColumn(ctx context.Context, table, column string) error
	CreateUniqueIndex(ctx context.Context, table, index string, columns ...string) error
	// Aggregate 结果为 NULL 时返回 nil
	Aggregate(ctx context.Context, q AggregateQuery) (*float64, error)
	CountBucket(ctx context.Context, table string, start, end time.Time) (int64, error)
	UpdateBucket(ctx context.Context, table string, start, end time.Time, values map[string]interface{}) error
	// InsertBucket 唯一索引冲突时返回 ErrDuplicateBucket
	InsertBucket(ctx context.Context, table string, values map[string]interface{}) error
	CountCreatedBetween(ctx context.Context, table string, start, end time.Time) (int64, error)
}

type statsTableRepoImpl struct {
	db *gorm.DB
}

func NewStatsTableRepo(db *gorm.DB) StatsTableRepo {
	return &statsTableRepoImpl{db: db}
}

// HasTable 查询 information_schema
func (s *statsTableRepoImpl) HasTable(ctx context.Context, table string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ? AND table_type = ?",
			table, "BASE TABLE").
		Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return count > 0, nil
}

func (s *statsTableRepoImpl) GetColumns(ctx context.Context, table string) ([]string, error) {
	columnTypes, err := s.db.WithContext(ctx).Migrator().ColumnTypes(table)
	if err != nil {
		return nil, err
	}
	columns := make([]string, 0, len(columnTypes))
	for _, c := range columnTypes {
		columns = append(columns, c.Name())
	}
	return columns, nil
}

func (s *statsTableRepoImpl) HasIndex(ctx context.Context, table, index string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM information_schema.statistics WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?",
			table, index).
		Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("check index %s.%s: %w", table, index, err)
	}
	return count > 0, nil
}

// CreateStatsTable 建表：固定列 + DECIMAL(10,2) 统计列 + (start_time, end_time) 唯一索引
func (s *statsTableRepoImpl) CreateStatsTable(ctx context.Context, table string, columns []string) error {
	return createStatsTable(s.db.WithContext(ctx), table, columns).Error
}

func createStatsTable(tx *gorm.DB, table string, columns []string) *gorm.DB {
	var sb strings.Builder
	vars := []interface{}{clause.Table{Name: table}}

	sb.WriteString("CREATE TABLE ? (")
	sb.WriteString("? INT AUTO_INCREMENT NOT NULL, ")
	sb.WriteString("? DATETIME DEFAULT NULL, ")
	sb.WriteString("? DATETIME DEFAULT NULL, ")
	sb.WriteString("? DATETIME NOT NULL, ")
	sb.WriteString("? DATETIME NOT NULL, ")
	for _, name := range StatsFixedColumns {
		vars = append(vars, clause.Column{Name: name})
	}
	for _, name := range columns {
		sb.WriteString("? DECIMAL(10,2) DEFAULT NULL, ")
		vars = append(vars, clause.Column{Name: name})
	}
	sb.WriteString("UNIQUE INDEX ? (?, ?), PRIMARY KEY (?))")
	vars = append(vars,
		clause.Column{Name: StatsIndexName},
		clause.Column{Name: "start_time"},
		clause.Column{Name: "end_time"},
		clause.Column{Name: "id"},
	)

	return tx.Exec(sb.String(), vars...)
}

func (s *statsTableRepoImpl) AddStatsColumn(ctx context.Context, table, column string) error {
	return addStatsColumn(s.db.WithContext(ctx), table, column).Error
}

func addStatsColumn(tx *gorm.DB, table, column string) *gorm.DB {
	return tx.Exec("ALTER TABLE ? ADD COLUMN ? DECIMAL(10,2)", clause.Table{Name: table}, clause.Column{Name: column})
}

func (s *statsTableRepoImpl) DropColumn(ctx context.Context, table, column string) error {
	return s.db.WithContext(ctx).Migrator().DropColumn(table, column)
}

func (s *statsTableRepoImpl) CreateUniqueIndex(ctx context.Context, table, index string, columns ...string) error {
	return createUniqueIndex(s.db.WithContext(ctx), table, index, columns...).Error
}

func createUniqueIndex(tx *gorm.DB, table, index string, columns ...string) *gorm.DB {
	cols := make([]clause.Column, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, clause.Column{Name: c})
	}
	return tx.Exec("CREATE UNIQUE INDEX ? ON ? ?", clause.Column{Name: index}, clause.Table{Name: table}, cols)
}

func (s *statsTableRepoImpl) Aggregate(ctx context.Context, q AggregateQuery) (*float64, error) {
	tx := aggregateQuery(s.db.WithContext(ctx), q)

	var result sql.NullFloat64
	if err := tx.Row().Scan(&result); err != nil {
		return nil, fmt.Errorf("aggregate %s.%s: %w", q.Table, q.Field, err)
	}
	if !result.Valid {
		return nil, nil
	}
	return &result.Float64, nil
}

func aggregateQuery(tx *gorm.DB, q AggregateQuery) *gorm.DB {
	tx = tx.Table(q.Table).Select(q.Expr, clause.Column{Name: q.Field})
	if q.Between != nil {
		tx = tx.Where("create_time BETWEEN ? AND ?", q.Between[0], q.Between[1])
	}
	return tx
}

func (s *statsTableRepoImpl) CountBucket(ctx context.Context, table string, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Table(table).
		Where("start_time = ? AND end_time = ?", start, end).
		Count(&count).Error
	return count, err
}

func (s *statsTableRepoImpl) UpdateBucket(ctx context.Context, table string, start, end time.Time, values map[string]interface{}) error {
	return s.db.WithContext(ctx).Table(table).
		Where("start_time = ? AND end_time = ?", start, end).
		Updates(values).Error
}

func (s *statsTableRepoImpl) InsertBucket(ctx context.Context, table string, values map[string]interface{}) error {
	err := s.db.WithContext(ctx).Table(table).Create(values).Error
	if isDuplicateEntry(err) {
		return ErrDuplicateBucket
	}
	return err
}

func (s *statsTableRepoImpl) CountCreatedBetween(ctx context.Context, table string, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Table(table).
		Where("create_time BETWEEN ? AND ?", start, end).
		Count(&count).Error
	return count, err
}

func isDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDupEntry
}
