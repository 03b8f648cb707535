package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openMySQL 不建立连接，dryRun 时只生成 SQL
func openMySQL(t *testing.T, dsn string, dryRun bool) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		DSN:                       dsn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               dryRun,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)
	return db
}

func dryRunDB(t *testing.T) *gorm.DB {
	return openMySQL(t, "stats:stats@tcp(127.0.0.1:3306)/statistics?parseTime=true", true)
}

func TestCreateStatsTableSQL(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return createStatsTable(tx, "order_daily_stats", []string{"orders"})
	})

	assert.Equal(t, "CREATE TABLE `order_daily_stats` ("+
		"`id` INT AUTO_INCREMENT NOT NULL, "+
		"`create_time` DATETIME DEFAULT NULL, "+
		"`update_time` DATETIME DEFAULT NULL, "+
		"`start_time` DATETIME NOT NULL, "+
		"`end_time` DATETIME NOT NULL, "+
		"`orders` DECIMAL(10,2) DEFAULT NULL, "+
		"UNIQUE INDEX `start_end_time_idx` (`start_time`, `end_time`), "+
		"PRIMARY KEY (`id`))", sql)
}

func TestAddStatsColumnSQL(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return addStatsColumn(tx, "order_daily_stats", "buyers_daily_new")
	})

	assert.Equal(t, "ALTER TABLE `order_daily_stats` ADD COLUMN `buyers_daily_new` DECIMAL(10,2)", sql)
}

func TestCreateUniqueIndexSQL(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return createUniqueIndex(tx, "order_daily_stats", StatsIndexName, "start_time", "end_time")
	})

	assert.Contains(t, sql, "CREATE UNIQUE INDEX `start_end_time_idx` ON `order_daily_stats`")
	assert.Contains(t, sql, "`start_time`")
	assert.Contains(t, sql, "`end_time`")
}

func TestAggregateQuerySQL(t *testing.T) {
	db := dryRunDB(t)
	start := time.Date(2024, 6, 2, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 6, 2, 23, 59, 59, 0, time.Local)

	tests := []struct {
		name string
		q    AggregateQuery
		want string
	}{
		{
			name: "new dimension filters by create_time",
			q:    AggregateQuery{Table: "order", Field: "order_id", Expr: "COUNT(DISTINCT ?)", Between: &[2]time.Time{start, end}},
			want: "SELECT COUNT(DISTINCT `order_id`) FROM `order` WHERE create_time BETWEEN '2024-06-02 00:00:00' AND '2024-06-02 23:59:59'",
		},
		{
			name: "total dimension is unfiltered",
			q:    AggregateQuery{Table: "order", Field: "amount", Expr: "AVG(?)"},
			want: "SELECT AVG(`amount`) FROM `order`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var rows []map[string]interface{}
				return aggregateQuery(tx, tt.q).Find(&rows)
			})
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestIsDuplicateEntry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"translated gorm error", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm error", fmt.Errorf("insert bucket: %w", gorm.ErrDuplicatedKey), true},
		{"mysql 1062", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"wrapped mysql 1062", fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062}), true},
		{"other mysql error", &mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}, false},
		{"plain error", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateEntry(tt.err))
		})
	}
}

func TestSchemaChecksReportConnectionErrors(t *testing.T) {
	db := openMySQL(t, "stats:stats@tcp(127.0.0.1:1)/statistics?timeout=1s", false)
	repo := NewStatsTableRepo(db)
	ctx := context.Background()

	exists, err := repo.HasTable(ctx, "order_daily_stats")
	require.Error(t, err)
	assert.False(t, exists)
	assert.Contains(t, err.Error(), "check table order_daily_stats")

	ok, err := repo.HasIndex(ctx, "order_daily_stats", StatsIndexName)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "check index order_daily_stats.start_end_time_idx")
}
