package service

import (
	"Statistics/internal/model"
	"Statistics/internal/pkg/statsmeta"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type plainEntity struct{}

func (plainEntity) TableName() string { return "plain" }

func newOrderRegistry() *statsmeta.Registry {
	registry := statsmeta.NewRegistry()
	registry.Register(&plainEntity{}, &model.Order{})
	return registry
}

func TestExecute_DispatchesOneMessagePerStatsTable(t *testing.T) {
	schema := &fakeSchemaService{}
	dispatcher := &fakeDispatcher{}
	svc := NewStatsTableService(newOrderRegistry(), schema, dispatcher)

	res, err := svc.Execute(context.Background(), at("2024-06-02 10:10:00"))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Dispatched)
	assert.Empty(t, res.Skipped)

	require.Len(t, dispatcher.messages, 3)
	daily, weekly, monthly := dispatcher.messages[0], dispatcher.messages[1], dispatcher.messages[2]

	assert.Equal(t, "order_daily_stats", daily.StatsTable)
	assert.Equal(t, "order", daily.TableName)
	assert.Equal(t, "2024-06-02 00:00:00", daily.StartTime)
	assert.Equal(t, "2024-06-02 23:59:59", daily.EndTime)
	assert.Equal(t, "order_id", daily.StatColumns["orders"].Field)
	assert.Equal(t, model.StatCount, daily.StatColumns["orders"].StatsType)
	assert.Equal(t, model.DailyNew, daily.StatColumns["orders"].TimeDimension)

	assert.Equal(t, "order_weekly_stats", weekly.StatsTable)
	assert.Equal(t, "2024-05-27 00:00:00", weekly.StartTime)
	assert.Equal(t, "2024-06-02 23:59:59", weekly.EndTime)

	assert.Equal(t, "order_monthly_stats", monthly.StatsTable)
	assert.Equal(t, "2024-06-01 00:00:00", monthly.StartTime)
	assert.Equal(t, "2024-06-30 23:59:59", monthly.EndTime)

	assert.NotContains(t, schema.reconciled, "plain_daily_stats")
	assert.Equal(t,
		[]string{"amount_avg", "amount_daily_new", "buyers", "order_id_daily_total", "orders"},
		schema.reconciled["order_daily_stats"])
	assert.Equal(t, []string{"orders"}, schema.reconciled["order_weekly_stats"])
	assert.Equal(t, []string{"buyers", "orders"}, schema.reconciled["order_monthly_stats"])
}

func TestExecute_EarlyHoursUsePreviousDay(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	svc := NewStatsTableService(newOrderRegistry(), &fakeSchemaService{}, dispatcher)

	_, err := svc.Execute(context.Background(), at("2024-07-01 01:59:59"))
	require.NoError(t, err)

	require.Len(t, dispatcher.messages, 3)
	assert.Equal(t, "2024-06-30 00:00:00", dispatcher.messages[0].StartTime)
	assert.Equal(t, "2024-06-24 00:00:00", dispatcher.messages[1].StartTime)
	assert.Equal(t, "2024-06-01 00:00:00", dispatcher.messages[2].StartTime)
	assert.Equal(t, "2024-06-30 23:59:59", dispatcher.messages[2].EndTime)
}

func TestExecute_ReconcileFailureSkipsOnlyThatTable(t *testing.T) {
	schema := &fakeSchemaService{failTables: map[string]bool{"order_weekly_stats": true}}
	dispatcher := &fakeDispatcher{}
	svc := NewStatsTableService(newOrderRegistry(), schema, dispatcher)

	res, err := svc.Execute(context.Background(), at("2024-06-02 10:10:00"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Dispatched)
	assert.Equal(t, []string{"order_weekly_stats"}, res.Skipped)

	tables := make([]string, 0, len(dispatcher.messages))
	for _, m := range dispatcher.messages {
		tables = append(tables, m.StatsTable)
	}
	assert.Equal(t, []string{"order_daily_stats", "order_monthly_stats"}, tables)
}

func TestExecute_DispatchFailure(t *testing.T) {
	dispatcher := &fakeDispatcher{err: errFakeDB}
	svc := NewStatsTableService(newOrderRegistry(), &fakeSchemaService{}, dispatcher)

	_, err := svc.Execute(context.Background(), at("2024-06-02 10:10:00"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDispatch)
}

func TestGetTableSpecs(t *testing.T) {
	svc := NewStatsTableService(newOrderRegistry(), &fakeSchemaService{}, &fakeDispatcher{})

	specs := svc.GetTableSpecs()
	require.Len(t, specs, 3)
	assert.Equal(t, "order_daily_stats", specs[0].TableName)
	assert.Equal(t, "order", specs[0].SourceTable)
	assert.Contains(t, specs[0].Columns, "amount_daily_new")
}

func TestStatsTimeRange(t *testing.T) {
	start, end := StatsTimeRange(model.DailyStatsSuffix, at("2024-06-02 02:00:00"))
	assert.True(t, start.Equal(at("2024-06-02 00:00:00")))
	assert.True(t, end.Equal(at("2024-06-02 23:59:59")))

	start, end = StatsTimeRange(model.DailyStatsSuffix, at("2024-06-02 00:10:00"))
	assert.True(t, start.Equal(at("2024-06-01 00:00:00")))
	assert.True(t, end.Equal(at("2024-06-01 23:59:59")))

	start, end = StatsTimeRange(model.WeeklyStatsSuffix, at("2024-06-05 12:00:00"))
	assert.True(t, start.Equal(at("2024-06-03 00:00:00")))
	assert.True(t, end.Equal(at("2024-06-09 23:59:59")))

	start, end = StatsTimeRange(model.MonthlyStatsSuffix, at("2024-02-10 12:00:00"))
	assert.True(t, start.Equal(at("2024-02-01 00:00:00")))
	assert.True(t, end.Equal(at("2024-02-29 23:59:59")))
}
