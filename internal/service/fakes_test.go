package service

import (
	"Statistics/internal/api/dto"
	"Statistics/internal/model"
	"Statistics/internal/repository"
	"context"
	"errors"
	"sort"
	"time"
)

type bucketKey struct {
	start time.Time
	end   time.Time
}

type fakeStatsTable struct {
	columns []string
	indexes map[string]bool
	rows    map[bucketKey]map[string]interface{}
}

// fakeStatsRepo 内存版统计表仓库
type fakeStatsRepo struct {
	tables map[string]*fakeStatsTable
	// results 聚合结果，按源字段；不存在时视为 NULL
	results map[string]float64
	queries []repository.AggregateQuery
	ops     []string

	failTable     string
	aggregateErr  error
	raceOnInsert  bool
	createdCounts map[string]int64
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{
		tables:        make(map[string]*fakeStatsTable),
		results:       make(map[string]float64),
		createdCounts: make(map[string]int64),
	}
}

var errFakeDB = errors.New("fake db error")

func (f *fakeStatsRepo) table(name string) *fakeStatsTable {
	return f.tables[name]
}

func (f *fakeStatsRepo) seedTable(name string, columns ...string) {
	f.tables[name] = &fakeStatsTable{
		columns: append([]string{}, columns...),
		indexes: make(map[string]bool),
		rows:    make(map[bucketKey]map[string]interface{}),
	}
}

func (f *fakeStatsRepo) HasTable(_ context.Context, table string) (bool, error) {
	if table == f.failTable {
		return false, errFakeDB
	}
	_, ok := f.tables[table]
	return ok, nil
}

func (f *fakeStatsRepo) GetColumns(_ context.Context, table string) ([]string, error) {
	t, ok := f.tables[table]
	if !ok {
		return nil, errFakeDB
	}
	return append([]string{}, t.columns...), nil
}

func (f *fakeStatsRepo) HasIndex(_ context.Context, table, index string) (bool, error) {
	return f.tables[table].indexes[index], nil
}

func (f *fakeStatsRepo) CreateStatsTable(_ context.Context, table string, columns []string) error {
	f.ops = append(f.ops, "create "+table)
	f.seedTable(table, append(append([]string{}, repository.StatsFixedColumns...), columns...)...)
	f.tables[table].indexes[repository.StatsIndexName] = true
	return nil
}

func (f *fakeStatsRepo) AddStatsColumn(_ context.Context, table, column string) error {
	f.ops = append(f.ops, "add "+table+"."+column)
	f.tables[table].columns = append(f.tables[table].columns, column)
	return nil
}

func (f *fakeStatsRepo) DropColumn(_ context.Context, table, column string) error {
	f.ops = append(f.ops, "drop "+table+"."+column)
	t := f.tables[table]
	for i, c := range t.columns {
		if c == column {
			t.columns = append(t.columns[:i], t.columns[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStatsRepo) CreateUniqueIndex(_ context.Context, table, index string, _ ...string) error {
	f.ops = append(f.ops, "index "+table)
	f.tables[table].indexes[index] = true
	return nil
}

func (f *fakeStatsRepo) Aggregate(_ context.Context, q repository.AggregateQuery) (*float64, error) {
	f.queries = append(f.queries, q)
	if f.aggregateErr != nil {
		return nil, f.aggregateErr
	}
	v, ok := f.results[q.Field]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (f *fakeStatsRepo) CountBucket(_ context.Context, table string, start, end time.Time) (int64, error) {
	t, ok := f.tables[table]
	if !ok {
		return 0, errFakeDB
	}
	if _, ok = t.rows[bucketKey{start, end}]; ok {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeStatsRepo) UpdateBucket(_ context.Context, table string, start, end time.Time, values map[string]interface{}) error {
	f.ops = append(f.ops, "update "+table)
	row := f.tables[table].rows[bucketKey{start, end}]
	for k, v := range values {
		row[k] = v
	}
	return nil
}

func (f *fakeStatsRepo) InsertBucket(_ context.Context, table string, values map[string]interface{}) error {
	t := f.tables[table]
	key := bucketKey{values["start_time"].(time.Time), values["end_time"].(time.Time)}
	if f.raceOnInsert {
		// 另一个消费者抢先插入了同一时间段
		f.raceOnInsert = false
		t.rows[key] = map[string]interface{}{"start_time": key.start, "end_time": key.end}
		return repository.ErrDuplicateBucket
	}
	if _, ok := t.rows[key]; ok {
		return repository.ErrDuplicateBucket
	}
	f.ops = append(f.ops, "insert "+table)
	row := make(map[string]interface{}, len(values))
	for k, v := range values {
		row[k] = v
	}
	t.rows[key] = row
	return nil
}

func (f *fakeStatsRepo) CountCreatedBetween(_ context.Context, table string, _, _ time.Time) (int64, error) {
	return f.createdCounts[table], nil
}

// fakeSchemaService 记录每次同步的表
type fakeSchemaService struct {
	reconciled map[string][]string
	failTables map[string]bool
}

func (f *fakeSchemaService) Reconcile(_ context.Context, table string, columns []string) error {
	if f.failTables[table] {
		return schemaError(table, errFakeDB)
	}
	if f.reconciled == nil {
		f.reconciled = make(map[string][]string)
	}
	f.reconciled[table] = columns
	return nil
}

type fakeDispatcher struct {
	messages []*dto.StatsTableMessage
	err      error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, msg *dto.StatsTableMessage) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

type fakeReportRepo struct {
	reports map[string]*model.DailyReport
	nextID  uint64
	saves   int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*model.DailyReport)}
}

func (f *fakeReportRepo) FindByDate(_ context.Context, date string) (*model.DailyReport, error) {
	return f.reports[date], nil
}

func (f *fakeReportRepo) FindByDateRange(_ context.Context, startDate, endDate string) ([]*model.DailyReport, error) {
	res := make([]*model.DailyReport, 0)
	for d := range f.reports {
		if d >= startDate && d <= endDate {
			res = append(res, f.reports[d])
		}
	}
	sortReports(res)
	return res, nil
}

func (f *fakeReportRepo) Save(_ context.Context, report *model.DailyReport) error {
	f.saves++
	if report.ID == 0 {
		f.nextID++
		report.ID = f.nextID
	}
	f.reports[report.ReportDate] = report
	return nil
}

func (f *fakeReportRepo) Remove(_ context.Context, report *model.DailyReport) error {
	delete(f.reports, report.ReportDate)
	return nil
}

func sortReports(reports []*model.DailyReport) {
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].ReportDate < reports[j].ReportDate
	})
}

type fakeMetricRepo struct {
	metrics map[uint64]*model.DailyMetric
	nextID  uint64
	// reportIDs 保存时所属的日报 ID
	reportIDs []uint64
}

func newFakeMetricRepo() *fakeMetricRepo {
	return &fakeMetricRepo{metrics: make(map[uint64]*model.DailyMetric)}
}

func (f *fakeMetricRepo) Save(_ context.Context, metric *model.DailyMetric) error {
	if metric.ID == 0 {
		f.nextID++
		metric.ID = f.nextID
	}
	f.metrics[metric.ID] = metric
	f.reportIDs = append(f.reportIDs, metric.ReportID)
	return nil
}

func (f *fakeMetricRepo) FindByReportID(_ context.Context, reportID uint64) ([]*model.DailyMetric, error) {
	res := make([]*model.DailyMetric, 0)
	for id := uint64(1); id <= f.nextID; id++ {
		if m, ok := f.metrics[id]; ok && m.ReportID == reportID {
			res = append(res, m)
		}
	}
	return res, nil
}

func (f *fakeMetricRepo) FindByReportAndMetricID(_ context.Context, reportID uint64, metricID string) (*model.DailyMetric, error) {
	for _, m := range f.metrics {
		if m.ReportID == reportID && m.MetricID == metricID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMetricRepo) GetMetricValuesForReports(_ context.Context, reportIDs []uint64) (map[string]map[uint64]float64, error) {
	wanted := make(map[uint64]bool, len(reportIDs))
	for _, id := range reportIDs {
		wanted[id] = true
	}
	res := make(map[string]map[uint64]float64)
	for _, m := range f.metrics {
		if !wanted[m.ReportID] {
			continue
		}
		if res[m.MetricID] == nil {
			res[m.MetricID] = make(map[uint64]float64)
		}
		res[m.MetricID][m.ReportID] = m.Value
	}
	return res, nil
}

func at(value string) time.Time {
	t, err := time.ParseInLocation(time.DateTime, value, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}
