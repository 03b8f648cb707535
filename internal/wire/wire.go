package wire

import (
	"Statistics/internal/api"
	"Statistics/internal/api/config"
	"Statistics/internal/api/handler"
	"Statistics/internal/job"
	"Statistics/internal/model"
	"Statistics/internal/pkg/cron"
	"Statistics/internal/pkg/kafka"
	"Statistics/internal/pkg/metric"
	"Statistics/internal/pkg/statsmeta"
	"Statistics/internal/repository"
	"Statistics/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router        *gin.Engine
	DB            *gorm.DB
	KafkaManager  *kafka.ConsumerManager
	StatsProducer *kafka.StatsProducer
	CronMgr       *cron.Manager
}

// StatsEntities 声明了统计列的业务实体
func StatsEntities() []model.Entity {
	return []model.Entity{
		&model.Order{},
		&model.User{},
	}
}

// Models 需要自动建表的模型，统计表不在其中
func Models() []interface{} {
	return []interface{}{
		&model.Order{},
		&model.User{},
		&model.DailyReport{},
		&model.DailyMetric{},
	}
}

func NewStatsRegistry() *statsmeta.Registry {
	registry := statsmeta.NewRegistry()
	registry.Register(StatsEntities()...)
	return registry
}

// NewMetricRegistry 为每个业务实体注册当日新增数指标
func NewMetricRegistry(entities *statsmeta.Registry, counter metric.CreatedCounter) *metric.Registry {
	registry := metric.NewRegistry()
	for _, e := range entities.Entities() {
		registry.Register(metric.NewEntityCountProvider(e.TableName, e.TableName, counter))
	}
	return registry
}

// BuildDailyReportService 命令行与服务共用
func BuildDailyReportService(db *gorm.DB) service.DailyReportService {
	statsRepo := repository.NewStatsTableRepo(db)
	return service.NewDailyReportService(
		repository.NewDailyReportRepo(db),
		repository.NewDailyMetricRepo(db),
		NewMetricRegistry(NewStatsRegistry(), statsRepo),
	)
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	statsRepo := repository.NewStatsTableRepo(db)
	statsRegistry := NewStatsRegistry()

	producer, err := kafka.NewStatsProducer(cfg)
	if err != nil {
		return nil, err
	}

	schemaSvc := service.NewStatsSchemaService(statsRepo, cfg.Stats.RetainUnusedColumns)
	statsTableSvc := service.NewStatsTableService(statsRegistry, schemaSvc, producer)
	aggregateSvc := service.NewStatsAggregateService(statsRepo, cfg.Stats.TrueSum)
	reportSvc := service.NewDailyReportService(
		repository.NewDailyReportRepo(db),
		repository.NewDailyMetricRepo(db),
		NewMetricRegistry(statsRegistry, statsRepo),
	)

	locker := job.NewRedisLocker()
	lockTTL := time.Duration(cfg.Stats.LockTTL) * time.Second
	statsTableJob := job.NewStatsTableJob(statsTableSvc, locker, lockTTL)
	dailyReportJob := job.NewDailyReportJob(reportSvc, locker, lockTTL)

	handlers := &api.HandlersGroup{
		DailyReportHandler: handler.NewDailyReportHandler(reportSvc, dailyReportJob),
		StatsTableHandler:  handler.NewStatsTableHandler(statsTableSvc, statsTableJob),
	}
	router := api.SetupRouter(handlers, cfg.Logstash.Service)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, aggregateSvc)
	if err != nil {
		_ = producer.Close()
		return nil, err
	}

	return &ApplicationContainer{
		Router:        router,
		DB:            db,
		KafkaManager:  kafkaMgr,
		StatsProducer: producer,
		CronMgr:       cron.NewCronManager(cfg.Stats, statsTableJob, dailyReportJob),
	}, nil
}
