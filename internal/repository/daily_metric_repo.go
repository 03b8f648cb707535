package repository

import (
	"Statistics/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type DailyMetricRepo interface {
	Save(ctx context.Context, metric *model.DailyMetric) error
	FindByReportID(ctx context.Context, reportID uint64) ([]*model.DailyMetric, error)
	FindByReportAndMetricID(ctx context.Context, reportID uint64, metricID string) (*model.DailyMetric, error)
	// GetMetricValuesForReports 返回 metric_id -> report_id -> value
	GetMetricValuesForReports(ctx context.Context, reportIDs []uint64) (map[string]map[uint64]float64, error)
}

type dailyMetricRepoImpl struct {
	db *gorm.DB
}

func NewDailyMetricRepo(db *gorm.DB) DailyMetricRepo {
	return &dailyMetricRepoImpl{db: db}
}

func (s *dailyMetricRepoImpl) Save(ctx context.Context, metric *model.DailyMetric) error {
	return s.db.WithContext(ctx).Save(metric).Error
}

func (s *dailyMetricRepoImpl) FindByReportID(ctx context.Context, reportID uint64) ([]*model.DailyMetric, error) {
	metrics := make([]*model.DailyMetric, 0)
	result := s.db.WithContext(ctx).Where("report_id = ?", reportID).Order("id ASC").Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}

func (s *dailyMetricRepoImpl) FindByReportAndMetricID(ctx context.Context, reportID uint64, metricID string) (*model.DailyMetric, error) {
	var metric model.DailyMetric
	err := s.db.WithContext(ctx).
		Where("report_id = ? AND metric_id = ?", reportID, metricID).
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (s *dailyMetricRepoImpl) GetMetricValuesForReports(ctx context.Context, reportIDs []uint64) (map[string]map[uint64]float64, error) {
	result := make(map[string]map[uint64]float64)
	if len(reportIDs) == 0 {
		return result, nil
	}

	metrics := make([]*model.DailyMetric, 0)
	if err := s.db.WithContext(ctx).Where("report_id IN ?", reportIDs).Find(&metrics).Error; err != nil {
		return nil, err
	}
	for _, m := range metrics {
		if result[m.MetricID] == nil {
			result[m.MetricID] = make(map[uint64]float64)
		}
		result[m.MetricID][m.ReportID] = m.Value
	}
	return result, nil
}
