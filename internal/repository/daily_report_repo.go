package repository

import (
	"Statistics/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type DailyReportRepo interface {
	FindByDate(ctx context.Context, date string) (*model.DailyReport, error)
	FindByDateRange(ctx context.Context, startDate, endDate string) ([]*model.DailyReport, error)
	// Save 只保存日报本身，指标由 DailyMetricRepo 单独保存
	Save(ctx context.Context, report *model.DailyReport) error
	Remove(ctx context.Context, report *model.DailyReport) error
}

type dailyReportRepoImpl struct {
	db *gorm.DB
}

func NewDailyReportRepo(db *gorm.DB) DailyReportRepo {
	return &dailyReportRepoImpl{db: db}
}

// FindByDate 根据日期查找日报（含指标），不存在时返回 nil
func (s *dailyReportRepoImpl) FindByDate(ctx context.Context, date string) (*model.DailyReport, error) {
	var report model.DailyReport
	err := s.db.WithContext(ctx).
		Preload("Metrics", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("report_date = ?", date).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

// FindByDateRange 查询日期范围内的日报，按日期升序
func (s *dailyReportRepoImpl) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*model.DailyReport, error) {
	reports := make([]*model.DailyReport, 0)
	result := s.db.WithContext(ctx).
		Preload("Metrics", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("report_date >= ? AND report_date <= ?", startDate, endDate).
		Order("report_date ASC").
		Find(&reports)
	if result.Error != nil {
		return nil, result.Error
	}
	return reports, nil
}

func (s *dailyReportRepoImpl) Save(ctx context.Context, report *model.DailyReport) error {
	return s.db.WithContext(ctx).Omit("Metrics").Save(report).Error
}

// Remove 删除日报，指标由外键级联删除
func (s *dailyReportRepoImpl) Remove(ctx context.Context, report *model.DailyReport) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", report.ID).Delete(&model.DailyMetric{}).Error; err != nil {
			return err
		}
		return tx.Delete(report).Error
	})
}
