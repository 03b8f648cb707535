package model

import "time"

type User struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"type:varchar(50);uniqueIndex" json:"username"`
	IsDeleted  bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime;index" json:"create_time"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

func (User) TableName() string {
	return "user"
}

func (User) StatsFields() []StatsField {
	return []StatsField{
		NewStatsField("ID",
			StatsColumn{TimeDimension: DailyNew, StatsType: StatCount, Title: "新增用户数", Name: "new_users"},
			StatsColumn{TimeDimension: DailyTotal, StatsType: StatCount, Title: "累计用户数", Name: "total_users"},
			StatsColumn{TimeDimension: WeeklyNew, StatsType: StatCount, Title: "本周新增用户数", Name: "new_users"},
			StatsColumn{TimeDimension: MonthlyTotal, StatsType: StatCount, Title: "月末累计用户数", Name: "total_users"},
		),
	}
}
