package model

import "time"

type Order struct {
	OrderID    uint64    `gorm:"primaryKey;column:order_id" json:"order_id"`
	UserID     uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Amount     float64   `gorm:"type:decimal(10,2);not null;default:0" json:"amount"`
	Status     int8      `gorm:"not null;default:0" json:"status"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime;index" json:"create_time"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

func (Order) TableName() string {
	return "order"
}

func (Order) StatsFields() []StatsField {
	return []StatsField{
		NewStatsField("OrderID",
			StatsColumn{TimeDimension: DailyNew, StatsType: StatCount, Title: "新增订单数", Name: "orders"},
			StatsColumn{TimeDimension: WeeklyNew, StatsType: StatCount, Title: "本周新增订单数", Name: "orders"},
			StatsColumn{TimeDimension: MonthlyNew, StatsType: StatCount, Title: "本月新增订单数", Name: "orders"},
			StatsColumn{TimeDimension: DailyTotal, StatsType: StatCount, Title: "累计订单数"},
		),
		NewStatsField("Amount",
			StatsColumn{TimeDimension: DailyNew, StatsType: StatSum, Title: "新增订单金额"},
			StatsColumn{TimeDimension: DailyNew, StatsType: StatAvg, Title: "平均订单金额", Name: "amount_avg"},
		),
		NewStatsField("UserID",
			StatsColumn{TimeDimension: DailyNew, StatsType: StatCount, Title: "下单用户数", Name: "buyers"},
			StatsColumn{TimeDimension: MonthlyNew, StatsType: StatCount, Title: "本月下单用户数", Name: "buyers"},
		),
	}
}
