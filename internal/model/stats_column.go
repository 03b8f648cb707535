package model

// StatsColumn 一条统计列声明，同一字段可以声明多次
type StatsColumn struct {
	TimeDimension StatTimeDimension
	StatsType     StatType
	Title         string
	// Name 为空时列名为 {字段列名}_{时间维度}
	Name string
}

// StatsField 参与统计的实体字段
type StatsField struct {
	Field   string // Go 字段名，如 OrderID
	Columns []StatsColumn
}

// Entity 领域实体
type Entity interface {
	TableName() string
}

// StatsEntity 声明了统计列的领域实体
type StatsEntity interface {
	Entity
	StatsFields() []StatsField
}

// NewStatsField 构造统计字段声明
func NewStatsField(field string, columns ...StatsColumn) StatsField {
	return StatsField{Field: field, Columns: columns}
}
