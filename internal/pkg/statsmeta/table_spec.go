package statsmeta

import (
	"Statistics/internal/api/dto"
	"Statistics/internal/model"
	"sort"
)

// TableSpec 一张统计表：源表 + 粒度后缀，列名 -> 统计来源
type TableSpec struct {
	Entity      string
	TableName   string
	SourceTable string
	Suffix      string
	Columns     map[string]dto.StatColumn
}

// ColumnNames 排序后的列名
func (s TableSpec) ColumnNames() []string {
	names := make([]string, 0, len(s.Columns))
	for name := range s.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var suffixes = []string{model.DailyStatsSuffix, model.WeeklyStatsSuffix, model.MonthlyStatsSuffix}

// SourceColumn 字段对应的数据库列名，如 OrderID -> order_id
func SourceColumn(field string) string {
	return naming.ColumnName("", field)
}

// ColumnName 统计列名，未指定时为 {字段列名}_{时间维度}
func ColumnName(field string, col model.StatsColumn) string {
	if col.Name != "" {
		return col.Name
	}
	return SourceColumn(field) + "_" + string(col.TimeDimension)
}

// ExtractTableSpecs 按日/周/月分组，只返回非空的分组；同名列后声明的覆盖先声明的
func ExtractTableSpecs(meta EntityMeta) []TableSpec {
	grouped := make(map[string]map[string]dto.StatColumn, len(suffixes))
	for _, field := range meta.Fields {
		source := SourceColumn(field.Field)
		for _, col := range field.Columns {
			suffix := col.TimeDimension.TableNameSuffix()
			if suffix == "" {
				continue
			}
			if grouped[suffix] == nil {
				grouped[suffix] = make(map[string]dto.StatColumn)
			}
			grouped[suffix][ColumnName(field.Field, col)] = dto.StatColumn{
				Field:         source,
				StatsType:     col.StatsType,
				TimeDimension: col.TimeDimension,
			}
		}
	}

	specs := make([]TableSpec, 0, len(grouped))
	for _, suffix := range suffixes {
		columns, ok := grouped[suffix]
		if !ok || len(columns) == 0 {
			continue
		}
		specs = append(specs, TableSpec{
			Entity:      meta.Name,
			TableName:   meta.TableName + suffix,
			SourceTable: meta.TableName,
			Suffix:      suffix,
			Columns:     columns,
		})
	}
	return specs
}
