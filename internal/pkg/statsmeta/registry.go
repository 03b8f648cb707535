package statsmeta

import (
	"Statistics/internal/model"
	"fmt"
	"strings"

	"gorm.io/gorm/schema"
)

var naming = schema.NamingStrategy{}

// EntityMeta 一个已注册领域实体的统计元数据
type EntityMeta struct {
	Name      string
	TableName string
	Fields    []model.StatsField
}

// HasStats 是否声明了统计列
func (m EntityMeta) HasStats() bool {
	for _, f := range m.Fields {
		if len(f.Columns) > 0 {
			return true
		}
	}
	return false
}

// Registry 启动时显式注册的实体表，替代运行时反射
type Registry struct {
	entities []EntityMeta
	index    map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register 注册实体；同一张表重复注册时后者覆盖前者
func (r *Registry) Register(entities ...model.Entity) {
	for _, e := range entities {
		meta := EntityMeta{
			Name:      strings.TrimPrefix(fmt.Sprintf("%T", e), "*"),
			TableName: e.TableName(),
		}
		if se, ok := e.(model.StatsEntity); ok {
			meta.Fields = se.StatsFields()
		}

		if i, ok := r.index[meta.TableName]; ok {
			r.entities[i] = meta
			continue
		}
		r.index[meta.TableName] = len(r.entities)
		r.entities = append(r.entities, meta)
	}
}

// Entities 按注册顺序返回
func (r *Registry) Entities() []EntityMeta {
	out := make([]EntityMeta, len(r.entities))
	copy(out, r.entities)
	return out
}

// TableSpecs 所有实体当前应有的统计表
func (r *Registry) TableSpecs() []TableSpec {
	specs := make([]TableSpec, 0)
	for _, e := range r.entities {
		specs = append(specs, ExtractTableSpecs(e)...)
	}
	return specs
}
