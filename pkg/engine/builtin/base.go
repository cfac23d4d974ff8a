// Package builtin 提供内置排班规则实现
//
// 每条规则对应一个种类标识，规则配置记录通过工厂映射到这里的实现。
// 所有规则对快照整体求值，互相独立，顺序无关
package builtin

import (
	"github.com/google/uuid"
	"github.com/hupai/hupai/pkg/model"
)

// baseRule 规则公共元数据
type baseRule struct {
	id       uuid.UUID
	name     string
	kind     model.RuleKind
	typ      model.RuleType
	category model.RuleCategory
	weight   float64
}

// newBase 从配置记录填充元数据，缺省字段回落到种类默认值
func newBase(rec model.Rule, kind model.RuleKind, typ model.RuleType, category model.RuleCategory, defaultName string) baseRule {
	b := baseRule{
		id:       rec.ID,
		name:     rec.Name,
		kind:     kind,
		typ:      typ,
		category: category,
		weight:   rec.Weight,
	}
	if b.name == "" {
		b.name = defaultName
	}
	if rec.Type != "" {
		b.typ = rec.Type
	}
	if rec.Category != "" {
		b.category = rec.Category
	}
	if b.weight <= 0 {
		b.weight = 1.0
	}
	return b
}

// Name 规则名称
func (b *baseRule) Name() string { return b.name }

// Kind 规则种类标识
func (b *baseRule) Kind() model.RuleKind { return b.kind }

// Type 规则类型
func (b *baseRule) Type() model.RuleType { return b.typ }

// Category 规则分类
func (b *baseRule) Category() model.RuleCategory { return b.category }

// Weight 规则权重
func (b *baseRule) Weight() float64 { return b.weight }

// violation 生成带规则元数据的违规记录
func (b *baseRule) violation(desc string) model.RuleViolation {
	return model.RuleViolation{
		RuleID:      b.id,
		RuleName:    b.name,
		RuleType:    b.typ,
		Category:    b.category,
		Description: desc,
	}
}

// softPenalty 软规则的单条违规惩罚分
func (b *baseRule) softPenalty(severity float64) float64 {
	if severity <= 0 {
		severity = 1.0
	}
	return b.weight * severity
}
