// Package model 定义护理排班引擎的核心数据模型
package model

import "github.com/google/uuid"

// RuleType 规则类型：硬规则违反导致排班不可发布，软规则只计惩罚
type RuleType string

const (
	RuleHard RuleType = "hard" // 硬规则
	RuleSoft RuleType = "soft" // 软规则
)

// RuleCategory 规则领域分类
type RuleCategory string

const (
	CategoryStaffing   RuleCategory = "staffing"   // 人力配置
	CategoryRest       RuleCategory = "rest"       // 休息保障
	CategoryFairness   RuleCategory = "fairness"   // 公平性
	CategoryCost       RuleCategory = "cost"       // 成本
	CategorySkill      RuleCategory = "skill"      // 技能配比
	CategoryPreference RuleCategory = "preference" // 偏好
)

// RuleKind 规则种类标识
// 配置记录通过种类标识映射到内置规则实现
type RuleKind string

const (
	KindRequiredStaffing   RuleKind = "required_staffing"    // 班次人数达标
	KindChargeCoverage     RuleKind = "charge_coverage"      // 责任护士覆盖
	KindCensusRatio        RuleKind = "census_ratio"         // 床位-人力配比
	KindMinRest            RuleKind = "min_rest"             // 班次间最小休息
	KindMaxConsecutiveDays RuleKind = "max_consecutive_days" // 最大连续工作天数
	KindWeeklyHours        RuleKind = "weekly_hours"         // 每周工时上限
	KindDoubleBooking      RuleKind = "double_booking"       // 重复排班
	KindAvailability       RuleKind = "availability"         // 休假与可用性合规
	KindPreferenceMatch    RuleKind = "preference_match"     // 偏好匹配
	KindWeekendFairness    RuleKind = "weekend_fairness"     // 周末分配公平
	KindHolidayFairness    RuleKind = "holiday_fairness"     // 节假日分配公平
	KindOvertimeRatio      RuleKind = "overtime_ratio"       // 加班比例
	KindSkillMix           RuleKind = "skill_mix"            // 技能梯队配比
)

// Rule 规则配置记录
// Params 按领域分类携带类型化参数，未识别的种类落入 Unknown
type Rule struct {
	BaseModel
	Name     string       `json:"name" db:"name"`
	Kind     RuleKind     `json:"kind" db:"kind"`
	Type     RuleType     `json:"type" db:"type"`
	Category RuleCategory `json:"category" db:"category"`
	Weight   float64      `json:"weight" db:"weight"` // 仅软规则使用
	IsActive bool         `json:"is_active" db:"is_active"`
	Params   RuleParams   `json:"params" db:"params"`
}

// RuleParams 规则参数（按种类取用对应变体）
// 对未识别的规则种类保留 Unknown 做前向兼容
type RuleParams struct {
	Staffing   *StaffingParams   `json:"staffing,omitempty"`
	Rest       *RestParams       `json:"rest,omitempty"`
	Fairness   *FairnessParams   `json:"fairness,omitempty"`
	Cost       *CostParams       `json:"cost,omitempty"`
	Skill      *SkillParams      `json:"skill,omitempty"`
	Preference *PreferenceParams `json:"preference,omitempty"`
	Unknown    JSONMap           `json:"unknown,omitempty"`
}

// StaffingParams 人力配置规则参数
type StaffingParams struct {
	// 允许的缺员数，通常为 0
	AllowedShortfall int `json:"allowed_shortfall,omitempty"`
}

// RestParams 休息保障规则参数
type RestParams struct {
	MinRestHours       float64 `json:"min_rest_hours,omitempty"`
	MaxConsecutiveDays int     `json:"max_consecutive_days,omitempty"`
	MaxHoursPerWeek    float64 `json:"max_hours_per_week,omitempty"`
}

// FairnessParams 公平性规则参数
type FairnessParams struct {
	// 周末/节假日数量允许偏离平均值的幅度
	TargetDeviation float64 `json:"target_deviation,omitempty"`
}

// CostParams 成本规则参数
type CostParams struct {
	MaxOvertimeRatio float64 `json:"max_overtime_ratio,omitempty"`
}

// SkillParams 技能配比规则参数
type SkillParams struct {
	MinCompetency int `json:"min_competency,omitempty"`
}

// PreferenceParams 偏好规则参数
type PreferenceParams struct {
	// 单次偏好不匹配的惩罚系数
	MismatchSeverity float64 `json:"mismatch_severity,omitempty"`
}

// RuleViolation 规则违反详情
type RuleViolation struct {
	RuleID       uuid.UUID    `json:"rule_id"`
	RuleName     string       `json:"rule_name"`
	RuleType     RuleType     `json:"rule_type"`
	Category     RuleCategory `json:"category"`
	ShiftID      uuid.UUID    `json:"shift_id,omitempty"`
	StaffID      *uuid.UUID   `json:"staff_id,omitempty"`
	Date         string       `json:"date,omitempty"`
	Description  string       `json:"description"`
	PenaltyScore float64      `json:"penalty_score,omitempty"` // 仅软规则
}
