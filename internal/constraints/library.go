// Package constraints 提供规则库说明
//
// 规则库描述引擎支持的全部规则种类及其参数定义，
// 供前端配置界面与规则校验使用
package constraints

import "github.com/hupai/hupai/pkg/model"

// ParamDef 规则参数定义
type ParamDef struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // int/float/bool
	Default     interface{} `json:"default,omitempty"`
	Description string      `json:"description"`
}

// RuleDef 规则种类定义
type RuleDef struct {
	Kind        model.RuleKind     `json:"kind"`
	Name        string             `json:"name"`
	Type        model.RuleType     `json:"type"`
	Category    model.RuleCategory `json:"category"`
	Description string             `json:"description"`
	Params      []ParamDef         `json:"params,omitempty"`
}

// Library 返回规则库定义，顺序固定
func Library() []RuleDef {
	return []RuleDef{
		{
			Kind:        model.KindRequiredStaffing,
			Name:        "班次人数达标",
			Type:        model.RuleHard,
			Category:    model.CategoryStaffing,
			Description: "每个班次的有效分配人数不得低于生效需求人数，零分配班次同样计为缺员",
			Params: []ParamDef{
				{Name: "allowed_shortfall", Type: "int", Default: 0, Description: "允许的缺员数"},
			},
		},
		{
			Kind:        model.KindChargeCoverage,
			Name:        "责任护士覆盖",
			Type:        model.RuleHard,
			Category:    model.CategoryStaffing,
			Description: "需要责任护士的班次必须有一名具备资格的人员担任责任护士",
		},
		{
			Kind:        model.KindCensusRatio,
			Name:        "床位人力配比",
			Type:        model.RuleHard,
			Category:    model.CategoryStaffing,
			Description: "按科室策略的床位档位核对护士与护理助理人数",
		},
		{
			Kind:        model.KindMinRest,
			Name:        "班次间最小休息",
			Type:        model.RuleHard,
			Category:    model.CategoryRest,
			Description: "同一人员相邻班次之间的休息时间不得低于下限",
			Params: []ParamDef{
				{Name: "min_rest_hours", Type: "float", Default: model.DefaultMinRestHours, Description: "最小休息小时数"},
			},
		},
		{
			Kind:        model.KindMaxConsecutiveDays,
			Name:        "最大连续工作天数",
			Type:        model.RuleHard,
			Category:    model.CategoryRest,
			Description: "连续工作天数不得超过上限，优先取人员声明偏好",
			Params: []ParamDef{
				{Name: "max_consecutive_days", Type: "int", Default: model.DefaultMaxConsecutiveDays, Description: "最大连续天数"},
			},
		},
		{
			Kind:        model.KindWeeklyHours,
			Name:        "每周工时上限",
			Type:        model.RuleHard,
			Category:    model.CategoryRest,
			Description: "自然周（周一起始）工时不得超过人员声明上限",
			Params: []ParamDef{
				{Name: "max_hours_per_week", Type: "float", Description: "统一周工时上限，不设则按人员声明"},
			},
		},
		{
			Kind:        model.KindDoubleBooking,
			Name:        "重复排班",
			Type:        model.RuleHard,
			Category:    model.CategoryStaffing,
			Description: "同一人员同一日期不得出现多条有效分配",
		},
		{
			Kind:        model.KindAvailability,
			Name:        "休假与可用性合规",
			Type:        model.RuleHard,
			Category:    model.CategoryStaffing,
			Description: "分配不得落在已批准休假日或按日聘用未申报日",
		},
		{
			Kind:        model.KindPreferenceMatch,
			Name:        "排班偏好匹配",
			Type:        model.RuleSoft,
			Category:    model.CategoryPreference,
			Description: "与人员班次类型、休息日、周末回避偏好冲突的分配计惩罚",
			Params: []ParamDef{
				{Name: "mismatch_severity", Type: "float", Default: 1.0, Description: "单次不匹配的惩罚系数"},
			},
		},
		{
			Kind:        model.KindWeekendFairness,
			Name:        "周末分配公平",
			Type:        model.RuleSoft,
			Category:    model.CategoryFairness,
			Description: "周末班数偏离平均值超过允许幅度时计惩罚",
			Params: []ParamDef{
				{Name: "target_deviation", Type: "float", Default: 1.0, Description: "允许偏离平均值的幅度"},
			},
		},
		{
			Kind:        model.KindHolidayFairness,
			Name:        "节假日分配公平",
			Type:        model.RuleSoft,
			Category:    model.CategoryFairness,
			Description: "同一逻辑节日组同年只计一次记分，记分偏离平均值超过允许幅度时计惩罚",
			Params: []ParamDef{
				{Name: "target_deviation", Type: "float", Default: 1.0, Description: "允许偏离平均值的幅度"},
			},
		},
		{
			Kind:        model.KindOvertimeRatio,
			Name:        "加班比例控制",
			Type:        model.RuleSoft,
			Category:    model.CategoryCost,
			Description: "加班分配占比超过阈值时计惩罚",
			Params: []ParamDef{
				{Name: "max_overtime_ratio", Type: "float", Default: 0.30, Description: "加班比例阈值"},
			},
		},
		{
			Kind:        model.KindSkillMix,
			Name:        "技能梯队配比",
			Type:        model.RuleSoft,
			Category:    model.CategorySkill,
			Description: "多人班次全员胜任力等级相同时计惩罚",
			Params: []ParamDef{
				{Name: "min_competency", Type: "int", Description: "期望的带班胜任力等级"},
			},
		},
	}
}
