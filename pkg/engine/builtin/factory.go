package builtin

import (
	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// FromRecord 将规则配置记录映射到内置规则实现
// 未启用或种类未识别的记录返回 nil
func FromRecord(rec model.Rule) engine.Rule {
	if !rec.IsActive {
		return nil
	}
	switch rec.Kind {
	case model.KindRequiredStaffing:
		return NewRequiredStaffingRule(rec)
	case model.KindChargeCoverage:
		return NewChargeCoverageRule(rec)
	case model.KindCensusRatio:
		return NewCensusRatioRule(rec)
	case model.KindMinRest:
		return NewMinRestRule(rec)
	case model.KindMaxConsecutiveDays:
		return NewMaxConsecutiveDaysRule(rec)
	case model.KindWeeklyHours:
		return NewWeeklyHoursRule(rec)
	case model.KindDoubleBooking:
		return NewDoubleBookingRule(rec)
	case model.KindAvailability:
		return NewAvailabilityRule(rec)
	case model.KindPreferenceMatch:
		return NewPreferenceMatchRule(rec)
	case model.KindWeekendFairness:
		return NewWeekendFairnessRule(rec)
	case model.KindHolidayFairness:
		return NewHolidayFairnessRule(rec)
	case model.KindOvertimeRatio:
		return NewOvertimeRatioRule(rec)
	case model.KindSkillMix:
		return NewSkillMixRule(rec)
	default:
		return nil
	}
}

// FromRecords 将一组配置记录装配为规则管理器
// 只装配启用且种类已识别的记录；装配顺序与记录顺序一致
func FromRecords(records []*model.Rule) *engine.Manager {
	m := engine.NewManager()
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if r := FromRecord(*rec); r != nil {
			m.Register(r)
		}
	}
	return m
}

// EvaluateSchedule 用快照自带的规则配置对整表求值
// 没有任何启用规则时结果为有效、零违规、零惩罚
func EvaluateSchedule(c *engine.Context) *model.EvaluationResult {
	return FromRecords(c.Rules).Evaluate(c)
}
