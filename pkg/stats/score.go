// Package stats 计算排班表的质量评分
//
// 所有分项与总分均为 0-1 的劣化分：0 表示理想，1 表示最差。
// 对同一快照重复计算结果完全一致
package stats

import (
	"math"
	"time"

	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// 总分加权：人力覆盖权重最高，其次公平与成本
const (
	weightCoverage   = 3.0
	weightFairness   = 2.0
	weightCost       = 2.0
	weightPreference = 1.5
	weightSkillMix   = 1.0

	// 公平分归一化用的标准差上限
	fairnessStdDevCap = 3.0
	// 成本分归一化用的加班比例上限
	costOvertimeCap = 0.30
)

// ScoreSchedule 计算整表评分
func ScoreSchedule(c *engine.Context) *model.ScoreBreakdown {
	coverage := CoverageScore(c)
	fairness := FairnessScore(c)
	cost := CostScore(c)
	preference := PreferenceScore(c)
	skillMix := SkillMixScore(c)

	totalWeight := weightCoverage + weightFairness + weightCost + weightPreference + weightSkillMix
	overall := (weightCoverage*coverage + weightFairness*fairness + weightCost*cost +
		weightPreference*preference + weightSkillMix*skillMix) / totalWeight

	return &model.ScoreBreakdown{
		Coverage:   round2(coverage),
		Fairness:   round2(fairness),
		Cost:       round2(cost),
		Preference: round2(preference),
		SkillMix:   round2(skillMix),
		Overall:    round2(overall),
	}
}

// CoverageScore 人力覆盖分
// 人数满足率占七成，责任护士覆盖率占三成；全部满足时为 0
func CoverageScore(c *engine.Context) float64 {
	requiredTotal, filledTotal := 0, 0
	chargeRequired, chargeCovered := 0, 0

	for _, shift := range c.Shifts {
		assignments := c.AssignmentsForShift(shift.ID)
		if shift.EffectiveRequiredStaff > 0 {
			requiredTotal += shift.EffectiveRequiredStaff
			filled := len(assignments)
			if filled > shift.EffectiveRequiredStaff {
				filled = shift.EffectiveRequiredStaff
			}
			filledTotal += filled
		}
		if shift.EffectiveRequiresCharge {
			chargeRequired++
			for _, a := range assignments {
				staff := c.StaffByID(a.StaffID)
				if a.IsChargeNurse && staff != nil && staff.ChargeQualified {
					chargeCovered++
					break
				}
			}
		}
	}

	fillRatio := 1.0
	if requiredTotal > 0 {
		fillRatio = float64(filledTotal) / float64(requiredTotal)
	}
	chargeRatio := 1.0
	if chargeRequired > 0 {
		chargeRatio = float64(chargeCovered) / float64(chargeRequired)
	}
	return clamp01(1 - (0.7*fillRatio + 0.3*chargeRatio))
}

// FairnessScore 周末分配公平分
// 有排班人员周末班数的总体标准差，按上限归一化
func FairnessScore(c *engine.Context) float64 {
	counts := WeekendCounts(c)
	if len(counts) == 0 {
		return 0
	}
	return clamp01(PopulationStdDev(counts) / fairnessStdDevCap)
}

// CostScore 成本分
// 加班分配占比按阈值归一化，无分配时为 0
func CostScore(c *engine.Context) float64 {
	total := len(c.Assignments)
	if total == 0 {
		return 0
	}
	overtime := 0
	for _, a := range c.Assignments {
		if a.IsOvertime {
			overtime++
		}
	}
	ratio := float64(overtime) / float64(total)
	return clamp01(ratio / costOvertimeCap)
}

// PreferenceScore 偏好匹配分
// 不匹配项占可检查偏好项的比例，无可检查项时为 0
func PreferenceScore(c *engine.Context) float64 {
	checks, mismatches := 0, 0
	for _, a := range c.Assignments {
		staff := c.StaffByID(a.StaffID)
		if staff == nil || staff.Preferences == nil {
			continue
		}
		prefs := staff.Preferences

		if prefs.PreferredShiftType != "" && prefs.PreferredShiftType != model.PreferredShiftAny {
			checks++
			if string(a.ShiftType) != prefs.PreferredShiftType {
				mismatches++
			}
		}
		if len(prefs.PreferredDaysOff) > 0 {
			checks++
			if d, err := time.Parse(model.DateLayout, a.Date); err == nil && staff.PrefersDayOff(d.Weekday()) {
				mismatches++
			}
		}
		// 周末回避只对落在周末的分配构成可检查项，且一旦落入即为失配
		if prefs.AvoidWeekends && model.IsWeekendDate(a.Date) {
			checks++
			mismatches++
		}
	}
	if checks == 0 {
		return 0
	}
	return clamp01(float64(mismatches) / float64(checks))
}

// SkillMixScore 技能梯队分
// 多人班次中胜任力等级无差异的班次占比，无可评估班次时为 0
func SkillMixScore(c *engine.Context) float64 {
	considered, flat := 0, 0
	for _, shift := range c.Shifts {
		levels := make([]int, 0, 4)
		for _, a := range c.AssignmentsForShift(shift.ID) {
			staff := c.StaffByID(a.StaffID)
			if staff == nil || staff.CompetencyLevel <= 0 {
				continue
			}
			levels = append(levels, staff.CompetencyLevel)
		}
		if len(levels) < 2 {
			continue
		}
		considered++
		min, max := levels[0], levels[0]
		for _, l := range levels[1:] {
			if l < min {
				min = l
			}
			if l > max {
				max = l
			}
		}
		if max == min {
			flat++
		}
	}
	if considered == 0 {
		return 0
	}
	return clamp01(float64(flat) / float64(considered))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
