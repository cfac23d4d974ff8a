package builtin

import (
	"fmt"

	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// SkillMixRule 技能梯队配比规则（软规则）
// 多人班次中全员胜任力等级相同视为梯队失衡（缺少带教或资深搭配）
type SkillMixRule struct {
	baseRule
	minCompetency int
}

// NewSkillMixRule 创建技能梯队配比规则
func NewSkillMixRule(rec model.Rule) *SkillMixRule {
	r := &SkillMixRule{
		baseRule: newBase(rec, model.KindSkillMix, model.RuleSoft, model.CategorySkill, "技能梯队配比"),
	}
	if rec.Params.Skill != nil {
		r.minCompetency = rec.Params.Skill.MinCompetency
	}
	return r
}

// Evaluate 检查每个多人班次的胜任力等级分布
func (r *SkillMixRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	var violations []model.RuleViolation
	totalPenalty := 0.0
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
		min, max := levels[0], levels[0]
		for _, l := range levels[1:] {
			if l < min {
				min = l
			}
			if l > max {
				max = l
			}
		}
		if max-min == 0 {
			penalty := r.softPenalty(1)
			v := r.violation(fmt.Sprintf("%s %s班 %d 人胜任力等级全部为 %d，缺少梯队搭配",
				shift.Date, shift.ShiftType, len(levels), min))
			v.ShiftID = shift.ID
			v.Date = shift.Date
			v.PenaltyScore = penalty
			violations = append(violations, v)
			totalPenalty += penalty
		}
		if r.minCompetency > 0 && max < r.minCompetency {
			penalty := r.softPenalty(1)
			v := r.violation(fmt.Sprintf("%s %s班最高胜任力等级 %d，低于期望的带班等级 %d",
				shift.Date, shift.ShiftType, max, r.minCompetency))
			v.ShiftID = shift.ID
			v.Date = shift.Date
			v.PenaltyScore = penalty
			violations = append(violations, v)
			totalPenalty += penalty
		}
	}
	return len(violations) == 0, totalPenalty, violations
}
