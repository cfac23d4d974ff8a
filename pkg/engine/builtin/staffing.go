package builtin

import (
	"fmt"

	"github.com/hupai/hupai/pkg/census"
	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// RequiredStaffingRule 班次人数达标规则（硬规则）
// 零分配的班次同样计为缺员
type RequiredStaffingRule struct {
	baseRule
	allowedShortfall int
}

// NewRequiredStaffingRule 创建班次人数达标规则
func NewRequiredStaffingRule(rec model.Rule) *RequiredStaffingRule {
	r := &RequiredStaffingRule{
		baseRule: newBase(rec, model.KindRequiredStaffing, model.RuleHard, model.CategoryStaffing, "班次人数达标"),
	}
	if rec.Params.Staffing != nil {
		r.allowedShortfall = rec.Params.Staffing.AllowedShortfall
	}
	return r
}

// Evaluate 检查每个班次的有效分配数是否达到生效需求人数
func (r *RequiredStaffingRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	var violations []model.RuleViolation
	for _, shift := range c.Shifts {
		required := shift.EffectiveRequiredStaff - r.allowedShortfall
		assigned := len(c.AssignmentsForShift(shift.ID))
		if assigned < required {
			v := r.violation(fmt.Sprintf("%s %s班需要 %d 人，实际 %d 人",
				shift.Date, shift.ShiftType, shift.EffectiveRequiredStaff, assigned))
			v.ShiftID = shift.ID
			v.Date = shift.Date
			violations = append(violations, v)
		}
	}
	return len(violations) == 0, 0, violations
}

// ChargeCoverageRule 责任护士覆盖规则（硬规则）
// 需要责任护士的班次必须有一名具备责任护士资格的人员担任
type ChargeCoverageRule struct {
	baseRule
}

// NewChargeCoverageRule 创建责任护士覆盖规则
func NewChargeCoverageRule(rec model.Rule) *ChargeCoverageRule {
	return &ChargeCoverageRule{
		baseRule: newBase(rec, model.KindChargeCoverage, model.RuleHard, model.CategoryStaffing, "责任护士覆盖"),
	}
}

// Evaluate 检查需要责任护士的班次是否有合格人员担任
func (r *ChargeCoverageRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	var violations []model.RuleViolation
	for _, shift := range c.Shifts {
		if !shift.EffectiveRequiresCharge {
			continue
		}
		covered := false
		for _, a := range c.AssignmentsForShift(shift.ID) {
			if !a.IsChargeNurse {
				continue
			}
			staff := c.StaffByID(a.StaffID)
			if staff != nil && staff.ChargeQualified {
				covered = true
				break
			}
		}
		if !covered {
			v := r.violation(fmt.Sprintf("%s %s班缺少合格的责任护士", shift.Date, shift.ShiftType))
			v.ShiftID = shift.ID
			v.Date = shift.Date
			violations = append(violations, v)
		}
	}
	return len(violations) == 0, 0, violations
}

// CensusRatioRule 床位-人力配比规则（硬规则）
// 按科室策略的床位档位核对护士与护理助理人数
// 科室未配置档位时该规则不产生违规
type CensusRatioRule struct {
	baseRule
}

// NewCensusRatioRule 创建床位-人力配比规则
func NewCensusRatioRule(rec model.Rule) *CensusRatioRule {
	return &CensusRatioRule{
		baseRule: newBase(rec, model.KindCensusRatio, model.RuleHard, model.CategoryStaffing, "床位人力配比"),
	}
}

// Evaluate 逐班次核对床位档位要求
func (r *CensusRatioRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	if c.Policy == nil || len(c.Policy.CensusBands) == 0 {
		return true, 0, nil
	}
	var violations []model.RuleViolation
	for _, shift := range c.Shifts {
		if shift.Census <= 0 {
			continue
		}
		band, ok := census.Resolve(c.Policy.CensusBands, shift.Census)
		if !ok {
			continue
		}
		nurses, cnas := 0, 0
		for _, a := range c.AssignmentsForShift(shift.ID) {
			staff := c.StaffByID(a.StaffID)
			if staff == nil {
				continue
			}
			switch staff.Role {
			case model.RoleRN, model.RoleLPN:
				nurses++
			case model.RoleCNA:
				cnas++
			}
		}
		if required := census.RequiredNurses(band, shift.Census); nurses < required {
			v := r.violation(fmt.Sprintf("%s %s班床位数 %d 需要护士 %d 人，实际 %d 人",
				shift.Date, shift.ShiftType, shift.Census, required, nurses))
			v.ShiftID = shift.ID
			v.Date = shift.Date
			violations = append(violations, v)
		}
		if cnas < band.RequiredCNA {
			v := r.violation(fmt.Sprintf("%s %s班床位数 %d 需要护理助理 %d 人，实际 %d 人",
				shift.Date, shift.ShiftType, shift.Census, band.RequiredCNA, cnas))
			v.ShiftID = shift.ID
			v.Date = shift.Date
			violations = append(violations, v)
		}
	}
	return len(violations) == 0, 0, violations
}
