package builtin

import (
	"fmt"
	"time"

	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// PreferenceMatchRule 偏好匹配规则（软规则）
// 每条与人员偏好冲突的分配计一次惩罚
type PreferenceMatchRule struct {
	baseRule
	severity float64
}

// NewPreferenceMatchRule 创建偏好匹配规则
func NewPreferenceMatchRule(rec model.Rule) *PreferenceMatchRule {
	r := &PreferenceMatchRule{
		baseRule: newBase(rec, model.KindPreferenceMatch, model.RuleSoft, model.CategoryPreference, "排班偏好匹配"),
		severity: 1.0,
	}
	if rec.Params.Preference != nil && rec.Params.Preference.MismatchSeverity > 0 {
		r.severity = rec.Params.Preference.MismatchSeverity
	}
	return r
}

// Evaluate 逐条分配核对班次类型、偏好休息日与周末回避偏好
func (r *PreferenceMatchRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	var violations []model.RuleViolation
	totalPenalty := 0.0

	addViolation := func(a *model.Assignment, desc string) {
		staffID := a.StaffID
		penalty := r.softPenalty(r.severity)
		v := r.violation(desc)
		v.ShiftID = a.ShiftID
		v.StaffID = &staffID
		v.Date = a.Date
		v.PenaltyScore = penalty
		violations = append(violations, v)
		totalPenalty += penalty
	}

	for _, a := range c.Assignments {
		staff := c.StaffByID(a.StaffID)
		if staff == nil || staff.Preferences == nil {
			continue
		}
		prefs := staff.Preferences

		if prefs.PreferredShiftType != "" && prefs.PreferredShiftType != model.PreferredShiftAny &&
			string(a.ShiftType) != prefs.PreferredShiftType {
			addViolation(a, fmt.Sprintf("%s 偏好%s班，被排到 %s 的%s班",
				staff.Name, prefs.PreferredShiftType, a.Date, a.ShiftType))
		}

		if d, err := time.Parse(model.DateLayout, a.Date); err == nil && staff.PrefersDayOff(d.Weekday()) {
			addViolation(a, fmt.Sprintf("%s 偏好该星期几休息，被排到 %s", staff.Name, a.Date))
		}

		if prefs.AvoidWeekends && model.IsWeekendDate(a.Date) {
			addViolation(a, fmt.Sprintf("%s 希望回避周末，被排到周末 %s", staff.Name, a.Date))
		}
	}
	return len(violations) == 0, totalPenalty, violations
}
