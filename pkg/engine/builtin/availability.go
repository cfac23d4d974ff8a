package builtin

import (
	"fmt"

	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// AvailabilityRule 休假与可用性合规规则（硬规则）
// 有效分配不得落在已批准休假日、按日聘用未申报日，也不得指向停用人员
type AvailabilityRule struct {
	baseRule
}

// NewAvailabilityRule 创建休假与可用性合规规则
func NewAvailabilityRule(rec model.Rule) *AvailabilityRule {
	return &AvailabilityRule{
		baseRule: newBase(rec, model.KindAvailability, model.RuleHard, model.CategoryStaffing, "休假与可用性合规"),
	}
}

// Evaluate 逐条检查有效分配的可用性
func (r *AvailabilityRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	var violations []model.RuleViolation
	for _, a := range c.Assignments {
		staff := c.StaffByID(a.StaffID)
		if staff == nil {
			continue
		}
		staffID := a.StaffID

		if !staff.IsActive() {
			v := r.violation(fmt.Sprintf("%s 已停用，但在 %s 仍有分配", staff.Name, a.Date))
			v.ShiftID = a.ShiftID
			v.StaffID = &staffID
			v.Date = a.Date
			violations = append(violations, v)
		}
		if c.HasApprovedLeave(a.StaffID, a.Date) {
			v := r.violation(fmt.Sprintf("%s 在已批准休假日 %s 仍有分配", staff.Name, a.Date))
			v.ShiftID = a.ShiftID
			v.StaffID = &staffID
			v.Date = a.Date
			violations = append(violations, v)
		}
		if staff.IsPerDiem() && !c.PRNAvailable(a.StaffID, a.Date) {
			v := r.violation(fmt.Sprintf("按日聘用人员 %s 未申报 %s 可用，但该日有分配", staff.Name, a.Date))
			v.ShiftID = a.ShiftID
			v.StaffID = &staffID
			v.Date = a.Date
			violations = append(violations, v)
		}
	}
	return len(violations) == 0, 0, violations
}
