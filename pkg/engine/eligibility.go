package engine

import (
	"fmt"

	"github.com/hupai/hupai/pkg/model"
)

// hardCheck 单项硬性资格检查
// 通过返回 (true, "")，不通过返回 (false, 原因)
type hardCheck func(staff *model.StaffMember, shift *model.ShiftInstance, st *State, c *Context) (bool, string)

// hardChecks 全部硬性资格检查，按固定顺序执行
var hardChecks = []hardCheck{
	checkActive,
	checkUnit,
	checkApprovedLeave,
	checkPRNAvailability,
	checkDoubleBooking,
	checkMinRest,
	checkConsecutiveDays,
	checkWeeklyHours,
	checkCompetency,
}

// PassesHardRules 检查人员是否可被分配到指定班次
// 任一硬性检查失败即不合格
func PassesHardRules(staff *model.StaffMember, shift *model.ShiftInstance, st *State, c *Context) bool {
	for _, check := range hardChecks {
		if ok, _ := check(staff, shift, st, c); !ok {
			return false
		}
	}
	return true
}

// RejectionReasons 返回人员不可被分配到指定班次的全部原因
// 不短路，逐项检查到底；合格时返回空切片
func RejectionReasons(staff *model.StaffMember, shift *model.ShiftInstance, st *State, c *Context) []string {
	reasons := make([]string, 0)
	for _, check := range hardChecks {
		if ok, reason := check(staff, shift, st, c); !ok {
			reasons = append(reasons, reason)
		}
	}
	return reasons
}

func checkActive(staff *model.StaffMember, _ *model.ShiftInstance, _ *State, _ *Context) (bool, string) {
	if !staff.IsActive() {
		return false, "人员已停用，不可排班"
	}
	return true, ""
}

func checkUnit(staff *model.StaffMember, shift *model.ShiftInstance, _ *State, _ *Context) (bool, string) {
	if shift.Unit != "" && !staff.CanServeUnit(shift.Unit) {
		return false, fmt.Sprintf("人员不具备 %s 科室上岗资格", shift.Unit)
	}
	return true, ""
}

func checkApprovedLeave(staff *model.StaffMember, shift *model.ShiftInstance, _ *State, c *Context) (bool, string) {
	if c.HasApprovedLeave(staff.ID, shift.Date) {
		return false, fmt.Sprintf("人员在 %s 处于已批准休假期间", shift.Date)
	}
	return true, ""
}

func checkPRNAvailability(staff *model.StaffMember, shift *model.ShiftInstance, _ *State, c *Context) (bool, string) {
	if staff.IsPerDiem() && !c.PRNAvailable(staff.ID, shift.Date) {
		return false, fmt.Sprintf("按日聘用人员未申报 %s 可用", shift.Date)
	}
	return true, ""
}

func checkDoubleBooking(staff *model.StaffMember, shift *model.ShiftInstance, st *State, _ *Context) (bool, string) {
	for _, a := range st.StaffAssignmentsOn(staff.ID, shift.Date) {
		if a.ShiftID != shift.ID {
			return false, fmt.Sprintf("人员在 %s 已有分配，不可重复排班", shift.Date)
		}
	}
	for _, a := range st.OverlappingAssignments(staff.ID, shift.TimeRange()) {
		if a.ShiftID != shift.ID {
			return false, "该班次与人员现有分配时间重叠"
		}
	}
	return true, ""
}

func checkMinRest(staff *model.StaffMember, shift *model.ShiftInstance, st *State, c *Context) (bool, string) {
	minRest := c.MinRestHours()
	window := shift.TimeRange()
	for _, a := range st.StaffAssignments(staff.ID) {
		// 同班次记录与时间重叠由重复排班检查处理
		if a.ShiftID == shift.ID {
			continue
		}
		r := a.TimeRange()
		if r.Overlaps(window) {
			continue
		}
		var gap float64
		if !r.End.After(window.Start) {
			gap = window.Start.Sub(r.End).Hours()
		} else {
			gap = r.Start.Sub(window.End).Hours()
		}
		if gap < minRest {
			return false, fmt.Sprintf("与相邻班次间隔 %.1f 小时，低于最小休息 %.1f 小时", gap, minRest)
		}
	}
	return true, ""
}

func checkConsecutiveDays(staff *model.StaffMember, shift *model.ShiftInstance, st *State, c *Context) (bool, string) {
	limit := staff.MaxConsecutiveDays()
	if limit <= 0 {
		limit = c.MaxConsecutiveDaysDefault()
	}
	days := st.ConsecutiveDaysAround(staff.ID, shift.Date) + 1
	if days > limit {
		return false, fmt.Sprintf("排入后连续工作 %d 天，超过上限 %d 天", days, limit)
	}
	return true, ""
}

func checkWeeklyHours(staff *model.StaffMember, shift *model.ShiftInstance, st *State, _ *Context) (bool, string) {
	cap := staff.MaxHoursPerWeek()
	if cap <= 0 {
		return true, ""
	}
	hours := st.HoursInWeekOf(staff.ID, shift.Date) + shift.DurationHours
	if hours > cap {
		return false, fmt.Sprintf("排入后当周工时 %.1f 小时，超过人员声明上限 %.1f 小时", hours, cap)
	}
	return true, ""
}

func checkCompetency(staff *model.StaffMember, _ *model.ShiftInstance, _ *State, c *Context) (bool, string) {
	min := c.MinCompetency()
	if !staff.CanWorkUnsupervised(min) {
		return false, fmt.Sprintf("胜任力等级 %d 低于独立上岗下限 %d", staff.CompetencyLevel, min)
	}
	return true, ""
}
