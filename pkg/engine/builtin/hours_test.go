package builtin

import (
	"testing"

	"github.com/hupai/hupai/pkg/model"
)

func TestWeeklyHoursRule_Evaluate(t *testing.T) {
	staff := testStaff("何护士", model.RoleRN, 3)
	staff.Preferences = &model.StaffPreferences{MaxHoursPerWeek: 40}

	// 2026-03-02 周一起的一周
	weekDates := []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-07"}

	build := func(days int) ([]*model.ShiftInstance, []*model.Assignment) {
		var shifts []*model.ShiftInstance
		var assignments []*model.Assignment
		for i := 0; i < days; i++ {
			s := testShift(weekDates[i], model.ShiftDay, 1, false)
			shifts = append(shifts, s)
			assignments = append(assignments, testAssignment(s, staff))
		}
		return shifts, assignments
	}

	t.Run("40小时等于声明上限，应通过", func(t *testing.T) {
		shifts, assignments := build(5)
		c := testContext(shifts, []*model.StaffMember{staff}, assignments)
		if valid, _, _ := NewWeeklyHoursRule(model.Rule{}).Evaluate(c); !valid {
			t.Error("5个8小时班共40小时，等于上限应通过")
		}
	})

	t.Run("48小时超过声明上限，应失败", func(t *testing.T) {
		shifts, assignments := build(6)
		c := testContext(shifts, []*model.StaffMember{staff}, assignments)
		valid, _, violations := NewWeeklyHoursRule(model.Rule{}).Evaluate(c)
		if valid {
			t.Error("6个8小时班共48小时，超过上限应违规")
		}
		if len(violations) != 1 {
			t.Errorf("violations = %d, want 1", len(violations))
		}
	})

	t.Run("未声明上限且无参数时不检查", func(t *testing.T) {
		free := testStaff("无上限护士", model.RoleRN, 3)
		var shifts []*model.ShiftInstance
		var assignments []*model.Assignment
		for _, d := range weekDates {
			s := testShift(d, model.ShiftDay, 1, false)
			shifts = append(shifts, s)
			assignments = append(assignments, testAssignment(s, free))
		}
		c := testContext(shifts, []*model.StaffMember{free}, assignments)
		if valid, _, _ := NewWeeklyHoursRule(model.Rule{}).Evaluate(c); !valid {
			t.Error("未声明周工时上限的人员应跳过检查")
		}
	})
}

func TestOvertimeRatioRule_Evaluate(t *testing.T) {
	staff := testStaff("冼护士", model.RoleRN, 3)

	build := func(total, overtime int) ([]*model.ShiftInstance, []*model.Assignment) {
		dates := []string{
			"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06",
			"2026-03-09", "2026-03-10", "2026-03-11", "2026-03-12", "2026-03-13",
		}
		var shifts []*model.ShiftInstance
		var assignments []*model.Assignment
		for i := 0; i < total; i++ {
			s := testShift(dates[i], model.ShiftDay, 1, false)
			a := testAssignment(s, staff)
			a.IsOvertime = i < overtime
			shifts = append(shifts, s)
			assignments = append(assignments, a)
		}
		return shifts, assignments
	}

	t.Run("加班占比低于阈值，应通过", func(t *testing.T) {
		shifts, assignments := build(10, 2)
		c := testContext(shifts, []*model.StaffMember{staff}, assignments)
		if valid, penalty, _ := NewOvertimeRatioRule(model.Rule{}).Evaluate(c); !valid || penalty != 0 {
			t.Errorf("20%%加班低于30%%阈值应通过, valid=%v penalty=%v", valid, penalty)
		}
	})

	t.Run("加班占比超过阈值，应计惩罚", func(t *testing.T) {
		shifts, assignments := build(10, 5)
		c := testContext(shifts, []*model.StaffMember{staff}, assignments)
		valid, penalty, violations := NewOvertimeRatioRule(model.Rule{Weight: 1}).Evaluate(c)
		if valid {
			t.Error("50%加班超过30%阈值应违规")
		}
		if penalty <= 0 {
			t.Errorf("应累计惩罚分, got %v", penalty)
		}
		if len(violations) != 1 {
			t.Errorf("violations = %d, want 1", len(violations))
		}
	})

	t.Run("无分配时通过", func(t *testing.T) {
		c := testContext(nil, []*model.StaffMember{staff}, nil)
		if valid, _, _ := NewOvertimeRatioRule(model.Rule{}).Evaluate(c); !valid {
			t.Error("无分配应通过")
		}
	})
}
