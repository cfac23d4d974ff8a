package builtin

import (
	"testing"

	"github.com/hupai/hupai/pkg/model"
)

func TestWeekendFairnessRule_Evaluate(t *testing.T) {
	// 2026-03-07 周六 / 2026-03-08 周日
	busy := testStaff("钱护士", model.RoleRN, 3)
	idle := testStaff("孙护士", model.RoleRN, 3)

	sat := testShift("2026-03-07", model.ShiftDay, 1, false)
	sun := testShift("2026-03-08", model.ShiftDay, 1, false)
	mon := testShift("2026-03-09", model.ShiftDay, 1, false)

	t.Run("周末班严重不均，应计惩罚", func(t *testing.T) {
		c := testContext([]*model.ShiftInstance{sat, sun, mon},
			[]*model.StaffMember{busy, idle},
			[]*model.Assignment{
				testAssignment(sat, busy),
				testAssignment(sun, busy),
				testAssignment(mon, idle),
			})

		rule := NewWeekendFairnessRule(model.Rule{
			Weight: 2,
			Params: model.RuleParams{Fairness: &model.FairnessParams{TargetDeviation: 0.5}},
		})
		valid, penalty, violations := rule.Evaluate(c)
		if valid {
			t.Error("周末班2:0分布偏差1.0超过允许幅度0.5，应违规")
		}
		if penalty <= 0 {
			t.Errorf("软规则应累计惩罚分, got %v", penalty)
		}
		if len(violations) != 2 {
			t.Errorf("两名人员都偏离平均值, violations = %d, want 2", len(violations))
		}
	})

	t.Run("周末豁免人员不参与统计", func(t *testing.T) {
		exempt := testStaff("豁免护士", model.RoleRN, 3)
		exempt.WeekendExempt = true

		c := testContext([]*model.ShiftInstance{sat, mon},
			[]*model.StaffMember{busy, exempt},
			[]*model.Assignment{
				testAssignment(sat, busy),
				testAssignment(mon, exempt),
			})

		rule := NewWeekendFairnessRule(model.Rule{
			Params: model.RuleParams{Fairness: &model.FairnessParams{TargetDeviation: 0.5}},
		})
		if valid, _, _ := rule.Evaluate(c); !valid {
			t.Error("豁免人员剔除后仅一人参与，无偏差应通过")
		}
	})
}

func TestHolidayFairnessRule_LogicalGroupSingleCredit(t *testing.T) {
	// 春节三天属于同一逻辑节日组，连上三天只计一次记分
	worker := testStaff("连班护士", model.RoleRN, 3)
	peer := testStaff("对照护士", model.RoleRN, 3)

	d1 := testShift("2026-02-16", model.ShiftDay, 1, false)
	d2 := testShift("2026-02-17", model.ShiftDay, 1, false)
	d3 := testShift("2026-02-18", model.ShiftDay, 1, false)
	other := testShift("2026-02-19", model.ShiftDay, 1, false)

	c := testContext([]*model.ShiftInstance{d1, d2, d3, other},
		[]*model.StaffMember{worker, peer},
		[]*model.Assignment{
			testAssignment(d1, worker),
			testAssignment(d2, worker),
			testAssignment(d3, worker),
			testAssignment(other, peer),
		})
	c.SetHolidays([]*model.PublicHoliday{
		{BaseModel: model.NewBaseModel(), Date: "2026-02-16", Name: "除夕", LogicalGroup: "spring-festival", IsActive: true},
		{BaseModel: model.NewBaseModel(), Date: "2026-02-17", Name: "春节", LogicalGroup: "spring-festival", IsActive: true},
		{BaseModel: model.NewBaseModel(), Date: "2026-02-18", Name: "春节", LogicalGroup: "spring-festival", IsActive: true},
	})

	// worker记分1，peer记分0，平均0.5，偏差0.5未超过允许幅度1.0
	rule := NewHolidayFairnessRule(model.Rule{})
	valid, _, violations := rule.Evaluate(c)
	if !valid {
		t.Errorf("同组三天只计一次记分，偏差0.5应通过, violations=%v", violations)
	}
}

func TestHolidayFairnessRule_NoHolidays(t *testing.T) {
	staff := testStaff("冯护士", model.RoleRN, 3)
	shift := testShift("2026-03-02", model.ShiftDay, 1, false)
	c := testContext([]*model.ShiftInstance{shift}, []*model.StaffMember{staff},
		[]*model.Assignment{testAssignment(shift, staff)})

	if valid, _, _ := NewHolidayFairnessRule(model.Rule{}).Evaluate(c); !valid {
		t.Error("无节假日数据应直接通过")
	}
}
