package builtin

import (
	"testing"

	"github.com/hupai/hupai/pkg/model"
)

func TestAvailabilityRule_Evaluate(t *testing.T) {
	t.Run("休假日有分配，应失败", func(t *testing.T) {
		staff := testStaff("许护士", model.RoleRN, 3)
		shift := testShift("2026-03-11", model.ShiftDay, 1, false)
		c := testContext([]*model.ShiftInstance{shift}, []*model.StaffMember{staff},
			[]*model.Assignment{testAssignment(shift, staff)})
		c.SetLeaves([]*model.LeaveRecord{{
			BaseModel: model.NewBaseModel(),
			StaffID:   staff.ID,
			StartDate: "2026-03-10",
			EndDate:   "2026-03-12",
			Status:    model.LeaveApproved,
		}})

		valid, _, violations := NewAvailabilityRule(model.Rule{}).Evaluate(c)
		if valid {
			t.Error("已批准休假期间的分配应违规")
		}
		if len(violations) != 1 {
			t.Errorf("violations = %d, want 1", len(violations))
		}
	})

	t.Run("待审批休假不阻断", func(t *testing.T) {
		staff := testStaff("吕护士", model.RoleRN, 3)
		shift := testShift("2026-03-11", model.ShiftDay, 1, false)
		c := testContext([]*model.ShiftInstance{shift}, []*model.StaffMember{staff},
			[]*model.Assignment{testAssignment(shift, staff)})
		c.SetLeaves([]*model.LeaveRecord{{
			BaseModel: model.NewBaseModel(),
			StaffID:   staff.ID,
			StartDate: "2026-03-10",
			EndDate:   "2026-03-12",
			Status:    model.LeavePending,
		}})

		if valid, _, _ := NewAvailabilityRule(model.Rule{}).Evaluate(c); !valid {
			t.Error("待审批休假不应产生违规")
		}
	})

	t.Run("按日聘用未申报日期有分配，应失败", func(t *testing.T) {
		prn := testStaff("施护士", model.RoleRN, 3)
		prn.EmploymentType = model.EmploymentPerDiem
		shift := testShift("2026-03-03", model.ShiftDay, 1, false)
		c := testContext([]*model.ShiftInstance{shift}, []*model.StaffMember{prn},
			[]*model.Assignment{testAssignment(shift, prn)})
		c.SetPRNAvailability([]*model.PRNAvailability{{
			StaffID: prn.ID,
			Dates:   []string{"2026-03-02"},
		}})

		if valid, _, _ := NewAvailabilityRule(model.Rule{}).Evaluate(c); valid {
			t.Error("未申报2026-03-03可用，该日分配应违规")
		}
	})

	t.Run("按日聘用已申报日期通过", func(t *testing.T) {
		prn := testStaff("张三", model.RoleRN, 3)
		prn.EmploymentType = model.EmploymentPerDiem
		shift := testShift("2026-03-02", model.ShiftDay, 1, false)
		c := testContext([]*model.ShiftInstance{shift}, []*model.StaffMember{prn},
			[]*model.Assignment{testAssignment(shift, prn)})
		c.SetPRNAvailability([]*model.PRNAvailability{{
			StaffID: prn.ID,
			Dates:   []string{"2026-03-02", "2026-03-03"},
		}})

		if valid, _, _ := NewAvailabilityRule(model.Rule{}).Evaluate(c); !valid {
			t.Error("已申报日期的分配应通过")
		}
	})

	t.Run("停用人员有分配，应失败", func(t *testing.T) {
		inactive := testStaff("离岗护士", model.RoleRN, 3)
		inactive.Active = false
		shift := testShift("2026-03-02", model.ShiftDay, 1, false)
		c := testContext([]*model.ShiftInstance{shift}, []*model.StaffMember{inactive},
			[]*model.Assignment{testAssignment(shift, inactive)})

		if valid, _, _ := NewAvailabilityRule(model.Rule{}).Evaluate(c); valid {
			t.Error("停用人员的分配应违规")
		}
	})
}
