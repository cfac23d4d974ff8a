// Package scenario 提供场景测试
package scenario

import (
	"time"

	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

var shiftStartHour = map[model.ShiftType]int{
	model.ShiftDay:     7,
	model.ShiftEvening: 15,
	model.ShiftNight:   23,
}

func createSchedule(unit, name string) *model.Schedule {
	return &model.Schedule{
		BaseModel: model.NewBaseModel(),
		Unit:      unit,
		Name:      name,
		StartDate: "2026-03-01",
		EndDate:   "2026-03-28",
		Status:    "draft",
	}
}

func createShift(unit, date string, shiftType model.ShiftType, required int, requiresCharge bool) *model.ShiftInstance {
	day, _ := time.Parse(model.DateLayout, date)
	start := day.Add(time.Duration(shiftStartHour[shiftType]) * time.Hour)
	return &model.ShiftInstance{
		BaseModel:             model.NewBaseModel(),
		Unit:                  unit,
		Date:                  date,
		ShiftType:             shiftType,
		StartTime:             start,
		EndTime:               start.Add(8 * time.Hour),
		DurationHours:         8,
		DefaultRequiredStaff:  required,
		DefaultRequiresCharge: requiresCharge,
	}
}

func createNurse(name string, role model.Role, employment model.EmploymentType, competency int) *model.StaffMember {
	return &model.StaffMember{
		BaseModel:         model.NewBaseModel(),
		Name:              name,
		Active:            true,
		Role:              role,
		EmploymentType:    employment,
		CompetencyLevel:   competency,
		ReliabilityRating: 3,
		HomeUnit:          "ICU",
	}
}

func createAssignment(schedule *model.Schedule, shift *model.ShiftInstance, staff *model.StaffMember) *model.Assignment {
	return &model.Assignment{
		BaseModel:     model.NewBaseModel(),
		ScheduleID:    schedule.ID,
		ShiftID:       shift.ID,
		StaffID:       staff.ID,
		Date:          shift.Date,
		ShiftType:     shift.ShiftType,
		StartTime:     shift.StartTime,
		EndTime:       shift.EndTime,
		DurationHours: shift.DurationHours,
		Unit:          shift.Unit,
		Status:        model.AssignmentAssigned,
	}
}

func createRule(name string, kind model.RuleKind, typ model.RuleType, category model.RuleCategory, weight float64) *model.Rule {
	return &model.Rule{
		BaseModel: model.NewBaseModel(),
		Name:      name,
		Kind:      kind,
		Type:      typ,
		Category:  category,
		Weight:    weight,
		IsActive:  true,
	}
}

func buildContext(schedule *model.Schedule, shifts []*model.ShiftInstance, staff []*model.StaffMember, assignments []*model.Assignment, rules []*model.Rule) *engine.Context {
	c := engine.NewContext(schedule)
	c.SetShifts(shifts)
	c.SetStaff(staff)
	c.SetAssignments(assignments)
	c.SetRules(rules)
	return c
}
