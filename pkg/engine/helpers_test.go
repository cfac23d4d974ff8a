package engine

import (
	"time"

	"github.com/hupai/hupai/pkg/model"
)

var startHour = map[model.ShiftType]int{
	model.ShiftDay:     7,
	model.ShiftEvening: 15,
	model.ShiftNight:   23,
}

func newTestShift(date string, shiftType model.ShiftType, required int) *model.ShiftInstance {
	day, _ := time.Parse(model.DateLayout, date)
	start := day.Add(time.Duration(startHour[shiftType]) * time.Hour)
	return &model.ShiftInstance{
		BaseModel:            model.NewBaseModel(),
		Unit:                 "ICU",
		Date:                 date,
		ShiftType:            shiftType,
		StartTime:            start,
		EndTime:              start.Add(8 * time.Hour),
		DurationHours:        8,
		DefaultRequiredStaff: required,
	}
}

func newTestStaff(name string) *model.StaffMember {
	return &model.StaffMember{
		BaseModel:         model.NewBaseModel(),
		Name:              name,
		Active:            true,
		Role:              model.RoleRN,
		EmploymentType:    model.EmploymentFullTime,
		CompetencyLevel:   3,
		ReliabilityRating: 3,
		HomeUnit:          "ICU",
	}
}

func newTestAssignment(shift *model.ShiftInstance, staff *model.StaffMember) *model.Assignment {
	return &model.Assignment{
		BaseModel:     model.NewBaseModel(),
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

func newTestContext(shifts []*model.ShiftInstance, staff []*model.StaffMember, assignments []*model.Assignment) *Context {
	schedule := &model.Schedule{
		BaseModel: model.NewBaseModel(),
		Unit:      "ICU",
		Name:      "测试排班表",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-28",
		Status:    "draft",
	}
	for _, a := range assignments {
		a.ScheduleID = schedule.ID
	}
	c := NewContext(schedule)
	c.SetShifts(shifts)
	c.SetStaff(staff)
	c.SetAssignments(assignments)
	return c
}
