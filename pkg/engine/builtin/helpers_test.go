package builtin

import (
	"time"

	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// shiftStartHour 各班次类型的起始小时
var shiftStartHour = map[model.ShiftType]int{
	model.ShiftDay:     7,
	model.ShiftEvening: 15,
	model.ShiftNight:   23,
}

func testShift(date string, shiftType model.ShiftType, required int, requiresCharge bool) *model.ShiftInstance {
	day, _ := time.Parse(model.DateLayout, date)
	start := day.Add(time.Duration(shiftStartHour[shiftType]) * time.Hour)
	s := &model.ShiftInstance{
		BaseModel:             model.NewBaseModel(),
		Unit:                  "ICU",
		Date:                  date,
		ShiftType:             shiftType,
		StartTime:             start,
		EndTime:               start.Add(8 * time.Hour),
		DurationHours:         8,
		DefaultRequiredStaff:  required,
		DefaultRequiresCharge: requiresCharge,
	}
	return s
}

func testStaff(name string, role model.Role, competency int) *model.StaffMember {
	return &model.StaffMember{
		BaseModel:         model.NewBaseModel(),
		Name:              name,
		Active:            true,
		Role:              role,
		EmploymentType:    model.EmploymentFullTime,
		CompetencyLevel:   competency,
		ReliabilityRating: 3,
		HomeUnit:          "ICU",
	}
}

func testAssignment(shift *model.ShiftInstance, staff *model.StaffMember) *model.Assignment {
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

func testContext(shifts []*model.ShiftInstance, staff []*model.StaffMember, assignments []*model.Assignment) *engine.Context {
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
	c := engine.NewContext(schedule)
	c.SetShifts(shifts)
	c.SetStaff(staff)
	c.SetAssignments(assignments)
	return c
}
