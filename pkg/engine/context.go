// Package engine 提供护理排班规则与评分引擎
//
// 引擎对输入快照是纯函数：评估不产生 I/O、不修改快照、
// 同一快照重复求值结果完全一致
package engine

import (
	"context"

	"github.com/google/uuid"
	"github.com/hupai/hupai/pkg/errors"
	"github.com/hupai/hupai/pkg/model"
)

// SnapshotSource 快照数据来源
// 由持久化层实现，引擎只在构建快照时读取一次
type SnapshotSource interface {
	ScheduleByID(ctx context.Context, id uuid.UUID) (*model.Schedule, error)
	ShiftsForSchedule(ctx context.Context, scheduleID uuid.UUID) ([]*model.ShiftInstance, error)
	StaffForUnit(ctx context.Context, unit string) ([]*model.StaffMember, error)
	AssignmentsForSchedule(ctx context.Context, scheduleID uuid.UUID) ([]*model.Assignment, error)
	PRNAvailabilityForSchedule(ctx context.Context, scheduleID uuid.UUID) ([]*model.PRNAvailability, error)
	LeavesOverlapping(ctx context.Context, startDate, endDate string) ([]*model.LeaveRecord, error)
	// PolicyForUnit 未配置时返回 (nil, nil)，引擎回落默认值
	PolicyForUnit(ctx context.Context, unit string) (*model.UnitPolicy, error)
	ActiveHolidays(ctx context.Context) ([]*model.PublicHoliday, error)
	RulesForUnit(ctx context.Context, unit string) ([]*model.Rule, error)
}

// Context 排班评估上下文快照
// 构建完成后只读，评估过程不得修改
type Context struct {
	Schedule *model.Schedule
	Unit     string

	Shifts      []*model.ShiftInstance
	Staff       []*model.StaffMember
	Assignments []*model.Assignment // 仅 assigned/confirmed
	Leaves      []*model.LeaveRecord
	Holidays    []*model.PublicHoliday
	Policy      *model.UnitPolicy
	Rules       []*model.Rule

	// 索引缓存
	shiftMap           map[uuid.UUID]*model.ShiftInstance
	staffMap           map[uuid.UUID]*model.StaffMember
	shiftAssignments   map[uuid.UUID][]*model.Assignment
	prnDates           map[uuid.UUID]map[string]bool
	prnDeclared        map[uuid.UUID]bool
	holidayByDate      map[string]*model.PublicHoliday
}

// NewContext 创建新的评估上下文
func NewContext(schedule *model.Schedule) *Context {
	c := &Context{
		Schedule:           schedule,
		shiftMap:           make(map[uuid.UUID]*model.ShiftInstance),
		staffMap:           make(map[uuid.UUID]*model.StaffMember),
		shiftAssignments:   make(map[uuid.UUID][]*model.Assignment),
		prnDates:           make(map[uuid.UUID]map[string]bool),
		prnDeclared:        make(map[uuid.UUID]bool),
		holidayByDate:      make(map[string]*model.PublicHoliday),
	}
	if schedule != nil {
		c.Unit = schedule.Unit
	}
	return c
}

// SetShifts 设置班次实例并解析生效需求
// 实例覆盖优先于定义默认，解析只在此处做一次
func (c *Context) SetShifts(shifts []*model.ShiftInstance) {
	c.Shifts = shifts
	c.shiftMap = make(map[uuid.UUID]*model.ShiftInstance, len(shifts))
	for _, s := range shifts {
		s.ResolveEffective()
		c.shiftMap[s.ID] = s
	}
}

// SetStaff 设置人员名册
func (c *Context) SetStaff(staff []*model.StaffMember) {
	c.Staff = staff
	c.staffMap = make(map[uuid.UUID]*model.StaffMember, len(staff))
	for _, s := range staff {
		c.staffMap[s.ID] = s
	}
}

// SetAssignments 设置分配列表
// 只保留计入覆盖与规则评估的有效分配
func (c *Context) SetAssignments(assignments []*model.Assignment) {
	live := make([]*model.Assignment, 0, len(assignments))
	c.shiftAssignments = make(map[uuid.UUID][]*model.Assignment)
	for _, a := range assignments {
		if !a.IsLive() {
			continue
		}
		live = append(live, a)
		c.shiftAssignments[a.ShiftID] = append(c.shiftAssignments[a.ShiftID], a)
	}
	c.Assignments = live
}

// SetLeaves 设置休假记录
func (c *Context) SetLeaves(leaves []*model.LeaveRecord) {
	c.Leaves = leaves
}

// SetHolidays 设置节假日，只保留启用项并建立日期索引
func (c *Context) SetHolidays(holidays []*model.PublicHoliday) {
	active := make([]*model.PublicHoliday, 0, len(holidays))
	c.holidayByDate = make(map[string]*model.PublicHoliday)
	for _, h := range holidays {
		if !h.IsActive {
			continue
		}
		active = append(active, h)
		c.holidayByDate[h.Date] = h
	}
	c.Holidays = active
}

// SetPolicy 设置科室策略，nil 表示未配置（使用默认值）
func (c *Context) SetPolicy(policy *model.UnitPolicy) {
	c.Policy = policy
}

// SetPRNAvailability 设置按日聘用可用申报
func (c *Context) SetPRNAvailability(entries []*model.PRNAvailability) {
	c.prnDates = make(map[uuid.UUID]map[string]bool, len(entries))
	c.prnDeclared = make(map[uuid.UUID]bool, len(entries))
	for _, e := range entries {
		dates, ok := c.prnDates[e.StaffID]
		if !ok {
			dates = make(map[string]bool, len(e.Dates))
			c.prnDates[e.StaffID] = dates
		}
		for _, d := range e.Dates {
			dates[d] = true
		}
		c.prnDeclared[e.StaffID] = true
	}
}

// SetRules 设置规则配置记录
func (c *Context) SetRules(rules []*model.Rule) {
	c.Rules = rules
}

// Shift 按ID获取班次实例，不存在返回 nil
func (c *Context) Shift(id uuid.UUID) *model.ShiftInstance {
	return c.shiftMap[id]
}

// StaffByID 按ID获取人员，不存在返回 nil
func (c *Context) StaffByID(id uuid.UUID) *model.StaffMember {
	return c.staffMap[id]
}

// AssignmentsForShift 返回某班次的有效分配
func (c *Context) AssignmentsForShift(shiftID uuid.UUID) []*model.Assignment {
	return c.shiftAssignments[shiftID]
}

// HasApprovedLeave 检查人员在指定日期是否有已批准休假
func (c *Context) HasApprovedLeave(staffID uuid.UUID, date string) bool {
	for _, l := range c.Leaves {
		if l.StaffID == staffID && l.Blocks() && l.Covers(date) {
			return true
		}
	}
	return false
}

// PRNAvailable 检查按日聘用人员在指定日期是否申报可用
// 未申报的日期一律视为不可用
func (c *Context) PRNAvailable(staffID uuid.UUID, date string) bool {
	dates, ok := c.prnDates[staffID]
	if !ok {
		return false
	}
	return dates[date]
}

// HolidayOn 返回日期对应的启用节假日，无则返回 nil
func (c *Context) HolidayOn(date string) *model.PublicHoliday {
	return c.holidayByDate[date]
}

// HolidayGroupOn 返回日期所属的逻辑节日组
func (c *Context) HolidayGroupOn(date string) (string, bool) {
	h, ok := c.holidayByDate[date]
	if !ok {
		return "", false
	}
	return h.LogicalGroup, true
}

// MinRestHours 返回生效的最小休息小时数
func (c *Context) MinRestHours() float64 {
	return c.Policy.EffectiveMinRestHours()
}

// MaxConsecutiveDaysDefault 返回科室默认最大连续工作天数
func (c *Context) MaxConsecutiveDaysDefault() int {
	return c.Policy.EffectiveMaxConsecutiveDays()
}

// MinCompetency 返回独立上岗胜任力下限
func (c *Context) MinCompetency() int {
	return c.Policy.EffectiveMinCompetency()
}

// EscalationSequence 返回生效的替班升级顺序
func (c *Context) EscalationSequence() []model.EscalationTier {
	return c.Policy.EffectiveEscalationSequence()
}

// BuildContext 构建排班评估上下文快照
// 幂等且无副作用，排班表不存在时返回 NOT_FOUND
func BuildContext(ctx context.Context, src SnapshotSource, scheduleID uuid.UUID) (*Context, error) {
	schedule, err := src.ScheduleByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, errors.NotFound("排班表", scheduleID.String())
	}

	c := NewContext(schedule)

	policy, err := src.PolicyForUnit(ctx, schedule.Unit)
	if err != nil {
		return nil, err
	}
	c.SetPolicy(policy)

	shifts, err := src.ShiftsForSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	c.SetShifts(shifts)

	staff, err := src.StaffForUnit(ctx, schedule.Unit)
	if err != nil {
		return nil, err
	}
	c.SetStaff(staff)

	assignments, err := src.AssignmentsForSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	c.SetAssignments(assignments)

	prn, err := src.PRNAvailabilityForSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	c.SetPRNAvailability(prn)

	leaves, err := src.LeavesOverlapping(ctx, schedule.StartDate, schedule.EndDate)
	if err != nil {
		return nil, err
	}
	c.SetLeaves(leaves)

	holidays, err := src.ActiveHolidays(ctx)
	if err != nil {
		return nil, err
	}
	c.SetHolidays(holidays)

	rules, err := src.RulesForUnit(ctx, schedule.Unit)
	if err != nil {
		return nil, err
	}
	c.SetRules(rules)

	return c, nil
}
