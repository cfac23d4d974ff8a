package escalate

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/errors"
	"github.com/hupai/hupai/pkg/model"
)

func newShift(date string) *model.ShiftInstance {
	day, _ := time.Parse(model.DateLayout, date)
	start := day.Add(7 * time.Hour)
	return &model.ShiftInstance{
		BaseModel:            model.NewBaseModel(),
		Unit:                 "ICU",
		Date:                 date,
		ShiftType:            model.ShiftDay,
		StartTime:            start,
		EndTime:              start.Add(8 * time.Hour),
		DurationHours:        8,
		DefaultRequiredStaff: 2,
	}
}

func newStaff(name string, employment model.EmploymentType, reliability int) *model.StaffMember {
	return &model.StaffMember{
		BaseModel:         model.NewBaseModel(),
		Name:              name,
		Active:            true,
		Role:              model.RoleRN,
		EmploymentType:    employment,
		CompetencyLevel:   3,
		ReliabilityRating: reliability,
		HomeUnit:          "ICU",
	}
}

func newContext(shifts []*model.ShiftInstance, staff []*model.StaffMember, assignments []*model.Assignment) *engine.Context {
	schedule := &model.Schedule{
		BaseModel: model.NewBaseModel(),
		Unit:      "ICU",
		Name:      "补位测试排班表",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-28",
		Status:    "published",
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

func assignmentFor(shift *model.ShiftInstance, staff *model.StaffMember) *model.Assignment {
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

func TestFindCandidates_ShiftNotFound(t *testing.T) {
	c := newContext(nil, nil, nil)
	_, err := NewFinder().FindCandidates(c, uuid.New(), uuid.Nil)
	if err == nil {
		t.Fatal("不存在的班次应返回错误")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("错误码 = %v, 期望 NOT_FOUND", errors.GetCode(err))
	}
}

func TestFindCandidates_TierOrdering(t *testing.T) {
	shift := newShift("2026-03-02")
	floater := newStaff("机动护士", model.EmploymentFloat, 3)
	perDiem := newStaff("按日护士", model.EmploymentPerDiem, 5)
	fullTime := newStaff("全职护士", model.EmploymentFullTime, 5)
	c := newContext([]*model.ShiftInstance{shift}, []*model.StaffMember{fullTime, perDiem, floater}, nil)
	// 按日聘用人员已申报当日可用
	c.SetPRNAvailability([]*model.PRNAvailability{{StaffID: perDiem.ID, Dates: []string{"2026-03-02"}}})

	result, err := NewFinder().FindCandidates(c, shift.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("FindCandidates() 错误: %v", err)
	}

	if len(result.Candidates) != 3 {
		t.Fatalf("候选人数 = %d, 期望 3", len(result.Candidates))
	}
	wantOrder := []string{"机动护士", "按日护士", "全职护士"}
	for i, want := range wantOrder {
		if result.Candidates[i].Name != want {
			t.Errorf("第 %d 位候选人 = %s, 期望 %s（层级顺序：机动→按日→加班）", i+1, result.Candidates[i].Name, want)
		}
	}
	if result.UsedPlaceholder {
		t.Error("存在真实可用候选人时不应附加占位")
	}
	// 首层即找到可用候选人
	if result.StepsChecked != 1 {
		t.Errorf("StepsChecked = %d, 期望 1", result.StepsChecked)
	}
}

func TestFindCandidates_PolicySequence(t *testing.T) {
	shift := newShift("2026-03-02")
	floater := newStaff("机动护士", model.EmploymentFloat, 3)
	fullTime := newStaff("全职护士", model.EmploymentFullTime, 3)
	c := newContext([]*model.ShiftInstance{shift}, []*model.StaffMember{floater, fullTime}, nil)
	// 策略将加班补位置于机动之前
	c.SetPolicy(&model.UnitPolicy{
		BaseModel:          model.NewBaseModel(),
		Unit:               "ICU",
		EscalationSequence: []model.EscalationTier{model.TierOvertime, model.TierFloat},
	})

	result, err := NewFinder().FindCandidates(c, shift.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("FindCandidates() 错误: %v", err)
	}
	if result.Candidates[0].Name != "全职护士" {
		t.Errorf("首位候选人 = %s, 期望策略顺序下的全职护士", result.Candidates[0].Name)
	}
}

func TestFindCandidates_ExcludesAssignedAndReplaced(t *testing.T) {
	shift := newShift("2026-03-02")
	sick := newStaff("请病假护士", model.EmploymentFullTime, 4)
	onShift := newStaff("在班护士", model.EmploymentFullTime, 4)
	spare := newStaff("待命护士", model.EmploymentFullTime, 4)
	c := newContext(
		[]*model.ShiftInstance{shift},
		[]*model.StaffMember{sick, onShift, spare},
		[]*model.Assignment{assignmentFor(shift, onShift)},
	)

	result, err := NewFinder().FindCandidates(c, shift.ID, sick.ID)
	if err != nil {
		t.Fatalf("FindCandidates() 错误: %v", err)
	}
	if len(result.Candidates) != 1 || result.Candidates[0].Name != "待命护士" {
		t.Errorf("候选人 = %v, 期望只剩待命护士（被替换与在班人员剔除）", result.Candidates)
	}
}

func TestFindCandidates_Overtime(t *testing.T) {
	gap := newShift("2026-03-06")
	staff := newStaff("满负荷护士", model.EmploymentFullTime, 4)

	// 当周已排 40 小时（周一至周五）
	shifts := []*model.ShiftInstance{gap}
	var assignments []*model.Assignment
	for _, date := range []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-07"} {
		s := newShift(date)
		shifts = append(shifts, s)
		assignments = append(assignments, assignmentFor(s, staff))
	}
	c := newContext(shifts, []*model.StaffMember{staff}, assignments)

	result, err := NewFinder().FindCandidates(c, gap.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("FindCandidates() 错误: %v", err)
	}
	if len(result.Candidates) < 1 {
		t.Fatal("候选人列表不应为空")
	}
	if !result.Candidates[0].WouldCauseOvertime {
		t.Error("排入后当周 48 小时超过默认上限 40, 应标记将导致加班")
	}
}

func TestFindCandidates_PlaceholderWhenNoneAvailable(t *testing.T) {
	shift := newShift("2026-03-02")
	// 同日另一个班次, 唯一候选人已被其占用
	other := newShift("2026-03-02")
	busy := newStaff("占用护士", model.EmploymentFullTime, 4)
	c := newContext(
		[]*model.ShiftInstance{shift, other},
		[]*model.StaffMember{busy},
		[]*model.Assignment{assignmentFor(other, busy)},
	)

	result, err := NewFinder().FindCandidates(c, shift.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("FindCandidates() 错误: %v", err)
	}

	if !result.UsedPlaceholder {
		t.Fatal("无真实可用候选人时应附加外派机构占位")
	}
	last := result.Candidates[len(result.Candidates)-1]
	if !last.IsPlaceholder || last.Source != model.TierAgency || !last.IsAvailable {
		t.Errorf("占位候选人 = %+v, 期望外派机构占位且标记可用", last)
	}
	// 走完整个默认升级序列
	if result.StepsChecked != 4 {
		t.Errorf("StepsChecked = %d, 期望 4", result.StepsChecked)
	}
}

// 可用性只看当日占用, 不叠加资格硬性检查
func TestFindCandidates_AvailabilityIgnoresHardRules(t *testing.T) {
	shift := newShift("2026-03-02")
	junior := newStaff("低胜任力护士", model.EmploymentFullTime, 4)
	junior.CompetencyLevel = 1
	c := newContext([]*model.ShiftInstance{shift}, []*model.StaffMember{junior}, nil)

	result, err := NewFinder().FindCandidates(c, shift.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("FindCandidates() 错误: %v", err)
	}
	if len(result.Candidates) != 1 {
		t.Fatalf("候选人数 = %d, 期望 1", len(result.Candidates))
	}
	if !result.Candidates[0].IsAvailable {
		t.Error("当日无任何分配的人员应标记可用")
	}
	if result.UsedPlaceholder {
		t.Error("存在可用候选人时不应使用占位")
	}
}

// 夜班跨日的时间窗重叠同样视为占用
func TestFindCandidates_OverlapBlocksAvailability(t *testing.T) {
	day, _ := time.Parse(model.DateLayout, "2026-03-02")
	night := &model.ShiftInstance{
		BaseModel:            model.NewBaseModel(),
		Unit:                 "ICU",
		Date:                 "2026-03-02",
		ShiftType:            model.ShiftNight,
		StartTime:            day.Add(23 * time.Hour),
		EndTime:              day.Add(31 * time.Hour),
		DurationHours:        8,
		DefaultRequiredStaff: 1,
	}
	nextDay := newShift("2026-03-03") // 07:00 开班, 与夜班尾段首尾相接
	early := &model.ShiftInstance{
		BaseModel:            model.NewBaseModel(),
		Unit:                 "ICU",
		Date:                 "2026-03-03",
		ShiftType:            model.ShiftDay,
		StartTime:            day.Add(30 * time.Hour), // 06:00, 与夜班重叠一小时
		EndTime:              day.Add(38 * time.Hour),
		DurationHours:        8,
		DefaultRequiredStaff: 1,
	}
	staff := newStaff("夜班护士", model.EmploymentFullTime, 4)
	c := newContext(
		[]*model.ShiftInstance{night, nextDay, early},
		[]*model.StaffMember{staff},
		[]*model.Assignment{assignmentFor(night, staff)},
	)

	result, err := NewFinder().FindCandidates(c, early.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("FindCandidates() 错误: %v", err)
	}
	if result.Candidates[0].IsAvailable {
		t.Error("与现有夜班时间重叠的班次不应视为可用")
	}

	result, err = NewFinder().FindCandidates(c, nextDay.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("FindCandidates() 错误: %v", err)
	}
	if !result.Candidates[0].IsAvailable {
		t.Error("夜班次日无重叠且当日无分配, 应视为可用")
	}
}

func TestFindCandidates_ReliabilityTieBreak(t *testing.T) {
	shift := newShift("2026-03-02")
	steady := newStaff("高可靠护士", model.EmploymentFullTime, 5)
	shaky := newStaff("低可靠护士", model.EmploymentFullTime, 2)
	c := newContext([]*model.ShiftInstance{shift}, []*model.StaffMember{shaky, steady}, nil)

	result, err := NewFinder().FindCandidates(c, shift.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("FindCandidates() 错误: %v", err)
	}
	if result.Candidates[0].Name != "高可靠护士" {
		t.Errorf("同层级应按可靠度降序, 首位 = %s", result.Candidates[0].Name)
	}
}
