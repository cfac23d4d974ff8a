package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hupai/hupai/pkg/model"
)

type staffDateKey struct {
	staffID uuid.UUID
	date    string
}

// State 调度器状态索引
// 由调用方持有，用于在候选人筛查与假设场景中叠加试探性分配
// 追加分配不做去重，调用方自行保证不重复写入
type State struct {
	byStaff     map[uuid.UUID][]*model.Assignment
	byStaffDate map[staffDateKey][]*model.Assignment
	byShift     map[uuid.UUID][]*model.Assignment
	total       int
}

// NewState 创建空状态
func NewState() *State {
	return &State{
		byStaff:     make(map[uuid.UUID][]*model.Assignment),
		byStaffDate: make(map[staffDateKey][]*model.Assignment),
		byShift:     make(map[uuid.UUID][]*model.Assignment),
	}
}

// NewStateFromContext 从上下文快照的有效分配建立状态
func NewStateFromContext(c *Context) *State {
	st := NewState()
	for _, a := range c.Assignments {
		st.AddAssignment(a)
	}
	return st
}

// AddAssignment 追加一条分配到全部索引
func (s *State) AddAssignment(a *model.Assignment) {
	s.byStaff[a.StaffID] = append(s.byStaff[a.StaffID], a)
	key := staffDateKey{staffID: a.StaffID, date: a.Date}
	s.byStaffDate[key] = append(s.byStaffDate[key], a)
	s.byShift[a.ShiftID] = append(s.byShift[a.ShiftID], a)
	s.total++
}

// Count 返回状态中的分配总数
func (s *State) Count() int {
	return s.total
}

// StaffAssignments 返回某人员的全部分配
func (s *State) StaffAssignments(staffID uuid.UUID) []*model.Assignment {
	return s.byStaff[staffID]
}

// StaffAssignmentsOn 返回某人员指定日期的分配
func (s *State) StaffAssignmentsOn(staffID uuid.UUID, date string) []*model.Assignment {
	return s.byStaffDate[staffDateKey{staffID: staffID, date: date}]
}

// HasAssignmentOn 检查某人员在指定日期是否已有分配
func (s *State) HasAssignmentOn(staffID uuid.UUID, date string) bool {
	return len(s.StaffAssignmentsOn(staffID, date)) > 0
}

// ShiftAssignments 返回某班次的全部分配
func (s *State) ShiftAssignments(shiftID uuid.UUID) []*model.Assignment {
	return s.byShift[shiftID]
}

// OverlappingAssignments 返回某人员与给定时间窗重叠的分配
func (s *State) OverlappingAssignments(staffID uuid.UUID, window model.TimeRange) []*model.Assignment {
	var out []*model.Assignment
	for _, a := range s.byStaff[staffID] {
		if a.TimeRange().Overlaps(window) {
			out = append(out, a)
		}
	}
	return out
}

// ConsecutiveDaysAround 计算以指定日期为中心、不含该日的前后连续工作天数之和
// 用于判断"若在该日排班，连续工作天数将达到多少"
func (s *State) ConsecutiveDaysAround(staffID uuid.UUID, date string) int {
	day, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return 0
	}

	count := 0
	// 向前数
	for d := day.AddDate(0, 0, -1); s.HasAssignmentOn(staffID, d.Format(model.DateLayout)); d = d.AddDate(0, 0, -1) {
		count++
	}
	// 向后数
	for d := day.AddDate(0, 0, 1); s.HasAssignmentOn(staffID, d.Format(model.DateLayout)); d = d.AddDate(0, 0, 1) {
		count++
	}
	return count
}

// HoursInWeekOf 返回某人员在包含指定日期的自然周（周一起始）内的已排工时
func (s *State) HoursInWeekOf(staffID uuid.UUID, date string) float64 {
	day, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return 0
	}
	start := weekStart(day)
	end := start.AddDate(0, 0, 7)

	hours := 0.0
	for _, a := range s.byStaff[staffID] {
		d, err := time.Parse(model.DateLayout, a.Date)
		if err != nil {
			continue
		}
		if !d.Before(start) && d.Before(end) {
			hours += a.WorkingHours()
		}
	}
	return hours
}

// MinRestGapHours 返回若将某人员排入给定时间窗后，与其现有分配之间的最小间隔小时数
// 没有相邻分配时返回 (0, false)
func (s *State) MinRestGapHours(staffID uuid.UUID, window model.TimeRange) (float64, bool) {
	assignments := s.byStaff[staffID]
	if len(assignments) == 0 {
		return 0, false
	}

	sorted := make([]*model.Assignment, len(assignments))
	copy(sorted, assignments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	minGap := 0.0
	found := false
	for _, a := range sorted {
		r := a.TimeRange()
		var gap float64
		switch {
		case r.Overlaps(window):
			gap = 0
		case r.End.Before(window.Start) || r.End.Equal(window.Start):
			gap = window.Start.Sub(r.End).Hours()
		default:
			gap = r.Start.Sub(window.End).Hours()
		}
		if !found || gap < minGap {
			minGap = gap
			found = true
		}
	}
	return minGap, found
}

// weekStart 返回日期所在自然周的周一零点
func weekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	d := t.AddDate(0, 0, -(wd - 1))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}
