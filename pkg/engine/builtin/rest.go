package builtin

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// staffAssignmentsSorted 返回某人员按开始时间排序的有效分配
func staffAssignmentsSorted(st *engine.State, staffID uuid.UUID) []*model.Assignment {
	assignments := st.StaffAssignments(staffID)
	sorted := make([]*model.Assignment, len(assignments))
	copy(sorted, assignments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})
	return sorted
}

// MinRestRule 班次间最小休息规则（硬规则）
// 同一人员相邻两个班次之间的间隔不得低于最小休息小时数
type MinRestRule struct {
	baseRule
	minRestHours float64
}

// NewMinRestRule 创建班次间最小休息规则
// 参数未指定时使用科室策略或引擎默认值
func NewMinRestRule(rec model.Rule) *MinRestRule {
	r := &MinRestRule{
		baseRule: newBase(rec, model.KindMinRest, model.RuleHard, model.CategoryRest, "班次间最小休息"),
	}
	if rec.Params.Rest != nil {
		r.minRestHours = rec.Params.Rest.MinRestHours
	}
	return r
}

// Evaluate 逐人员检查相邻班次间隔
func (r *MinRestRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	minRest := r.minRestHours
	if minRest <= 0 {
		minRest = c.MinRestHours()
	}

	st := engine.NewStateFromContext(c)
	var violations []model.RuleViolation
	for _, staff := range c.Staff {
		sorted := staffAssignmentsSorted(st, staff.ID)
		for i := 1; i < len(sorted); i++ {
			prev, cur := sorted[i-1], sorted[i]
			gap := cur.StartTime.Sub(prev.EndTime).Hours()
			if gap >= 0 && gap < minRest {
				staffID := staff.ID
				v := r.violation(fmt.Sprintf("%s 在 %s 与 %s 班次间仅休息 %.1f 小时，低于 %.1f 小时",
					staff.Name, prev.Date, cur.Date, gap, minRest))
				v.ShiftID = cur.ShiftID
				v.StaffID = &staffID
				v.Date = cur.Date
				violations = append(violations, v)
			}
		}
	}
	return len(violations) == 0, 0, violations
}

// MaxConsecutiveDaysRule 最大连续工作天数规则（硬规则）
type MaxConsecutiveDaysRule struct {
	baseRule
	maxDays int
}

// NewMaxConsecutiveDaysRule 创建最大连续工作天数规则
func NewMaxConsecutiveDaysRule(rec model.Rule) *MaxConsecutiveDaysRule {
	r := &MaxConsecutiveDaysRule{
		baseRule: newBase(rec, model.KindMaxConsecutiveDays, model.RuleHard, model.CategoryRest, "最大连续工作天数"),
	}
	if rec.Params.Rest != nil {
		r.maxDays = rec.Params.Rest.MaxConsecutiveDays
	}
	return r
}

// Evaluate 逐人员检查连续工作天数
// 上限取规则参数，否则取人员声明偏好，最后回落科室默认
func (r *MaxConsecutiveDaysRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	st := engine.NewStateFromContext(c)
	var violations []model.RuleViolation
	for _, staff := range c.Staff {
		limit := r.maxDays
		if limit <= 0 {
			limit = staff.MaxConsecutiveDays()
		}
		if limit <= 0 {
			limit = c.MaxConsecutiveDaysDefault()
		}

		for _, run := range consecutiveRuns(st.StaffAssignments(staff.ID)) {
			if run.length > limit {
				staffID := staff.ID
				v := r.violation(fmt.Sprintf("%s 自 %s 起连续工作 %d 天，超过上限 %d 天",
					staff.Name, run.start, run.length, limit))
				v.StaffID = &staffID
				v.Date = run.start
				violations = append(violations, v)
			}
		}
	}
	return len(violations) == 0, 0, violations
}

type dateRun struct {
	start  string
	length int
}

// consecutiveRuns 将分配日期归并为连续日期段
func consecutiveRuns(assignments []*model.Assignment) []dateRun {
	seen := make(map[string]bool, len(assignments))
	dates := make([]time.Time, 0, len(assignments))
	for _, a := range assignments {
		if seen[a.Date] {
			continue
		}
		seen[a.Date] = true
		d, err := time.Parse(model.DateLayout, a.Date)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var runs []dateRun
	for i := 0; i < len(dates); {
		j := i + 1
		for j < len(dates) && dates[j].Sub(dates[j-1]) == 24*time.Hour {
			j++
		}
		runs = append(runs, dateRun{start: dates[i].Format(model.DateLayout), length: j - i})
		i = j
	}
	return runs
}

// DoubleBookingRule 重复排班规则（硬规则）
// 同一人员同一日期不得出现多条有效分配
type DoubleBookingRule struct {
	baseRule
}

// NewDoubleBookingRule 创建重复排班规则
func NewDoubleBookingRule(rec model.Rule) *DoubleBookingRule {
	return &DoubleBookingRule{
		baseRule: newBase(rec, model.KindDoubleBooking, model.RuleHard, model.CategoryStaffing, "重复排班"),
	}
}

// Evaluate 逐人员逐日期检查重复分配
func (r *DoubleBookingRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	st := engine.NewStateFromContext(c)
	var violations []model.RuleViolation
	for _, staff := range c.Staff {
		byDate := make(map[string]int)
		for _, a := range st.StaffAssignments(staff.ID) {
			byDate[a.Date]++
		}
		dates := make([]string, 0, len(byDate))
		for d, n := range byDate {
			if n > 1 {
				dates = append(dates, d)
			}
		}
		sort.Strings(dates)
		for _, d := range dates {
			staffID := staff.ID
			v := r.violation(fmt.Sprintf("%s 在 %s 有 %d 条有效分配", staff.Name, d, byDate[d]))
			v.StaffID = &staffID
			v.Date = d
			violations = append(violations, v)
		}
	}
	return len(violations) == 0, 0, violations
}
