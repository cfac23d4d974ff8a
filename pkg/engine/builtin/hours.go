package builtin

import (
	"fmt"
	"sort"
	"time"

	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// WeeklyHoursRule 每周工时上限规则（硬规则）
// 自然周按周一起始；上限取规则参数，否则取人员声明偏好，未声明不检查
type WeeklyHoursRule struct {
	baseRule
	maxHoursPerWeek float64
}

// NewWeeklyHoursRule 创建每周工时上限规则
func NewWeeklyHoursRule(rec model.Rule) *WeeklyHoursRule {
	r := &WeeklyHoursRule{
		baseRule: newBase(rec, model.KindWeeklyHours, model.RuleHard, model.CategoryRest, "每周工时上限"),
	}
	if rec.Params.Rest != nil {
		r.maxHoursPerWeek = rec.Params.Rest.MaxHoursPerWeek
	}
	return r
}

// Evaluate 逐人员逐自然周汇总工时
func (r *WeeklyHoursRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	st := engine.NewStateFromContext(c)
	var violations []model.RuleViolation
	for _, staff := range c.Staff {
		cap := r.maxHoursPerWeek
		if cap <= 0 {
			cap = staff.MaxHoursPerWeek()
		}
		if cap <= 0 {
			continue
		}

		weeks := make(map[string]float64)
		for _, a := range st.StaffAssignments(staff.ID) {
			d, err := time.Parse(model.DateLayout, a.Date)
			if err != nil {
				continue
			}
			weeks[weekStartOf(d)] += a.WorkingHours()
		}

		starts := make([]string, 0, len(weeks))
		for w := range weeks {
			starts = append(starts, w)
		}
		sort.Strings(starts)
		for _, w := range starts {
			if weeks[w] > cap {
				staffID := staff.ID
				v := r.violation(fmt.Sprintf("%s 在 %s 起始周工时 %.1f 小时，超过上限 %.1f 小时",
					staff.Name, w, weeks[w], cap))
				v.StaffID = &staffID
				v.Date = w
				violations = append(violations, v)
			}
		}
	}
	return len(violations) == 0, 0, violations
}

// weekStartOf 返回日期所在自然周的周一日期串
func weekStartOf(t time.Time) string {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return t.AddDate(0, 0, -(wd - 1)).Format(model.DateLayout)
}

// OvertimeRatioRule 加班比例规则（软规则）
// 加班分配占全部有效分配的比例超过阈值时计惩罚
type OvertimeRatioRule struct {
	baseRule
	maxRatio float64
}

// DefaultMaxOvertimeRatio 默认加班比例阈值
const DefaultMaxOvertimeRatio = 0.30

// NewOvertimeRatioRule 创建加班比例规则
func NewOvertimeRatioRule(rec model.Rule) *OvertimeRatioRule {
	r := &OvertimeRatioRule{
		baseRule: newBase(rec, model.KindOvertimeRatio, model.RuleSoft, model.CategoryCost, "加班比例控制"),
		maxRatio: DefaultMaxOvertimeRatio,
	}
	if rec.Params.Cost != nil && rec.Params.Cost.MaxOvertimeRatio > 0 {
		r.maxRatio = rec.Params.Cost.MaxOvertimeRatio
	}
	return r
}

// Evaluate 计算整表加班比例
func (r *OvertimeRatioRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	total := len(c.Assignments)
	if total == 0 {
		return true, 0, nil
	}
	overtime := 0
	for _, a := range c.Assignments {
		if a.IsOvertime {
			overtime++
		}
	}
	ratio := float64(overtime) / float64(total)
	if ratio <= r.maxRatio {
		return true, 0, nil
	}

	penalty := r.softPenalty((ratio - r.maxRatio) * 10)
	v := r.violation(fmt.Sprintf("加班分配占比 %.0f%%，超过阈值 %.0f%%", ratio*100, r.maxRatio*100))
	v.PenaltyScore = penalty
	return false, penalty, []model.RuleViolation{v}
}
