package builtin

import (
	"fmt"
	"math"

	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// DefaultTargetDeviation 公平性规则默认允许的偏差幅度
const DefaultTargetDeviation = 1.0

// WeekendFairnessRule 周末分配公平规则（软规则）
// 参与排班的人员（周末豁免者除外）周末班数偏离平均值超过允许幅度时计惩罚
type WeekendFairnessRule struct {
	baseRule
	targetDeviation float64
}

// NewWeekendFairnessRule 创建周末分配公平规则
func NewWeekendFairnessRule(rec model.Rule) *WeekendFairnessRule {
	r := &WeekendFairnessRule{
		baseRule:        newBase(rec, model.KindWeekendFairness, model.RuleSoft, model.CategoryFairness, "周末分配公平"),
		targetDeviation: DefaultTargetDeviation,
	}
	if rec.Params.Fairness != nil && rec.Params.Fairness.TargetDeviation > 0 {
		r.targetDeviation = rec.Params.Fairness.TargetDeviation
	}
	return r
}

// Evaluate 比较各人员周末班数与平均值
func (r *WeekendFairnessRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	st := engine.NewStateFromContext(c)

	type entry struct {
		staff *model.StaffMember
		count int
	}
	var pool []entry
	total := 0
	for _, staff := range c.Staff {
		assignments := st.StaffAssignments(staff.ID)
		if len(assignments) == 0 || staff.WeekendExempt {
			continue
		}
		count := 0
		for _, a := range assignments {
			if model.IsWeekendDate(a.Date) {
				count++
			}
		}
		pool = append(pool, entry{staff: staff, count: count})
		total += count
	}
	if len(pool) == 0 {
		return true, 0, nil
	}

	mean := float64(total) / float64(len(pool))
	var violations []model.RuleViolation
	totalPenalty := 0.0
	for _, e := range pool {
		dev := math.Abs(float64(e.count) - mean)
		if dev <= r.targetDeviation {
			continue
		}
		staffID := e.staff.ID
		penalty := r.softPenalty(dev - r.targetDeviation)
		v := r.violation(fmt.Sprintf("%s 周末班 %d 次，偏离平均值 %.1f 超过允许幅度 %.1f",
			e.staff.Name, e.count, dev, r.targetDeviation))
		v.StaffID = &staffID
		v.PenaltyScore = penalty
		violations = append(violations, v)
		totalPenalty += penalty
	}
	return len(violations) == 0, totalPenalty, violations
}

// HolidayFairnessRule 节假日分配公平规则（软规则）
// 同一逻辑节日组同一年内只计一次节日班记分，
// 各人员节日记分偏离平均值超过允许幅度时计惩罚
type HolidayFairnessRule struct {
	baseRule
	targetDeviation float64
}

// NewHolidayFairnessRule 创建节假日分配公平规则
func NewHolidayFairnessRule(rec model.Rule) *HolidayFairnessRule {
	r := &HolidayFairnessRule{
		baseRule:        newBase(rec, model.KindHolidayFairness, model.RuleSoft, model.CategoryFairness, "节假日分配公平"),
		targetDeviation: DefaultTargetDeviation,
	}
	if rec.Params.Fairness != nil && rec.Params.Fairness.TargetDeviation > 0 {
		r.targetDeviation = rec.Params.Fairness.TargetDeviation
	}
	return r
}

// Evaluate 按逻辑节日组统计各人员的节日记分并比较
func (r *HolidayFairnessRule) Evaluate(c *engine.Context) (bool, float64, []model.RuleViolation) {
	if len(c.Holidays) == 0 {
		return true, 0, nil
	}
	st := engine.NewStateFromContext(c)

	type groupYear struct {
		group string
		year  int
	}
	type entry struct {
		staff *model.StaffMember
		count int
	}
	var pool []entry
	total := 0
	for _, staff := range c.Staff {
		assignments := st.StaffAssignments(staff.ID)
		if len(assignments) == 0 {
			continue
		}
		credited := make(map[groupYear]bool)
		for _, a := range assignments {
			h := c.HolidayOn(a.Date)
			if h == nil {
				continue
			}
			credited[groupYear{group: h.LogicalGroup, year: h.Year()}] = true
		}
		pool = append(pool, entry{staff: staff, count: len(credited)})
		total += len(credited)
	}
	if len(pool) == 0 || total == 0 {
		return true, 0, nil
	}

	mean := float64(total) / float64(len(pool))
	var violations []model.RuleViolation
	totalPenalty := 0.0
	for _, e := range pool {
		dev := math.Abs(float64(e.count) - mean)
		if dev <= r.targetDeviation {
			continue
		}
		staffID := e.staff.ID
		penalty := r.softPenalty(dev - r.targetDeviation)
		v := r.violation(fmt.Sprintf("%s 节日班记分 %d，偏离平均值 %.1f 超过允许幅度 %.1f",
			e.staff.Name, e.count, dev, r.targetDeviation))
		v.StaffID = &staffID
		v.PenaltyScore = penalty
		violations = append(violations, v)
		totalPenalty += penalty
	}
	return len(violations) == 0, totalPenalty, violations
}
