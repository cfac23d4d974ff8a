package stats

import (
	"math"

	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/model"
)

// WeekendCounts 返回有排班人员各自的周末班数
// 只统计至少有一条有效分配的人员，没有周末班的计 0
func WeekendCounts(c *engine.Context) []float64 {
	st := engine.NewStateFromContext(c)
	counts := make([]float64, 0, len(c.Staff))
	for _, staff := range c.Staff {
		assignments := st.StaffAssignments(staff.ID)
		if len(assignments) == 0 {
			continue
		}
		n := 0.0
		for _, a := range assignments {
			if model.IsWeekendDate(a.Date) {
				n++
			}
		}
		counts = append(counts, n)
	}
	return counts
}

// PopulationStdDev 总体标准差
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
