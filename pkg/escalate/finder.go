// Package escalate 负责缺口补位候选人的查找与排序
//
// 替班按升级层级逐层尝试：机动护士、按日聘用、加班补位、外派机构。
// 层级顺序取科室策略，未配置时使用默认顺序
package escalate

import (
	"sort"

	"github.com/google/uuid"
	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/errors"
	"github.com/hupai/hupai/pkg/model"
)

// Result 候选人查找结果
type Result struct {
	// Candidates 按优先级排序的候选人列表
	Candidates []model.ReplacementCandidate `json:"candidates"`
	// StepsChecked 实际检查过的升级层级数
	StepsChecked int `json:"steps_checked"`
	// UsedPlaceholder 是否因无真实候选人而附加了外派机构占位
	UsedPlaceholder bool `json:"used_placeholder"`
}

// Finder 替班候选人查找器
type Finder struct{}

// NewFinder 创建查找器
func NewFinder() *Finder {
	return &Finder{}
}

// FindCandidates 查找某班次的替班候选人
// exclude 为被替换的人员（可为零值）；班次不存在返回 NOT_FOUND。
// 可用性只看当日是否已有其他分配；休息、工时等硬性资格由资格清单另行核查。
// 候选人排序：可用优先，其次升级层级、可靠度降序、胜任力降序
func (f *Finder) FindCandidates(c *engine.Context, shiftID uuid.UUID, exclude uuid.UUID) (*Result, error) {
	shift := c.Shift(shiftID)
	if shift == nil {
		return nil, errors.NotFound("班次", shiftID.String())
	}

	st := engine.NewStateFromContext(c)
	sequence := c.EscalationSequence()

	assigned := make(map[uuid.UUID]bool)
	for _, a := range c.AssignmentsForShift(shiftID) {
		assigned[a.StaffID] = true
	}

	candidates := make([]model.ReplacementCandidate, 0)
	for _, staff := range c.Staff {
		if !staff.IsActive() || staff.ID == exclude || assigned[staff.ID] {
			continue
		}
		tier := staff.EmploymentType.EscalationTier()

		// 可用即当日没有其他分配（含跨日时间窗重叠）
		available := !st.HasAssignmentOn(staff.ID, shift.Date) &&
			len(st.OverlappingAssignments(staff.ID, shift.TimeRange())) == 0
		weekHours := st.HoursInWeekOf(staff.ID, shift.Date) + shift.DurationHours
		cap := staff.MaxHoursPerWeek()
		if cap <= 0 {
			cap = model.DefaultWeeklyHourCap
		}

		candidates = append(candidates, model.ReplacementCandidate{
			StaffID:            staff.ID,
			Name:               staff.Name,
			Role:               staff.Role,
			CompetencyLevel:    staff.CompetencyLevel,
			ReliabilityRating:  staff.ReliabilityRating,
			Source:             tier,
			IsAvailable:        available,
			WouldCauseOvertime: weekHours > cap,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IsAvailable != b.IsAvailable {
			return a.IsAvailable
		}
		ta, tb := model.TierIndex(sequence, a.Source), model.TierIndex(sequence, b.Source)
		if ta != tb {
			return ta < tb
		}
		if a.ReliabilityRating != b.ReliabilityRating {
			return a.ReliabilityRating > b.ReliabilityRating
		}
		if a.CompetencyLevel != b.CompetencyLevel {
			return a.CompetencyLevel > b.CompetencyLevel
		}
		return a.Name < b.Name
	})

	result := &Result{
		Candidates:   candidates,
		StepsChecked: stepsChecked(candidates, sequence),
	}

	hasAvailable := false
	for _, cand := range candidates {
		if cand.IsAvailable {
			hasAvailable = true
			break
		}
	}
	if !hasAvailable {
		result.Candidates = append(result.Candidates, agencyPlaceholder())
		result.UsedPlaceholder = true
	}
	return result, nil
}

// stepsChecked 返回找到可用候选人前走过的层级数
// 没有可用候选人时等于完整序列长度
func stepsChecked(candidates []model.ReplacementCandidate, sequence []model.EscalationTier) int {
	best := len(sequence)
	found := false
	for _, c := range candidates {
		if !c.IsAvailable {
			continue
		}
		if idx := model.TierIndex(sequence, c.Source); idx < best {
			best = idx
			found = true
		}
	}
	if !found {
		return len(sequence)
	}
	return best + 1
}

// agencyPlaceholder 外派机构兜底占位候选人
// 表示需要联系外派机构补位，不对应真实人员
func agencyPlaceholder() model.ReplacementCandidate {
	return model.ReplacementCandidate{
		Name:          "外派机构补位",
		Source:        model.TierAgency,
		IsAvailable:   true,
		IsPlaceholder: true,
	}
}
