package handler

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hupai/hupai/internal/metrics"
	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/engine/builtin"
	"github.com/hupai/hupai/pkg/errors"
	"github.com/hupai/hupai/pkg/escalate"
	"github.com/hupai/hupai/pkg/logger"
	"github.com/hupai/hupai/pkg/model"
	"github.com/hupai/hupai/pkg/stats"
	"github.com/hupai/hupai/pkg/validator"
)

// EngineHandler 评估引擎处理器
type EngineHandler struct {
	src       engine.SnapshotSource
	finder    *escalate.Finder
	engineLog *logger.EngineLogger
}

// NewEngineHandler 创建评估引擎处理器
func NewEngineHandler(src engine.SnapshotSource) *EngineHandler {
	return &EngineHandler{
		src:       src,
		finder:    escalate.NewFinder(),
		engineLog: logger.NewEngineLogger(),
	}
}

// buildContext 构建并校验快照
func (h *EngineHandler) buildContext(r *http.Request, scheduleID uuid.UUID) (*engine.Context, error) {
	c, err := engine.BuildContext(r.Context(), h.src, scheduleID)
	if err != nil {
		return nil, err
	}
	if err := validator.CheckSnapshot(c); err != nil {
		return nil, err
	}
	return c, nil
}

// EvaluateResponse 排班评估响应
type EvaluateResponse struct {
	ScheduleID uuid.UUID               `json:"schedule_id"`
	Unit       string                  `json:"unit"`
	Result     *model.EvaluationResult `json:"result"`
	Duration   string                  `json:"duration"`
}

// Evaluate 对排班表执行全部已启用规则
// POST /api/v1/schedules/{id}/evaluate
func (h *EngineHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, errors.InvalidInput("id", "排班表ID必须是UUID"))
		return
	}

	start := time.Now()
	c, err := h.buildContext(r, scheduleID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.engineLog.StartEvaluation(scheduleID.String(), len(c.Assignments), len(c.Shifts))
	result := builtin.EvaluateSchedule(c)
	duration := time.Since(start)
	h.engineLog.EvaluationComplete(scheduleID.String(), duration, result.IsValid,
		len(result.HardViolations), len(result.SoftViolations))

	reg := metrics.GetRegistry()
	if counter := reg.GetCounter("hupai_schedule_evaluations_total"); counter != nil {
		counter.Inc(c.Unit, strconv.FormatBool(result.IsValid))
	}
	if hist := reg.GetHistogram("hupai_schedule_evaluation_duration_seconds"); hist != nil {
		hist.Observe(duration.Seconds(), c.Unit)
	}
	if g := reg.GetGauge("hupai_hard_violations"); g != nil {
		g.Set(float64(len(result.HardViolations)), c.Unit)
	}
	if g := reg.GetGauge("hupai_soft_penalty"); g != nil {
		g.Set(result.TotalPenalty, c.Unit)
	}

	writeJSON(w, http.StatusOK, EvaluateResponse{
		ScheduleID: scheduleID,
		Unit:       c.Unit,
		Result:     result,
		Duration:   duration.String(),
	})
}

// ScoreResponse 排班评分响应
type ScoreResponse struct {
	ScheduleID uuid.UUID             `json:"schedule_id"`
	Unit       string                `json:"unit"`
	Score      *model.ScoreBreakdown `json:"score"`
	Duration   string                `json:"duration"`
}

// Score 计算排班表质量评分
// POST /api/v1/schedules/{id}/score
func (h *EngineHandler) Score(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, errors.InvalidInput("id", "排班表ID必须是UUID"))
		return
	}

	start := time.Now()
	c, err := h.buildContext(r, scheduleID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	score := stats.ScoreSchedule(c)
	duration := time.Since(start)
	h.engineLog.ScoreComplete(scheduleID.String(), duration, score.Overall)

	if g := metrics.GetRegistry().GetGauge("hupai_schedule_score"); g != nil {
		g.Set(score.Coverage, c.Unit, "coverage")
		g.Set(score.Fairness, c.Unit, "fairness")
		g.Set(score.Cost, c.Unit, "cost")
		g.Set(score.Preference, c.Unit, "preference")
		g.Set(score.SkillMix, c.Unit, "skill_mix")
		g.Set(score.Overall, c.Unit, "overall")
	}

	writeJSON(w, http.StatusOK, ScoreResponse{
		ScheduleID: scheduleID,
		Unit:       c.Unit,
		Score:      score,
		Duration:   duration.String(),
	})
}

// EligibleStaffResponse 可排人员响应
type EligibleStaffResponse struct {
	ShiftID uuid.UUID                  `json:"shift_id"`
	Date    string                     `json:"date"`
	Staff   []model.EligibleStaffEntry `json:"staff"`
}

// EligibleStaff 列出某班次的可排人员及不可排原因
// GET /api/v1/shifts/{id}/eligible-staff?schedule_id=...
func (h *EngineHandler) EligibleStaff(w http.ResponseWriter, r *http.Request) {
	shiftID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, errors.InvalidInput("id", "班次ID必须是UUID"))
		return
	}
	scheduleID, err := uuid.Parse(r.URL.Query().Get("schedule_id"))
	if err != nil {
		writeError(w, r, errors.InvalidInput("schedule_id", "排班表ID必须是UUID"))
		return
	}

	c, err := h.buildContext(r, scheduleID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	shift := c.Shift(shiftID)
	if shift == nil {
		writeError(w, r, errors.NotFound("班次", shiftID.String()))
		return
	}

	st := engine.NewStateFromContext(c)
	assigned := make(map[uuid.UUID]bool)
	for _, a := range c.AssignmentsForShift(shiftID) {
		assigned[a.StaffID] = true
	}

	entries := make([]model.EligibleStaffEntry, 0, len(c.Staff))
	for _, staff := range c.Staff {
		// 已在班与停用人员不进入清单
		if !staff.IsActive() || assigned[staff.ID] {
			continue
		}
		reasons := engine.RejectionReasons(staff, shift, st, c)
		entries = append(entries, model.EligibleStaffEntry{
			StaffID:           staff.ID,
			Name:              staff.Name,
			Role:              staff.Role,
			CompetencyLevel:   staff.CompetencyLevel,
			ReliabilityRating: staff.ReliabilityRating,
			ChargeQualified:   staff.ChargeQualified,
			Eligible:          len(reasons) == 0,
			IneligibleReasons: reasons,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Eligible != b.Eligible {
			return a.Eligible
		}
		if a.ChargeQualified != b.ChargeQualified {
			return a.ChargeQualified
		}
		if a.ReliabilityRating != b.ReliabilityRating {
			return a.ReliabilityRating > b.ReliabilityRating
		}
		if a.CompetencyLevel != b.CompetencyLevel {
			return a.CompetencyLevel > b.CompetencyLevel
		}
		return a.Name < b.Name
	})

	writeJSON(w, http.StatusOK, EligibleStaffResponse{
		ShiftID: shiftID,
		Date:    shift.Date,
		Staff:   entries,
	})
}

// EscalationResponse 替班候选响应
// 无真实可用候选人时 Status 标记 NO_CANDIDATES，提示需联系外派机构
type EscalationResponse struct {
	ShiftID uuid.UUID        `json:"shift_id"`
	Date    string           `json:"date"`
	Status  string           `json:"status"`
	Result  *escalate.Result `json:"result"`
}

// EscalationOptions 查找某班次的替班候选人
// GET /api/v1/shifts/{id}/escalation-options?schedule_id=...&exclude=...
func (h *EngineHandler) EscalationOptions(w http.ResponseWriter, r *http.Request) {
	shiftID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, errors.InvalidInput("id", "班次ID必须是UUID"))
		return
	}
	scheduleID, err := uuid.Parse(r.URL.Query().Get("schedule_id"))
	if err != nil {
		writeError(w, r, errors.InvalidInput("schedule_id", "排班表ID必须是UUID"))
		return
	}
	exclude := uuid.Nil
	if raw := r.URL.Query().Get("exclude"); raw != "" {
		exclude, err = uuid.Parse(raw)
		if err != nil {
			writeError(w, r, errors.InvalidInput("exclude", "被替换人员ID必须是UUID"))
			return
		}
	}

	c, err := h.buildContext(r, scheduleID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.finder.FindCandidates(c, shiftID, exclude)
	if err != nil {
		writeError(w, r, err)
		return
	}

	reg := metrics.GetRegistry()
	if counter := reg.GetCounter("hupai_escalation_searches_total"); counter != nil {
		counter.Inc(c.Unit)
	}
	status := "OK"
	if result.UsedPlaceholder {
		noCand := errors.NoCandidates(shiftID.String())
		status = string(noCand.Code)
		logger.Warn().
			Str("shift_id", shiftID.String()).
			Str("unit", c.Unit).
			Msg(noCand.Message)
		if counter := reg.GetCounter("hupai_escalation_placeholder_total"); counter != nil {
			counter.Inc(c.Unit)
		}
	}
	if hist := reg.GetHistogram("hupai_escalation_steps_checked"); hist != nil {
		hist.Observe(float64(result.StepsChecked), c.Unit)
	}

	shift := c.Shift(shiftID)
	writeJSON(w, http.StatusOK, EscalationResponse{
		ShiftID: shiftID,
		Date:    shift.Date,
		Status:  status,
		Result:  result,
	})
}
