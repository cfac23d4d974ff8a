package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hupai/hupai/pkg/model"
	"github.com/lib/pq"
)

// StaffForUnit 查询可在某科室工作的全部人员
// 含本科室归属与跨科培训人员；停用人员一并返回，由引擎判定资格
func (r *SnapshotRepository) StaffForUnit(ctx context.Context, unit string) ([]*model.StaffMember, error) {
	query := `
		SELECT id, name, code, phone, email, active, role, employment_type, fte,
		       competency_level, charge_qualified, reliability_rating,
		       home_unit, cross_trained_units, weekend_exempt, flex_hours_ytd,
		       preferences, created_at, updated_at
		FROM staff_members
		WHERE home_unit = $1 OR $1 = ANY(cross_trained_units)
		ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, unit)
	if err != nil {
		return nil, fmt.Errorf("查询人员名册失败: %w", err)
	}
	defer rows.Close()

	var staff []*model.StaffMember
	for rows.Next() {
		s := &model.StaffMember{}
		var crossTrained pq.StringArray
		var prefsJSON []byte
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Code, &s.Phone, &s.Email, &s.Active,
			&s.Role, &s.EmploymentType, &s.FTE,
			&s.CompetencyLevel, &s.ChargeQualified, &s.ReliabilityRating,
			&s.HomeUnit, &crossTrained, &s.WeekendExempt, &s.FlexHoursYTD,
			&prefsJSON, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描人员记录失败: %w", err)
		}
		s.CrossTrainedUnits = []string(crossTrained)
		if len(prefsJSON) > 0 {
			prefs := &model.StaffPreferences{}
			if err := json.Unmarshal(prefsJSON, prefs); err != nil {
				return nil, fmt.Errorf("解析人员偏好失败: %w", err)
			}
			s.Preferences = prefs
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// PRNAvailabilityForSchedule 查询排班表关联的按日聘用可用申报
func (r *SnapshotRepository) PRNAvailabilityForSchedule(ctx context.Context, scheduleID uuid.UUID) ([]*model.PRNAvailability, error) {
	query := `
		SELECT staff_id, schedule_id, dates
		FROM prn_availability
		WHERE schedule_id = $1
		ORDER BY staff_id`

	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("查询按日聘用申报失败: %w", err)
	}
	defer rows.Close()

	var entries []*model.PRNAvailability
	for rows.Next() {
		e := &model.PRNAvailability{}
		var dates pq.StringArray
		if err := rows.Scan(&e.StaffID, &e.ScheduleID, &dates); err != nil {
			return nil, fmt.Errorf("扫描按日聘用申报失败: %w", err)
		}
		e.Dates = []string(dates)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LeavesOverlapping 查询与日期区间有交叠的休假记录（含各审批状态）
func (r *SnapshotRepository) LeavesOverlapping(ctx context.Context, startDate, endDate string) ([]*model.LeaveRecord, error) {
	query := `
		SELECT id, staff_id, type, start_date, end_date, status, reason,
		       created_at, updated_at
		FROM leave_records
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date, staff_id`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("查询休假记录失败: %w", err)
	}
	defer rows.Close()

	var leaves []*model.LeaveRecord
	for rows.Next() {
		l := &model.LeaveRecord{}
		if err := rows.Scan(
			&l.ID, &l.StaffID, &l.Type, &l.StartDate, &l.EndDate,
			&l.Status, &l.Reason, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描休假记录失败: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

// PolicyForUnit 查询科室策略，未配置返回 (nil, nil)
func (r *SnapshotRepository) PolicyForUnit(ctx context.Context, unit string) (*model.UnitPolicy, error) {
	query := `
		SELECT id, unit, weekend_rule_type, weekend_required_per_period,
		       max_consecutive_weekends, period_weeks, holiday_shifts_required,
		       acuity_extra_staff_threshold, acuity_extra_staff,
		       low_census_reduction_order, overtime_approval_threshold,
		       on_call_max_per_period, min_rest_hours, max_consecutive_days,
		       min_competency_unsupervised, escalation_sequence, census_bands,
		       created_at, updated_at
		FROM unit_policies
		WHERE unit = $1`

	p := &model.UnitPolicy{}
	var reductionOrder, escalationSeq pq.StringArray
	var bandsJSON []byte
	err := r.db.QueryRowContext(ctx, query, unit).Scan(
		&p.ID, &p.Unit, &p.WeekendRuleType, &p.WeekendRequiredPerPeriod,
		&p.MaxConsecutiveWeekends, &p.PeriodWeeks, &p.HolidayShiftsRequired,
		&p.AcuityExtraStaffThreshold, &p.AcuityExtraStaff,
		&reductionOrder, &p.OvertimeApprovalThreshold,
		&p.OnCallMaxPerPeriod, &p.MinRestHours, &p.MaxConsecutiveDays,
		&p.MinCompetencyUnsupervised, &escalationSeq, &bandsJSON,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询科室策略失败: %w", err)
	}

	for _, v := range reductionOrder {
		p.LowCensusReductionOrder = append(p.LowCensusReductionOrder, model.EmploymentType(v))
	}
	for _, v := range escalationSeq {
		p.EscalationSequence = append(p.EscalationSequence, model.EscalationTier(v))
	}
	if len(bandsJSON) > 0 {
		if err := json.Unmarshal(bandsJSON, &p.CensusBands); err != nil {
			return nil, fmt.Errorf("解析床位档位失败: %w", err)
		}
	}
	return p, nil
}

// ActiveHolidays 查询启用的节假日
func (r *SnapshotRepository) ActiveHolidays(ctx context.Context) ([]*model.PublicHoliday, error) {
	query := `
		SELECT id, date, name, logical_group, is_active, created_at, updated_at
		FROM public_holidays
		WHERE is_active = true
		ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询节假日失败: %w", err)
	}
	defer rows.Close()

	var holidays []*model.PublicHoliday
	for rows.Next() {
		h := &model.PublicHoliday{}
		if err := rows.Scan(
			&h.ID, &h.Date, &h.Name, &h.LogicalGroup, &h.IsActive,
			&h.CreatedAt, &h.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描节假日失败: %w", err)
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// RulesForUnit 查询某科室的规则配置（含未启用项，装配时过滤）
func (r *SnapshotRepository) RulesForUnit(ctx context.Context, unit string) ([]*model.Rule, error) {
	query := `
		SELECT id, name, kind, type, category, weight, is_active, params,
		       created_at, updated_at
		FROM schedule_rules
		WHERE unit = $1 OR unit = ''
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, unit)
	if err != nil {
		return nil, fmt.Errorf("查询规则配置失败: %w", err)
	}
	defer rows.Close()

	var rules []*model.Rule
	for rows.Next() {
		rule := &model.Rule{}
		var paramsJSON []byte
		if err := rows.Scan(
			&rule.ID, &rule.Name, &rule.Kind, &rule.Type, &rule.Category,
			&rule.Weight, &rule.IsActive, &paramsJSON,
			&rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描规则配置失败: %w", err)
		}
		if len(paramsJSON) > 0 {
			if err := json.Unmarshal(paramsJSON, &rule.Params); err != nil {
				return nil, fmt.Errorf("解析规则参数失败: %w", err)
			}
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
