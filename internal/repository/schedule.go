package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/hupai/hupai/pkg/model"
)

// ScheduleByID 查询排班表，不存在返回 (nil, nil)
func (r *SnapshotRepository) ScheduleByID(ctx context.Context, id uuid.UUID) (*model.Schedule, error) {
	query := `
		SELECT id, unit, name, start_date, end_date, status, period_weeks,
		       published_at, created_at, updated_at
		FROM schedules
		WHERE id = $1`

	s := &model.Schedule{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Unit, &s.Name, &s.StartDate, &s.EndDate, &s.Status,
		&s.PeriodWeeks, &s.PublishedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询排班表失败: %w", err)
	}
	return s, nil
}

// ShiftsForSchedule 查询排班表内的全部班次实例
// 联表带出班次定义默认值，供快照构建时解析生效需求
func (r *SnapshotRepository) ShiftsForSchedule(ctx context.Context, scheduleID uuid.UUID) ([]*model.ShiftInstance, error) {
	query := `
		SELECT si.id, si.schedule_id, si.definition_id, si.unit, si.date,
		       si.shift_type, si.start_time, si.end_time, si.duration_hours,
		       si.required_staff_override, si.requires_charge_override,
		       sd.default_required_staff, sd.default_requires_charge,
		       si.acuity_level, si.acuity_extra_staff, si.census,
		       si.created_at, si.updated_at
		FROM shift_instances si
		JOIN shift_definitions sd ON sd.id = si.definition_id
		WHERE si.schedule_id = $1
		ORDER BY si.date, si.start_time`

	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("查询班次实例失败: %w", err)
	}
	defer rows.Close()

	var shifts []*model.ShiftInstance
	for rows.Next() {
		s := &model.ShiftInstance{}
		if err := rows.Scan(
			&s.ID, &s.ScheduleID, &s.DefinitionID, &s.Unit, &s.Date,
			&s.ShiftType, &s.StartTime, &s.EndTime, &s.DurationHours,
			&s.RequiredStaffOverride, &s.RequiresChargeOverride,
			&s.DefaultRequiredStaff, &s.DefaultRequiresCharge,
			&s.AcuityLevel, &s.AcuityExtraStaff, &s.Census,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描班次实例失败: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// AssignmentsForSchedule 查询排班表内的全部分配（含已取消等非有效状态）
// 有效性过滤由快照构建器负责
func (r *SnapshotRepository) AssignmentsForSchedule(ctx context.Context, scheduleID uuid.UUID) ([]*model.Assignment, error) {
	query := `
		SELECT id, schedule_id, shift_id, staff_id, date, shift_type,
		       start_time, end_time, duration_hours, unit, status,
		       is_charge_nurse, is_overtime, is_float, float_source_unit,
		       created_at, updated_at
		FROM assignments
		WHERE schedule_id = $1
		ORDER BY date, start_time, staff_id`

	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("查询排班分配失败: %w", err)
	}
	defer rows.Close()

	var assignments []*model.Assignment
	for rows.Next() {
		a := &model.Assignment{}
		if err := rows.Scan(
			&a.ID, &a.ScheduleID, &a.ShiftID, &a.StaffID, &a.Date, &a.ShiftType,
			&a.StartTime, &a.EndTime, &a.DurationHours, &a.Unit, &a.Status,
			&a.IsChargeNurse, &a.IsOvertime, &a.IsFloat, &a.FloatSourceUnit,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描排班分配失败: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
