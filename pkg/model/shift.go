// Package model 定义护理排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// ShiftDefinition 班次定义（科室级默认配置）
type ShiftDefinition struct {
	BaseModel
	Unit                  string    `json:"unit" db:"unit"`
	Name                  string    `json:"name" db:"name"`
	ShiftType             ShiftType `json:"shift_type" db:"shift_type"`
	StartTime             string    `json:"start_time" db:"start_time"` // HH:MM
	EndTime               string    `json:"end_time" db:"end_time"`     // HH:MM
	DurationHours         float64   `json:"duration_hours" db:"duration_hours"`
	DefaultRequiredStaff  int       `json:"default_required_staff" db:"default_required_staff"`
	DefaultRequiresCharge bool      `json:"default_requires_charge" db:"default_requires_charge"`
	IsActive              bool      `json:"is_active" db:"is_active"`
}

// ShiftInstance 班次实例（某排班表内某日的具体班次）
type ShiftInstance struct {
	BaseModel
	ScheduleID    uuid.UUID `json:"schedule_id" db:"schedule_id"`
	DefinitionID  uuid.UUID `json:"definition_id" db:"definition_id"`
	Unit          string    `json:"unit" db:"unit"`
	Date          string    `json:"date" db:"date"` // YYYY-MM-DD
	ShiftType     ShiftType `json:"shift_type" db:"shift_type"`
	StartTime     time.Time `json:"start_time" db:"start_time"`
	EndTime       time.Time `json:"end_time" db:"end_time"`
	DurationHours float64   `json:"duration_hours" db:"duration_hours"`

	// 实例级覆盖：为空时回落到班次定义默认值
	RequiredStaffOverride  *int  `json:"required_staff_override,omitempty" db:"required_staff_override"`
	RequiresChargeOverride *bool `json:"requires_charge_override,omitempty" db:"requires_charge_override"`

	// 定义默认值（由仓储联表带出，供生效值解析）
	DefaultRequiredStaff  int  `json:"default_required_staff" db:"default_required_staff"`
	DefaultRequiresCharge bool `json:"default_requires_charge" db:"default_requires_charge"`

	// 生效需求：构建上下文快照时解析一次，之后只读
	EffectiveRequiredStaff  int  `json:"effective_required_staff" db:"-"`
	EffectiveRequiresCharge bool `json:"effective_requires_charge" db:"-"`

	// 病情与床位
	AcuityLevel      int `json:"acuity_level" db:"acuity_level"`             // 病情严重度 1-5
	AcuityExtraStaff int `json:"acuity_extra_staff" db:"acuity_extra_staff"` // 高病情严重度追加人数
	Census           int `json:"census" db:"census"`                         // 在床患者数
}

// ResolveEffective 解析生效需求（实例覆盖优先，否则用定义默认）
// 由上下文构建器在组装快照时调用一次，消费方只读生效字段
func (si *ShiftInstance) ResolveEffective() {
	if si.RequiredStaffOverride != nil {
		si.EffectiveRequiredStaff = *si.RequiredStaffOverride
	} else {
		si.EffectiveRequiredStaff = si.DefaultRequiredStaff
	}
	si.EffectiveRequiredStaff += si.AcuityExtraStaff

	if si.RequiresChargeOverride != nil {
		si.EffectiveRequiresCharge = *si.RequiresChargeOverride
	} else {
		si.EffectiveRequiresCharge = si.DefaultRequiresCharge
	}
}

// TimeRange 返回班次的时间范围
func (si *ShiftInstance) TimeRange() TimeRange {
	return TimeRange{Start: si.StartTime, End: si.EndTime}
}

// IsWeekend 检查班次是否为周末班
func (si *ShiftInstance) IsWeekend() bool {
	return IsWeekendDate(si.Date)
}

// IsNight 检查是否为大夜班
func (si *ShiftInstance) IsNight() bool {
	return si.ShiftType == ShiftNight
}

// Schedule 排班表
type Schedule struct {
	BaseModel
	Unit        string     `json:"unit" db:"unit"`
	Name        string     `json:"name" db:"name"`
	StartDate   string     `json:"start_date" db:"start_date"`
	EndDate     string     `json:"end_date" db:"end_date"`
	Status      string     `json:"status" db:"status"` // draft/published/archived
	PeriodWeeks int        `json:"period_weeks" db:"period_weeks"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
}

// Assignment 排班分配
// 将一名护理人员关联到某排班表内的一个班次实例
type Assignment struct {
	BaseModel
	ScheduleID    uuid.UUID        `json:"schedule_id" db:"schedule_id"`
	ShiftID       uuid.UUID        `json:"shift_id" db:"shift_id"`
	StaffID       uuid.UUID        `json:"staff_id" db:"staff_id"`
	Date          string           `json:"date" db:"date"`
	ShiftType     ShiftType        `json:"shift_type" db:"shift_type"`
	StartTime     time.Time        `json:"start_time" db:"start_time"`
	EndTime       time.Time        `json:"end_time" db:"end_time"`
	DurationHours float64          `json:"duration_hours" db:"duration_hours"`
	Unit          string           `json:"unit" db:"unit"`
	Status        AssignmentStatus `json:"status" db:"status"`

	IsChargeNurse   bool   `json:"is_charge_nurse" db:"is_charge_nurse"`
	IsOvertime      bool   `json:"is_overtime" db:"is_overtime"`
	IsFloat         bool   `json:"is_float" db:"is_float"`
	FloatSourceUnit string `json:"float_source_unit,omitempty" db:"float_source_unit"`
}

// IsLive 检查分配是否计入覆盖与规则评估
func (a *Assignment) IsLive() bool {
	return a.Status.IsLive()
}

// WorkingHours 返回分配的工作时长（小时）
func (a *Assignment) WorkingHours() float64 {
	if a.DurationHours > 0 {
		return a.DurationHours
	}
	return a.EndTime.Sub(a.StartTime).Hours()
}

// TimeRange 返回分配的时间范围
func (a *Assignment) TimeRange() TimeRange {
	return TimeRange{Start: a.StartTime, End: a.EndTime}
}
