// Package model 定义护理排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// StaffMember 护理人员
type StaffMember struct {
	BaseModel
	Name   string `json:"name" db:"name"`
	Code   string `json:"code" db:"code"`
	Phone  string `json:"phone,omitempty" db:"phone"`
	Email  string `json:"email,omitempty" db:"email"`
	Active bool   `json:"active" db:"active"`

	// 职务与用工
	Role           Role           `json:"role" db:"role"`
	EmploymentType EmploymentType `json:"employment_type" db:"employment_type"`
	FTE            float64        `json:"fte" db:"fte"` // 全职当量 0-1

	// 能力评级
	// 胜任力等级 1-5：1 不可独立上岗，5 可担任责任护士
	CompetencyLevel   int  `json:"competency_level" db:"competency_level"`
	ChargeQualified   bool `json:"charge_qualified" db:"charge_qualified"`
	ReliabilityRating int  `json:"reliability_rating" db:"reliability_rating"` // 可靠度 1-5

	// 科室归属
	HomeUnit          string   `json:"home_unit" db:"home_unit"`
	CrossTrainedUnits []string `json:"cross_trained_units,omitempty" db:"cross_trained_units"`

	// 周末与弹性工时
	WeekendExempt bool    `json:"weekend_exempt" db:"weekend_exempt"`
	FlexHoursYTD  float64 `json:"flex_hours_ytd" db:"flex_hours_ytd"` // 年度累计弹性工时

	// 排班偏好
	Preferences *StaffPreferences `json:"preferences,omitempty" db:"preferences"`
}

// StaffPreferences 护理人员排班偏好
type StaffPreferences struct {
	// 偏好班次类型，"any" 表示无偏好
	PreferredShiftType string         `json:"preferred_shift_type,omitempty"`
	MaxHoursPerWeek    float64        `json:"max_hours_per_week,omitempty"`
	MaxConsecutiveDays int            `json:"max_consecutive_days,omitempty"`
	PreferredDaysOff   []time.Weekday `json:"preferred_days_off,omitempty"`
	AvoidWeekends      bool           `json:"avoid_weekends,omitempty"`
}

// PreferredShiftAny 无班次类型偏好
const PreferredShiftAny = "any"

// PRNAvailability 按日聘用人员的可用日期申报
// 按日聘用人员未申报的日期默认不可用（硬约束）
type PRNAvailability struct {
	StaffID    uuid.UUID `json:"staff_id" db:"staff_id"`
	ScheduleID uuid.UUID `json:"schedule_id" db:"schedule_id"`
	Dates      []string  `json:"dates" db:"dates"` // YYYY-MM-DD
}

// IsActive 检查人员是否在岗
func (s *StaffMember) IsActive() bool {
	return s.Active
}

// IsPerDiem 检查是否为按日聘用人员
func (s *StaffMember) IsPerDiem() bool {
	return s.EmploymentType == EmploymentPerDiem
}

// CanWorkUnsupervised 检查是否达到独立上岗的胜任力下限
func (s *StaffMember) CanWorkUnsupervised(minLevel int) bool {
	return s.CompetencyLevel >= minLevel
}

// CanServeUnit 检查人员是否可在指定科室工作
func (s *StaffMember) CanServeUnit(unit string) bool {
	if s.HomeUnit == unit {
		return true
	}
	for _, u := range s.CrossTrainedUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// MaxHoursPerWeek 返回人员声明的每周最大工时，未声明返回 0
func (s *StaffMember) MaxHoursPerWeek() float64 {
	if s.Preferences == nil {
		return 0
	}
	return s.Preferences.MaxHoursPerWeek
}

// MaxConsecutiveDays 返回人员声明的最大连续工作天数，未声明返回 0
func (s *StaffMember) MaxConsecutiveDays() int {
	if s.Preferences == nil {
		return 0
	}
	return s.Preferences.MaxConsecutiveDays
}

// PrefersDayOff 检查某个星期几是否为偏好休息日
func (s *StaffMember) PrefersDayOff(wd time.Weekday) bool {
	if s.Preferences == nil {
		return false
	}
	for _, d := range s.Preferences.PreferredDaysOff {
		if d == wd {
			return true
		}
	}
	return false
}
