// Package model 定义护理排班引擎的核心数据模型
package model

// 策略缺省值：科室未配置策略时引擎回落使用
const (
	DefaultMinRestHours              = 10.0 // 班次间最小休息小时数
	DefaultMaxConsecutiveDays        = 6    // 默认最大连续工作天数
	DefaultMinCompetencyUnsupervised = 2    // 独立上岗胜任力下限
	DefaultWeeklyHourCap             = 40.0 // 未声明偏好时的每周工时上限
)

// UnitPolicy 科室排班策略配置
type UnitPolicy struct {
	BaseModel
	Unit string `json:"unit" db:"unit"`

	// 周末规则
	WeekendRuleType          string `json:"weekend_rule_type" db:"weekend_rule_type"` // per_period/alternating
	WeekendRequiredPerPeriod int    `json:"weekend_required_per_period" db:"weekend_required_per_period"`
	MaxConsecutiveWeekends   int    `json:"max_consecutive_weekends" db:"max_consecutive_weekends"`

	// 排班周期与节假日
	PeriodWeeks           int `json:"period_weeks" db:"period_weeks"`
	HolidayShiftsRequired int `json:"holiday_shifts_required" db:"holiday_shifts_required"`

	// 病情严重度追加人力
	AcuityExtraStaffThreshold int `json:"acuity_extra_staff_threshold" db:"acuity_extra_staff_threshold"`
	AcuityExtraStaff          int `json:"acuity_extra_staff" db:"acuity_extra_staff"`

	// 低床位使用率减员顺序
	LowCensusReductionOrder []EmploymentType `json:"low_census_reduction_order,omitempty" db:"low_census_reduction_order"`

	// 加班与备班
	OvertimeApprovalThreshold float64 `json:"overtime_approval_threshold" db:"overtime_approval_threshold"` // 周工时阈值
	OnCallMaxPerPeriod        int     `json:"on_call_max_per_period" db:"on_call_max_per_period"`

	// 休息与连班
	MinRestHours       float64 `json:"min_rest_hours" db:"min_rest_hours"`
	MaxConsecutiveDays int     `json:"max_consecutive_days" db:"max_consecutive_days"`

	// 独立上岗胜任力下限
	MinCompetencyUnsupervised int `json:"min_competency_unsupervised" db:"min_competency_unsupervised"`

	// 替班升级顺序，为空时使用默认顺序
	EscalationSequence []EscalationTier `json:"escalation_sequence,omitempty" db:"escalation_sequence"`

	// 床位-人力配比档位
	CensusBands []CensusBand `json:"census_bands,omitempty" db:"census_bands"`
}

// CensusBand 床位数档位对应的人力需求
type CensusBand struct {
	MinCensus        int     `json:"min_census"`
	MaxCensus        int     `json:"max_census"`
	RequiredRN       int     `json:"required_rn"`
	RequiredCNA      int     `json:"required_cna"`
	RequiresCharge   bool    `json:"requires_charge"`
	PatientsPerNurse float64 `json:"patients_per_nurse"` // 患护比
}

// Matches 检查床位数是否落入该档位
func (b CensusBand) Matches(census int) bool {
	return census >= b.MinCensus && census <= b.MaxCensus
}

// EffectiveMinRestHours 返回生效的最小休息小时数
func (p *UnitPolicy) EffectiveMinRestHours() float64 {
	if p == nil || p.MinRestHours <= 0 {
		return DefaultMinRestHours
	}
	return p.MinRestHours
}

// EffectiveMaxConsecutiveDays 返回生效的科室默认最大连续工作天数
func (p *UnitPolicy) EffectiveMaxConsecutiveDays() int {
	if p == nil || p.MaxConsecutiveDays <= 0 {
		return DefaultMaxConsecutiveDays
	}
	return p.MaxConsecutiveDays
}

// EffectiveMinCompetency 返回生效的独立上岗胜任力下限
// 不低于引擎内置下限
func (p *UnitPolicy) EffectiveMinCompetency() int {
	if p == nil || p.MinCompetencyUnsupervised < DefaultMinCompetencyUnsupervised {
		return DefaultMinCompetencyUnsupervised
	}
	return p.MinCompetencyUnsupervised
}

// EffectiveEscalationSequence 返回生效的替班升级顺序
// 未配置时回落到默认顺序（预期的软配置缺口，不报错）
func (p *UnitPolicy) EffectiveEscalationSequence() []EscalationTier {
	if p == nil || len(p.EscalationSequence) == 0 {
		return DefaultEscalationSequence()
	}
	return p.EscalationSequence
}
