// Package model 定义护理排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// Role 护理人员职务
type Role string

const (
	RoleRN  Role = "RN"  // 注册护士
	RoleLPN Role = "LPN" // 执业护士
	RoleCNA Role = "CNA" // 护理助理
)

// EmploymentType 用工类型
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time" // 全职
	EmploymentPartTime EmploymentType = "part_time" // 兼职
	EmploymentPerDiem  EmploymentType = "per_diem"  // 按日聘用
	EmploymentFloat    EmploymentType = "float"     // 机动护士
	EmploymentAgency   EmploymentType = "agency"    // 外派机构
)

// ShiftType 班次类型
type ShiftType string

const (
	ShiftDay     ShiftType = "day"     // 白班
	ShiftEvening ShiftType = "evening" // 小夜班
	ShiftNight   ShiftType = "night"   // 大夜班
)

// AssignmentStatus 排班分配状态
type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "assigned"   // 已分配
	AssignmentConfirmed AssignmentStatus = "confirmed"  // 已确认
	AssignmentCalledOut AssignmentStatus = "called_out" // 临时缺勤
	AssignmentSwapped   AssignmentStatus = "swapped"    // 已换班
	AssignmentCancelled AssignmentStatus = "cancelled"  // 已取消
)

// IsLive 检查分配是否计入覆盖与规则评估
// 仅 assigned/confirmed 视为有效分配
func (s AssignmentStatus) IsLive() bool {
	return s == AssignmentAssigned || s == AssignmentConfirmed
}

// LeaveStatus 休假审批状态
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"  // 待审批
	LeaveApproved LeaveStatus = "approved" // 已批准
	LeaveDenied   LeaveStatus = "denied"   // 已拒绝
)

// EscalationTier 替班升级层级
// 缺口补位时按固定顺序逐层尝试
type EscalationTier string

const (
	TierFloat    EscalationTier = "float"    // 机动护士
	TierPerDiem  EscalationTier = "per_diem" // 按日聘用
	TierOvertime EscalationTier = "overtime" // 加班补位
	TierAgency   EscalationTier = "agency"   // 外派机构
)

// DefaultEscalationSequence 返回默认替班升级顺序
func DefaultEscalationSequence() []EscalationTier {
	return []EscalationTier{TierFloat, TierPerDiem, TierOvertime, TierAgency}
}

// TierIndex 返回层级在升级顺序中的位置，未找到返回序列长度
func TierIndex(sequence []EscalationTier, tier EscalationTier) int {
	for i, t := range sequence {
		if t == tier {
			return i
		}
	}
	return len(sequence)
}

// EscalationTier 返回用工类型对应的替班来源层级
func (e EmploymentType) EscalationTier() EscalationTier {
	switch e {
	case EmploymentFloat:
		return TierFloat
	case EmploymentPerDiem:
		return TierPerDiem
	case EmploymentAgency:
		return TierAgency
	default:
		return TierOvertime
	}
}

// BaseModel 基础模型（包含通用字段）
type BaseModel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JSONMap 用于存储 JSONB 数据
type JSONMap map[string]interface{}

// TimeRange 时间范围
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration 返回时间范围的持续时间
func (tr TimeRange) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

// Overlaps 检查两个时间范围是否重叠
func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.Start.Before(other.End) && other.Start.Before(tr.End)
}

// Contains 检查时间范围是否包含某个时间点
func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.Start) && t.Before(tr.End)
}

// DateLayout 日期格式 YYYY-MM-DD
const DateLayout = "2006-01-02"

// IsWeekendDate 判断日期是否为周末
func IsWeekendDate(date string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
