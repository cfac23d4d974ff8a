// Package model 定义护理排班引擎的核心数据模型
package model

import "github.com/google/uuid"

// EvaluationResult 排班规则评估结果
type EvaluationResult struct {
	IsValid        bool            `json:"is_valid"`
	HardViolations []RuleViolation `json:"hard_violations"`
	SoftViolations []RuleViolation `json:"soft_violations"`
	TotalPenalty   float64         `json:"total_penalty"`
}

// ScoreBreakdown 排班质量评分
// 五个子分均归一到 [0,1]，0 最优 1 最差
type ScoreBreakdown struct {
	Coverage   float64 `json:"coverage"`
	Fairness   float64 `json:"fairness"`
	Cost       float64 `json:"cost"`
	Preference float64 `json:"preference"`
	SkillMix   float64 `json:"skill_mix"`
	Overall    float64 `json:"overall"`
}

// ReplacementCandidate 替班候选人
type ReplacementCandidate struct {
	StaffID            uuid.UUID      `json:"staff_id"`
	Name               string         `json:"name"`
	Role               Role           `json:"role"`
	CompetencyLevel    int            `json:"competency_level"`
	ReliabilityRating  int            `json:"reliability_rating"`
	Source             EscalationTier `json:"source"`
	IsAvailable        bool           `json:"is_available"`
	WouldCauseOvertime bool           `json:"would_cause_overtime"`
	IsPlaceholder      bool           `json:"is_placeholder,omitempty"` // 机构外派兜底占位
}

// EligibleStaffEntry 班次可排人员条目
type EligibleStaffEntry struct {
	StaffID           uuid.UUID `json:"staff_id"`
	Name              string    `json:"name"`
	Role              Role      `json:"role"`
	CompetencyLevel   int       `json:"competency_level"`
	ReliabilityRating int       `json:"reliability_rating"`
	ChargeQualified   bool      `json:"charge_qualified"`
	Eligible          bool      `json:"eligible"`
	IneligibleReasons []string  `json:"ineligible_reasons,omitempty"`
}
