package engine

import (
	"sync"

	"github.com/hupai/hupai/pkg/model"
)

// Rule 排班规则接口
// 硬规则违规导致排班无效，软规则违规累计惩罚分
type Rule interface {
	// Name 规则名称
	Name() string
	// Kind 规则种类标识
	Kind() model.RuleKind
	// Type 规则类型（硬性/软性）
	Type() model.RuleType
	// Category 规则分类
	Category() model.RuleCategory
	// Weight 规则权重，用于软规则惩罚分计算
	Weight() float64
	// Evaluate 对整个快照求值
	// 返回是否满足、惩罚分与违规明细；硬规则惩罚分恒为 0
	Evaluate(c *Context) (bool, float64, []model.RuleViolation)
}

// Manager 规则管理器
// 按注册顺序对快照求值，保证同一快照的结果确定
type Manager struct {
	mu    sync.RWMutex
	rules []Rule
}

// NewManager 创建规则管理器
func NewManager() *Manager {
	return &Manager{rules: make([]Rule, 0)}
}

// Register 注册规则，nil 规则忽略
func (m *Manager) Register(rules ...Rule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rules {
		if r != nil {
			m.rules = append(m.rules, r)
		}
	}
}

// Rules 返回已注册规则的快照副本
func (m *Manager) Rules() []Rule {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Count 返回已注册规则数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rules)
}

// Evaluate 对快照执行全部已注册规则
// 无硬规则违规即有效；总惩罚分只累计软规则
// 没有任何规则时返回有效、零违规、零惩罚
func (m *Manager) Evaluate(c *Context) *model.EvaluationResult {
	m.mu.RLock()
	rules := make([]Rule, len(m.rules))
	copy(rules, m.rules)
	m.mu.RUnlock()

	result := &model.EvaluationResult{
		IsValid:        true,
		HardViolations: make([]model.RuleViolation, 0),
		SoftViolations: make([]model.RuleViolation, 0),
	}

	for _, r := range rules {
		ok, penalty, violations := r.Evaluate(c)
		if ok {
			continue
		}
		switch r.Type() {
		case model.RuleHard:
			result.IsValid = false
			result.HardViolations = append(result.HardViolations, violations...)
		case model.RuleSoft:
			result.TotalPenalty += penalty
			result.SoftViolations = append(result.SoftViolations, violations...)
		}
	}
	return result
}
