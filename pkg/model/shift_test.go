package model

import (
	"testing"
	"time"
)

func TestShiftInstance_ResolveEffective(t *testing.T) {
	override := 5
	requiresCharge := true

	tests := []struct {
		name       string
		shift      ShiftInstance
		wantStaff  int
		wantCharge bool
	}{
		{
			name:      "无覆盖时使用定义默认",
			shift:     ShiftInstance{DefaultRequiredStaff: 3, DefaultRequiresCharge: false},
			wantStaff: 3,
		},
		{
			name: "实例覆盖优先",
			shift: ShiftInstance{
				DefaultRequiredStaff:   3,
				RequiredStaffOverride:  &override,
				RequiresChargeOverride: &requiresCharge,
			},
			wantStaff:  5,
			wantCharge: true,
		},
		{
			name: "病情严重度追加人力叠加在覆盖之上",
			shift: ShiftInstance{
				DefaultRequiredStaff:  3,
				RequiredStaffOverride: &override,
				AcuityExtraStaff:      2,
			},
			wantStaff: 7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.shift.ResolveEffective()
			if tt.shift.EffectiveRequiredStaff != tt.wantStaff {
				t.Errorf("EffectiveRequiredStaff = %d, 期望 %d", tt.shift.EffectiveRequiredStaff, tt.wantStaff)
			}
			if tt.shift.EffectiveRequiresCharge != tt.wantCharge {
				t.Errorf("EffectiveRequiresCharge = %v, 期望 %v", tt.shift.EffectiveRequiresCharge, tt.wantCharge)
			}
		})
	}
}

func TestAssignment_WorkingHours(t *testing.T) {
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

	withDuration := Assignment{DurationHours: 12, StartTime: start, EndTime: start.Add(8 * time.Hour)}
	if got := withDuration.WorkingHours(); got != 12 {
		t.Errorf("声明时长优先, WorkingHours() = %v, 期望 12", got)
	}

	fromRange := Assignment{StartTime: start, EndTime: start.Add(8 * time.Hour)}
	if got := fromRange.WorkingHours(); got != 8 {
		t.Errorf("未声明时长按起止时间折算, WorkingHours() = %v, 期望 8", got)
	}
}

func TestLeaveRecord(t *testing.T) {
	leave := LeaveRecord{StartDate: "2026-03-10", EndDate: "2026-03-12", Status: LeaveApproved}

	tests := []struct {
		date string
		want bool
	}{
		{"2026-03-09", false},
		{"2026-03-10", true},
		{"2026-03-11", true},
		{"2026-03-12", true},
		{"2026-03-13", false},
	}
	for _, tt := range tests {
		if got := leave.Covers(tt.date); got != tt.want {
			t.Errorf("Covers(%s) = %v, 期望 %v", tt.date, got, tt.want)
		}
	}

	if !leave.Blocks() {
		t.Error("已批准休假应阻断排班")
	}
	leave.Status = LeavePending
	if leave.Blocks() {
		t.Error("待审批休假不应阻断排班")
	}
}

func TestUnitPolicy_Effective(t *testing.T) {
	t.Run("nil策略回落全量默认", func(t *testing.T) {
		var p *UnitPolicy
		if got := p.EffectiveMinRestHours(); got != DefaultMinRestHours {
			t.Errorf("EffectiveMinRestHours = %v, 期望 %v", got, DefaultMinRestHours)
		}
		if got := p.EffectiveMaxConsecutiveDays(); got != DefaultMaxConsecutiveDays {
			t.Errorf("EffectiveMaxConsecutiveDays = %d, 期望 %d", got, DefaultMaxConsecutiveDays)
		}
		if got := p.EffectiveMinCompetency(); got != DefaultMinCompetencyUnsupervised {
			t.Errorf("EffectiveMinCompetency = %d, 期望 %d", got, DefaultMinCompetencyUnsupervised)
		}
		if got := p.EffectiveEscalationSequence(); len(got) != 4 {
			t.Errorf("EffectiveEscalationSequence 长度 = %d, 期望默认 4 层", len(got))
		}
	})

	t.Run("配置值生效", func(t *testing.T) {
		p := &UnitPolicy{
			MinRestHours:              11,
			MaxConsecutiveDays:        5,
			MinCompetencyUnsupervised: 3,
			EscalationSequence:        []EscalationTier{TierAgency},
		}
		if got := p.EffectiveMinRestHours(); got != 11 {
			t.Errorf("EffectiveMinRestHours = %v, 期望 11", got)
		}
		if got := p.EffectiveMaxConsecutiveDays(); got != 5 {
			t.Errorf("EffectiveMaxConsecutiveDays = %d, 期望 5", got)
		}
		if got := p.EffectiveMinCompetency(); got != 3 {
			t.Errorf("EffectiveMinCompetency = %d, 期望 3", got)
		}
		if got := p.EffectiveEscalationSequence(); len(got) != 1 || got[0] != TierAgency {
			t.Errorf("EffectiveEscalationSequence = %v, 期望仅外派机构", got)
		}
	})

	t.Run("胜任力下限不低于内置底线", func(t *testing.T) {
		p := &UnitPolicy{MinCompetencyUnsupervised: 1}
		if got := p.EffectiveMinCompetency(); got != DefaultMinCompetencyUnsupervised {
			t.Errorf("EffectiveMinCompetency = %d, 期望托底为 %d", got, DefaultMinCompetencyUnsupervised)
		}
	})
}

func TestCensusBand_Matches(t *testing.T) {
	band := CensusBand{MinCensus: 9, MaxCensus: 16}
	for census, want := range map[int]bool{8: false, 9: true, 16: true, 17: false} {
		if got := band.Matches(census); got != want {
			t.Errorf("Matches(%d) = %v, 期望 %v", census, got, want)
		}
	}
}

func TestStaffMember_Preferences(t *testing.T) {
	bare := &StaffMember{Name: "无偏好护士"}
	if bare.MaxHoursPerWeek() != 0 || bare.MaxConsecutiveDays() != 0 {
		t.Error("未声明偏好时上限应为 0")
	}
	if bare.PrefersDayOff(time.Sunday) {
		t.Error("未声明偏好时不应有休息日偏好")
	}

	picky := &StaffMember{
		Name: "有偏好护士",
		Preferences: &StaffPreferences{
			MaxHoursPerWeek:    36,
			MaxConsecutiveDays: 4,
			PreferredDaysOff:   []time.Weekday{time.Sunday, time.Wednesday},
		},
	}
	if got := picky.MaxHoursPerWeek(); got != 36 {
		t.Errorf("MaxHoursPerWeek = %v, 期望 36", got)
	}
	if !picky.PrefersDayOff(time.Wednesday) || picky.PrefersDayOff(time.Monday) {
		t.Error("休息日偏好判断不正确")
	}
}

func TestStaffMember_CanServeUnit(t *testing.T) {
	staff := &StaffMember{HomeUnit: "ICU", CrossTrainedUnits: []string{"ER", "PACU"}}
	for unit, want := range map[string]bool{"ICU": true, "ER": true, "PACU": true, "OR": false} {
		if got := staff.CanServeUnit(unit); got != want {
			t.Errorf("CanServeUnit(%s) = %v, 期望 %v", unit, got, want)
		}
	}
}
