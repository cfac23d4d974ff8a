// Package validator 校验快照数据的内部一致性
//
// 这里发现的问题属于数据前提被破坏（上游写入缺陷），
// 与规则违规不同，应当立即报错中止而不是记入评估结果
package validator

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hupai/hupai/pkg/engine"
	"github.com/hupai/hupai/pkg/errors"
)

// CheckSnapshot 检查快照一致性
// 返回第一处前提违规；快照一致时返回 nil
func CheckSnapshot(c *engine.Context) error {
	if c.Schedule == nil {
		return errors.Precondition("快照缺少排班表")
	}

	type shiftStaff struct {
		shiftID uuid.UUID
		staffID uuid.UUID
	}
	seen := make(map[shiftStaff]bool, len(c.Assignments))

	for _, a := range c.Assignments {
		if a.ScheduleID != c.Schedule.ID {
			return errors.Precondition(fmt.Sprintf("分配 %s 不属于排班表 %s", a.ID, c.Schedule.ID))
		}

		shift := c.Shift(a.ShiftID)
		if shift == nil {
			return errors.Precondition(fmt.Sprintf("分配 %s 指向不存在的班次 %s", a.ID, a.ShiftID))
		}
		if a.Date != "" && a.Date != shift.Date {
			return errors.Precondition(fmt.Sprintf("分配 %s 的日期 %s 与班次日期 %s 不一致", a.ID, a.Date, shift.Date))
		}

		if c.StaffByID(a.StaffID) == nil {
			return errors.Precondition(fmt.Sprintf("分配 %s 指向名册外的人员 %s", a.ID, a.StaffID))
		}

		key := shiftStaff{shiftID: a.ShiftID, staffID: a.StaffID}
		if seen[key] {
			return errors.Precondition(fmt.Sprintf("人员 %s 在班次 %s 出现多条分配", a.StaffID, a.ShiftID))
		}
		seen[key] = true
	}
	return nil
}
