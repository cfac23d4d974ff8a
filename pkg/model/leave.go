// Package model 定义护理排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// LeaveRecord 休假记录
type LeaveRecord struct {
	BaseModel
	StaffID   uuid.UUID   `json:"staff_id" db:"staff_id"`
	Type      string      `json:"type" db:"type"` // vacation/sick/personal/education
	StartDate string      `json:"start_date" db:"start_date"`
	EndDate   string      `json:"end_date" db:"end_date"`
	Status    LeaveStatus `json:"status" db:"status"`
	Reason    string      `json:"reason,omitempty" db:"reason"`
}

// Covers 检查休假是否覆盖指定日期（含首尾）
func (l *LeaveRecord) Covers(date string) bool {
	return l.StartDate <= date && date <= l.EndDate
}

// Blocks 检查休假是否阻断排班
// 仅已批准的休假构成硬约束
func (l *LeaveRecord) Blocks() bool {
	return l.Status == LeaveApproved
}

// PublicHoliday 法定/医院节假日
// 同一逻辑节日组（如平安夜与圣诞节同属 christmas）在公平性
// 统计中每人每年只计一次
type PublicHoliday struct {
	BaseModel
	Date         string `json:"date" db:"date"` // YYYY-MM-DD
	Name         string `json:"name" db:"name"`
	LogicalGroup string `json:"logical_group" db:"logical_group"`
	IsActive     bool   `json:"is_active" db:"is_active"`
}

// Year 返回节假日所属年份
func (h *PublicHoliday) Year() int {
	t, err := time.Parse(DateLayout, h.Date)
	if err != nil {
		return 0
	}
	return t.Year()
}
