package model

import (
	"fmt"
	"strings"
)

// QualificationRequirement 单个资格的最低人数要求
type QualificationRequirement struct {
	Qualification string `json:"qualification"`
	Count         int    `json:"count"`
}

// RoleRequirement 单个角色的最低人数要求
type RoleRequirement struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// DailyRequirement 某 (日, 班次) 的人员配置要求
type DailyRequirement struct {
	TotalStaff             int                        `json:"totalStaff"`
	RequiredQualifications []QualificationRequirement `json:"requiredQualifications"`
	RequiredRoles          []RoleRequirement          `json:"requiredRoles"`
}

// ShiftRequirement 目标月份的需求集合
//
// Requirements 的键格式为 "YYYY-MM-DD_班次名"；某 (日, 班次) 无条目
// 即表示无配置约束，某日所有班次均无条目表示该日为非营业日。
type ShiftRequirement struct {
	TargetMonth  string                      `json:"targetMonth"` // YYYY-MM
	TimeSlots    []ShiftTimeSlot             `json:"timeSlots"`
	Requirements map[string]DailyRequirement `json:"requirements"`
}

// RequirementKey 构造需求键 "YYYY-MM-DD_班次名"
func RequirementKey(month Month, day int, shift ShiftType) string {
	return fmt.Sprintf("%s_%s", month.DateString(day), shift)
}

// Lookup 查询某 (日, 班次) 的要求条目
func (r *ShiftRequirement) Lookup(month Month, day int, shift ShiftType) (DailyRequirement, bool) {
	req, ok := r.Requirements[RequirementKey(month, day, shift)]
	return req, ok
}

// HasNightShift 需求键中出现夜勤 → 夜班设施
func (r *ShiftRequirement) HasNightShift() bool {
	for key := range r.Requirements {
		if strings.Contains(key, string(ShiftNight)) {
			return true
		}
	}
	return false
}

// NonOperationalDays 返回无任何需求条目的日（非营业日）
func (r *ShiftRequirement) NonOperationalDays(month Month) DaySet {
	operational := make(DaySet)
	for key := range r.Requirements {
		datePart, _, ok := strings.Cut(key, "_")
		if !ok {
			continue
		}
		if day := month.DayOf(datePart); day > 0 {
			operational.Add(day)
		}
	}
	nonOp := make(DaySet)
	for day := 1; day <= month.Days(); day++ {
		if !operational.Has(day) {
			nonOp.Add(day)
		}
	}
	return nonOp
}

// LeaveRequests 休假申请: 员工ID → 日期字符串 → 休假类型
type LeaveRequests map[string]map[string]string

// Dates 返回某员工在目标月份内的休假日序号
func (l LeaveRequests) Dates(staffID string, month Month) []int {
	var days []int
	for date := range l[staffID] {
		if day := month.DayOf(date); day > 0 {
			days = append(days, day)
		}
	}
	return days
}

// StaffSkeleton 外部给定的单员工排班骨架（固定休/夜班/跟休日）
type StaffSkeleton struct {
	StaffID                string `json:"staffId"`
	StaffName              string `json:"staffName"`
	RestDays               []int  `json:"restDays"`
	NightShiftDays         []int  `json:"nightShiftDays"`
	NightShiftFollowupDays []int  `json:"nightShiftFollowupDays"`
}

// ScheduleSkeleton 外部给定的排班骨架
type ScheduleSkeleton struct {
	StaffSchedules []StaffSkeleton `json:"staffSchedules"`
}

// ForStaff 查找某员工的骨架条目
func (s *ScheduleSkeleton) ForStaff(staffID string) (StaffSkeleton, bool) {
	for _, skel := range s.StaffSchedules {
		if skel.StaffID == staffID {
			return skel, true
		}
	}
	return StaffSkeleton{}, false
}
