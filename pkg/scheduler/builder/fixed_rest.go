// Package builder 将排班问题声明式地构建为求解引擎模型：
// 固定休息日解析、决策变量空间、硬约束族与软目标函数。
package builder

import (
	"github.com/banci/banci/pkg/model"
)

// ResolveFixedRest 计算某员工在目标月份内的固定休息日集合。
//
// 并集来源：非营业日、员工出勤不可日、休假申请日、不可出勤星期对应日，
// 以及（骨架流程）外部给定的休/夜班/跟休日。输入相同则输出相同；
// 可出勤星期与本月无交集时整月固定休息，下游必须容忍该员工零贡献。
func ResolveFixedRest(
	staff *model.Staff,
	month model.Month,
	nonOperational model.DaySet,
	leaves model.LeaveRequests,
	skeleton *model.StaffSkeleton,
) model.DaySet {
	fixed := make(model.DaySet)
	for day := range nonOperational {
		fixed.Add(day)
	}

	for _, date := range staff.UnavailableDates {
		if day := month.DayOf(date); day > 0 {
			fixed.Add(day)
		}
	}

	for _, day := range leaves.Dates(staff.ID, month) {
		fixed.Add(day)
	}

	for day := 1; day <= month.Days(); day++ {
		if !staff.WorksOnWeekday(month.Weekday(day)) {
			fixed.Add(day)
		}
	}

	if skeleton != nil {
		for _, day := range skeleton.RestDays {
			fixed.Add(day)
		}
		for _, day := range skeleton.NightShiftDays {
			fixed.Add(day)
		}
		for _, day := range skeleton.NightShiftFollowupDays {
			fixed.Add(day)
		}
	}

	return fixed
}
