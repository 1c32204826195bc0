package builder

import (
	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/engine"
)

// 软目标权重。固定常量，量级保证高优先级项主导平局：
// 偏好 > 夜班均衡 > 勤务天数目标 > 班次均衡 > 休息分散。
// 相对大小顺序是契约，具体数值可调且不影响任何硬约束不变量。
const (
	weightPreference    = 10
	weightNightFairness = 8
	weightWorkTarget    = 7
	weightShiftFairness = 5
	weightRestSpacing   = 3
)

// addPreferenceBonus 时段偏好奖励：仅日班偏好的员工每个日勤分配
// 获得奖励。该偏好已通过可分配目录硬性限制，此处的冗余奖励
// 用于稳定求解器的平局裁决。
func addPreferenceBonus(
	obj *engine.LinearExpr,
	space *VarSpace,
	staffList []model.Staff,
	month model.Month,
) {
	for i := range staffList {
		staff := &staffList[i]
		if staff.TimeSlotPreference != model.PreferDayOnly {
			continue
		}
		for day := 1; day <= month.Days(); day++ {
			if v, ok := space.Get(staff.ID, day, model.ShiftDay); ok {
				obj.AddVar(v, weightPreference)
			}
		}
	}
}

// addShiftFairness 班次种类均衡：无单一时段偏好的员工，
// 对每对可分配日间班次奖励 月天数-|次数差|，即偏差越小奖励越高。
func addShiftFairness(
	m *engine.Model,
	obj *engine.LinearExpr,
	space *VarSpace,
	staffList []model.Staff,
	month model.Month,
) {
	days := month.Days()
	for i := range staffList {
		staff := &staffList[i]
		if staff.TimeSlotPreference == model.PreferDayOnly {
			continue
		}
		if staff.TimeSlotPreference == model.PreferNightOnly || staff.IsNightShiftOnly {
			continue
		}

		var (
			presentTypes []model.ShiftType
			countExprs   []*engine.LinearExpr
		)
		for _, shift := range model.DayShiftTypes {
			count := engine.NewLinear()
			for day := 1; day <= days; day++ {
				if v, ok := space.Get(staff.ID, day, shift); ok {
					count.AddVar(v, 1)
				}
			}
			if !count.Empty() {
				presentTypes = append(presentTypes, shift)
				countExprs = append(countExprs, count)
			}
		}
		if len(presentTypes) < 2 {
			continue
		}

		for a := 0; a < len(presentTypes); a++ {
			for b := a + 1; b < len(presentTypes); b++ {
				diff := absDifference(m, countExprs[a], countExprs[b], days)
				obj.AddConstant(weightShiftFairness * days)
				obj.AddInt(diff, -weightShiftFairness)
			}
		}
	}
}

// addNightFairness 夜班均衡（仅夜班设施）：可值夜班的员工两两之间
// 奖励 月天数-|夜勤次数差|。
func addNightFairness(
	m *engine.Model,
	obj *engine.LinearExpr,
	space *VarSpace,
	staffList []model.Staff,
	month model.Month,
) {
	days := month.Days()
	var nightCounts []*engine.LinearExpr
	for i := range staffList {
		staff := &staffList[i]
		if staff.TimeSlotPreference == model.PreferDayOnly {
			continue
		}
		count := engine.NewLinear()
		for day := 1; day <= days; day++ {
			if v, ok := space.Get(staff.ID, day, model.ShiftNight); ok {
				count.AddVar(v, 1)
			}
		}
		if !count.Empty() {
			nightCounts = append(nightCounts, count)
		}
	}

	for a := 0; a < len(nightCounts); a++ {
		for b := a + 1; b < len(nightCounts); b++ {
			diff := absDifference(m, nightCounts[a], nightCounts[b], days)
			obj.AddConstant(weightNightFairness * days)
			obj.AddInt(diff, -weightNightFairness)
		}
	}
}

// addRestSpacing 休息分散奖励：每名员工的非重叠 7 日窗口内，
// 休/明け休み越多奖励越高（固定休息日计常数 1），
// 鼓励休息日按周分布而非月内扎堆。
func addRestSpacing(
	obj *engine.LinearExpr,
	space *VarSpace,
	staffList []model.Staff,
	month model.Month,
	fixedRest map[string]model.DaySet,
) {
	days := month.Days()
	for i := range staffList {
		staff := &staffList[i]
		fixed := fixedRest[staff.ID]
		for weekStart := 1; weekStart <= days; weekStart += 7 {
			weekEnd := weekStart + 7
			if weekEnd > days+1 {
				weekEnd = days + 1
			}
			for d := weekStart; d < weekEnd; d++ {
				if fixed.Has(d) {
					obj.AddConstant(weightRestSpacing)
					continue
				}
				if v, ok := space.Get(staff.ID, d, model.ShiftRest); ok {
					obj.AddVar(v, weightRestSpacing)
				}
				if v, ok := space.Get(staff.ID, d, model.ShiftFollowup); ok {
					obj.AddVar(v, weightRestSpacing)
				}
			}
		}
	}
}

// addWorkCountTarget 月勤务天数目标接近奖励：目标值为
// weeklyWorkCount.must × (月天数÷7)，奖励 月天数-|实际-目标|。
// 下限若作硬约束会与夜班链冲突，故以软目标实现。
func addWorkCountTarget(
	m *engine.Model,
	obj *engine.LinearExpr,
	space *VarSpace,
	staffList []model.Staff,
	month model.Month,
	fixedRest map[string]model.DaySet,
) {
	days := month.Days()
	for i := range staffList {
		staff := &staffList[i]
		fixed := fixedRest[staff.ID]
		target := staff.WeeklyWorkCount.Must * days / 7

		work := engine.NewLinear()
		for day := 1; day <= days; day++ {
			if fixed.Has(day) {
				continue
			}
			for _, shift := range workShiftTypes {
				if v, ok := space.Get(staff.ID, day, shift); ok {
					work.AddVar(v, 1)
				}
			}
		}
		if work.Empty() {
			continue
		}

		diff := absDifference(m, work, engine.NewLinear().AddConstant(target), days)
		obj.AddConstant(weightWorkTarget * days)
		obj.AddInt(diff, -weightWorkTarget)
	}
}
