package builder

import (
	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/engine"
)

// workShiftTypes 计入勤务的班次（含夜勤）
var workShiftTypes = []model.ShiftType{
	model.ShiftEarly, model.ShiftDay, model.ShiftLate, model.ShiftNight,
}

// addStaffingMinimum 人员配置下限：对每个有需求条目的 (日, 班次)，
// 全员该班次变量之和 >= 需求人数。
//
// 该槽位无任何变量时视为已满足而跳过——避免无人可排的槽位
// 直接导致模型矛盾；缺口由预检警告（而非求解失败）暴露。
func addStaffingMinimum(
	m *engine.Model,
	space *VarSpace,
	staffList []model.Staff,
	req *model.ShiftRequirement,
	month model.Month,
	shiftTypes []model.ShiftType,
) {
	for day := 1; day <= month.Days(); day++ {
		for _, shift := range shiftTypes {
			entry, ok := req.Lookup(month, day, shift)
			if !ok {
				continue
			}
			var onShift []engine.BoolVar
			for i := range staffList {
				if v, exists := space.Get(staffList[i].ID, day, shift); exists {
					onShift = append(onShift, v)
				}
			}
			if len(onShift) > 0 {
				m.AddSumAtLeast(onShift, entry.TotalStaff)
			}
		}
	}
}

// addQualificationMinimum 资格下限：对每个 (日, 班次, 资格) 要求，
// 持该资格员工的班次变量之和 >= 要求人数。跳过规则同上。
func addQualificationMinimum(
	m *engine.Model,
	space *VarSpace,
	staffList []model.Staff,
	req *model.ShiftRequirement,
	month model.Month,
	shiftTypes []model.ShiftType,
) {
	for day := 1; day <= month.Days(); day++ {
		for _, shift := range shiftTypes {
			entry, ok := req.Lookup(month, day, shift)
			if !ok {
				continue
			}
			for _, qualReq := range entry.RequiredQualifications {
				var qualified []engine.BoolVar
				for i := range staffList {
					staff := &staffList[i]
					if !staff.HasQualification(qualReq.Qualification) {
						continue
					}
					if v, exists := space.Get(staff.ID, day, shift); exists {
						qualified = append(qualified, v)
					}
				}
				if len(qualified) > 0 {
					m.AddSumAtLeast(qualified, qualReq.Count)
				}
			}
		}
	}
}

// addMaxConsecutive 最大连续勤务天数（滑动窗口方式）：
// 每个 maxConsecutiveWorkDays+1 日窗口内勤务变量之和 <= 上限。
// 固定休息日确定性地贡献 0；窗口内候选勤务槽不超过上限时
// 天然可满足，为控制模型规模而跳过。
func addMaxConsecutive(
	m *engine.Model,
	space *VarSpace,
	staffList []model.Staff,
	month model.Month,
	fixedRest map[string]model.DaySet,
) {
	days := month.Days()
	for i := range staffList {
		staff := &staffList[i]
		maxConsec := staff.MaxConsecutiveWorkDays
		windowSize := maxConsec + 1
		fixed := fixedRest[staff.ID]

		for start := 1; start <= days-windowSize+1; start++ {
			var working []engine.BoolVar
			for d := start; d < start+windowSize; d++ {
				if fixed.Has(d) {
					continue
				}
				for _, shift := range workShiftTypes {
					if v, ok := space.Get(staff.ID, d, shift); ok {
						working = append(working, v)
					}
				}
			}
			if len(working) > maxConsec {
				m.AddSumAtMost(working, maxConsec)
			}
		}
	}
}

// addRestInterval 勤务间隔：遅番后的次日禁止早番，
// 即 遅番[d] + 早番[d+1] <= 1。
func addRestInterval(
	m *engine.Model,
	space *VarSpace,
	staffList []model.Staff,
	month model.Month,
) {
	for i := range staffList {
		staff := &staffList[i]
		for day := 1; day < month.Days(); day++ {
			late, okLate := space.Get(staff.ID, day, model.ShiftLate)
			early, okEarly := space.Get(staff.ID, day+1, model.ShiftEarly)
			if okLate && okEarly {
				m.AddSumAtMost([]engine.BoolVar{late, early}, 1)
			}
		}
	}
}

// addNightChain 夜班链：夜勤[d] → 明け休み[d+1] → 休[d+2]。
//
// 蕴含实现：夜勤[d]=1 强制明け休み[d+1]=1；休[d+2] 变量存在时一并强制
// （不存在说明 d+2 本就固定休息，无需约束）。反向：明け休み[d]=1 强制
// 夜勤[d-1]=1，前一日无夜勤变量时明け休み强制为假。明け休み[d+1]
// 变量不存在（d+1 为固定休息日）时夜勤[d] 强制为假——链不可被
// 外部固定日打断。
func addNightChain(
	m *engine.Model,
	space *VarSpace,
	staffList []model.Staff,
	month model.Month,
) {
	days := month.Days()
	for i := range staffList {
		staff := &staffList[i]
		for day := 1; day <= days; day++ {
			night, ok := space.Get(staff.ID, day, model.ShiftNight)
			if !ok {
				continue
			}
			followup, okFollowup := space.Get(staff.ID, day+1, model.ShiftFollowup)
			if !okFollowup {
				m.Fix(night, false)
				continue
			}
			m.AddImplication(night, followup)

			if rest, okRest := space.Get(staff.ID, day+2, model.ShiftRest); okRest {
				m.AddImplication(night, rest)
			}
		}

		for day := 2; day <= days; day++ {
			followup, ok := space.Get(staff.ID, day, model.ShiftFollowup)
			if !ok {
				continue
			}
			if night, okNight := space.Get(staff.ID, day-1, model.ShiftNight); okNight {
				m.AddImplication(followup, night)
			} else {
				m.Fix(followup, false)
			}
		}
	}
}

// addRestCadenceOrFail 骨架流程专用：非固定日必为勤务日，连续勤务
// 完全由骨架的休息日布局决定。某员工存在不含任何休息日的连续
// 7 日窗口时，输入不可满足——以无条件矛盾显式驱使模型失败，
// 而非留给搜索去发现。
func addRestCadenceOrFail(
	m *engine.Model,
	staffList []model.Staff,
	month model.Month,
	restDays map[string]model.DaySet,
) {
	days := month.Days()
	for i := range staffList {
		rest := restDays[staffList[i].ID]
		for start := 1; start+7 <= days+1; start++ {
			hasRest := false
			for d := start; d < start+7; d++ {
				if rest.Has(d) {
					hasRest = true
					break
				}
			}
			if !hasRest {
				m.AddContradiction()
			}
		}
	}
}
