package builder

import (
	"fmt"

	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/engine"
)

// SkeletonBuilder 骨架流程的模型构建器：休/夜班/跟休日由外部骨架
// 给定，仅对剩余工作日在日间班次（早番/日勤/遅番）之间做选择。
type SkeletonBuilder struct {
	staffList []model.Staff
	skeleton  *model.ScheduleSkeleton
	req       *model.ShiftRequirement
	leaves    model.LeaveRequests

	month     model.Month
	nonOp     model.DaySet
	fixedRest map[string]model.DaySet // 全部固定日（含骨架夜班日）
	restDays  map[string]model.DaySet // 仅休息性质的固定日（不含夜班日）

	m     *engine.Model
	space *VarSpace
}

// NewSkeletonBuilder 创建骨架流程构建器
func NewSkeletonBuilder(
	staffList []model.Staff,
	skeleton *model.ScheduleSkeleton,
	req *model.ShiftRequirement,
	leaves model.LeaveRequests,
) (*SkeletonBuilder, error) {
	month, err := model.ParseMonth(req.TargetMonth)
	if err != nil {
		return nil, fmt.Errorf("解析目标月份失败: %w", err)
	}

	b := &SkeletonBuilder{
		staffList: staffList,
		skeleton:  skeleton,
		req:       req,
		leaves:    leaves,
		month:     month,
		nonOp:     req.NonOperationalDays(month),
		fixedRest: make(map[string]model.DaySet, len(staffList)),
		restDays:  make(map[string]model.DaySet, len(staffList)),
		m:         engine.NewModel(),
		space:     NewVarSpace(),
	}
	for i := range staffList {
		staff := &staffList[i]
		skel, ok := skeleton.ForStaff(staff.ID)
		var skelPtr *model.StaffSkeleton
		if ok {
			skelPtr = &skel
		}
		fixed := ResolveFixedRest(staff, month, b.nonOp, leaves, skelPtr)
		b.fixedRest[staff.ID] = fixed

		// 固定日中除夜班日外均为休息性质（休/明け休み）
		rest := make(model.DaySet, len(fixed))
		night := model.NewDaySet(skel.NightShiftDays...)
		for day := range fixed {
			if !night.Has(day) {
				rest.Add(day)
			}
		}
		b.restDays[staff.ID] = rest
	}
	return b, nil
}

// Month 返回目标月份
func (b *SkeletonBuilder) Month() model.Month {
	return b.month
}

// FixedRest 返回某员工的固定日集合
func (b *SkeletonBuilder) FixedRest(staffID string) model.DaySet {
	return b.fixedRest[staffID]
}

// catalog 骨架流程仅在日间班次间做选择
func (b *SkeletonBuilder) catalog(*model.Staff) []model.ShiftType {
	return model.DayShiftTypes
}

// Build 构建模型
func (b *SkeletonBuilder) Build() *engine.Model {
	createVariables(b.m, b.space, b.staffList, b.month, b.fixedRest, b.catalog)
	addExactlyOne(b.m, b.space, b.staffList, b.month, b.catalog)

	addStaffingMinimum(b.m, b.space, b.staffList, b.req, b.month, model.DayShiftTypes)
	addQualificationMinimum(b.m, b.space, b.staffList, b.req, b.month, model.DayShiftTypes)
	addRestCadenceOrFail(b.m, b.staffList, b.month, b.restDays)
	addRestInterval(b.m, b.space, b.staffList, b.month)

	obj := engine.NewLinear()
	addPreferenceBonus(obj, b.space, b.staffList, b.month)
	addShiftFairness(b.m, obj, b.space, b.staffList, b.month)
	if !obj.Empty() {
		b.m.Maximize(obj)
	}

	return b.m
}

// Extract 将求解赋值转换为整月排班。骨架给定日输出其既知班次
// （夜勤/明け休み/休），其余固定日输出 休，非固定日读取变量。
func (b *SkeletonBuilder) Extract(res *engine.Result) []model.StaffSchedule {
	schedules := make([]model.StaffSchedule, 0, len(b.staffList))
	for i := range b.staffList {
		staff := &b.staffList[i]
		skel, _ := b.skeleton.ForStaff(staff.ID)
		night := model.NewDaySet(skel.NightShiftDays...)
		followup := model.NewDaySet(skel.NightShiftFollowupDays...)

		shifts := make([]model.GeneratedShift, 0, b.month.Days())
		for day := 1; day <= b.month.Days(); day++ {
			assigned := model.ShiftRest
			switch {
			case night.Has(day):
				assigned = model.ShiftNight
			case followup.Has(day):
				assigned = model.ShiftFollowup
			case b.fixedRest[staff.ID].Has(day):
				assigned = model.ShiftRest
			default:
				for _, shift := range model.DayShiftTypes {
					if v, ok := b.space.Get(staff.ID, day, shift); ok && res.BoolValue(v) {
						assigned = shift
						break
					}
				}
			}
			shifts = append(shifts, model.GeneratedShift{
				Date:      b.month.DateString(day),
				ShiftType: assigned,
			})
		}
		schedules = append(schedules, model.StaffSchedule{
			StaffID:       staff.ID,
			StaffName:     staff.Name,
			MonthlyShifts: shifts,
		})
	}
	return schedules
}
