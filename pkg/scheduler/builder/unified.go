package builder

import (
	"fmt"

	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/engine"
)

// UnifiedBuilder 统一流程的模型构建器：无需外部骨架，
// 固定日解析、变量空间、硬约束与软目标在一次求解内完成。
type UnifiedBuilder struct {
	staffList []model.Staff
	req       *model.ShiftRequirement
	leaves    model.LeaveRequests

	month       model.Month
	nightRoster bool
	nonOp       model.DaySet
	fixedRest   map[string]model.DaySet

	m     *engine.Model
	space *VarSpace
}

// NewUnifiedBuilder 创建统一流程构建器并解析固定休息日
func NewUnifiedBuilder(
	staffList []model.Staff,
	req *model.ShiftRequirement,
	leaves model.LeaveRequests,
) (*UnifiedBuilder, error) {
	month, err := model.ParseMonth(req.TargetMonth)
	if err != nil {
		return nil, fmt.Errorf("解析目标月份失败: %w", err)
	}

	b := &UnifiedBuilder{
		staffList:   staffList,
		req:         req,
		leaves:      leaves,
		month:       month,
		nightRoster: req.HasNightShift(),
		nonOp:       req.NonOperationalDays(month),
		fixedRest:   make(map[string]model.DaySet, len(staffList)),
		m:           engine.NewModel(),
		space:       NewVarSpace(),
	}
	for i := range staffList {
		staff := &staffList[i]
		b.fixedRest[staff.ID] = ResolveFixedRest(staff, month, b.nonOp, leaves, nil)
	}
	return b, nil
}

// Month 返回目标月份
func (b *UnifiedBuilder) Month() model.Month {
	return b.month
}

// NightRoster 是否为夜班设施
func (b *UnifiedBuilder) NightRoster() bool {
	return b.nightRoster
}

// FixedRest 返回某员工的固定休息日集合
func (b *UnifiedBuilder) FixedRest(staffID string) model.DaySet {
	return b.fixedRest[staffID]
}

// HasVariable 判断某 (员工, 日, 班次) 是否存在决策变量
func (b *UnifiedBuilder) HasVariable(staffID string, day int, shift model.ShiftType) bool {
	return b.space.Has(staffID, day, shift)
}

// catalog 返回员工的可分配班次目录
func (b *UnifiedBuilder) catalog(staff *model.Staff) []model.ShiftType {
	return staff.EligibleShiftTypes(b.nightRoster)
}

// Build 构建模型：变量空间 → exactly-one → 硬约束族 → 软目标
func (b *UnifiedBuilder) Build() *engine.Model {
	createVariables(b.m, b.space, b.staffList, b.month, b.fixedRest, b.catalog)
	addExactlyOne(b.m, b.space, b.staffList, b.month, b.catalog)

	shiftTypes := workShiftTypes
	addStaffingMinimum(b.m, b.space, b.staffList, b.req, b.month, shiftTypes)
	addQualificationMinimum(b.m, b.space, b.staffList, b.req, b.month, shiftTypes)
	addMaxConsecutive(b.m, b.space, b.staffList, b.month, b.fixedRest)
	addRestInterval(b.m, b.space, b.staffList, b.month)
	if b.nightRoster {
		addNightChain(b.m, b.space, b.staffList, b.month)
	}

	obj := engine.NewLinear()
	addPreferenceBonus(obj, b.space, b.staffList, b.month)
	addShiftFairness(b.m, obj, b.space, b.staffList, b.month)
	if b.nightRoster {
		addNightFairness(b.m, obj, b.space, b.staffList, b.month)
	}
	addRestSpacing(obj, b.space, b.staffList, b.month, b.fixedRest)
	addWorkCountTarget(b.m, obj, b.space, b.staffList, b.month, b.fixedRest)
	if !obj.Empty() {
		b.m.Maximize(obj)
	}

	return b.m
}

// Extract 将求解赋值转换为整月排班。固定休息日直接输出 休；
// 非固定日读取当日为真的变量（构造上恰好一个）。
func (b *UnifiedBuilder) Extract(res *engine.Result) []model.StaffSchedule {
	schedules := make([]model.StaffSchedule, 0, len(b.staffList))
	for i := range b.staffList {
		staff := &b.staffList[i]
		shifts := make([]model.GeneratedShift, 0, b.month.Days())
		for day := 1; day <= b.month.Days(); day++ {
			assigned := model.ShiftRest
			for _, shift := range b.catalog(staff) {
				if v, ok := b.space.Get(staff.ID, day, shift); ok && res.BoolValue(v) {
					assigned = shift
					break
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
