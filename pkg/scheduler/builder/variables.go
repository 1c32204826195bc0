package builder

import (
	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/engine"
)

// VarKey 决策变量键 (员工, 日, 班次)
type VarKey struct {
	StaffID string
	Day     int
	Shift   model.ShiftType
}

// VarSpace 决策变量空间。变量创建一次后不再变更，
// 约束族、目标函数与结果提取均只读。
type VarSpace struct {
	vars map[VarKey]engine.BoolVar
}

// NewVarSpace 创建空变量空间
func NewVarSpace() *VarSpace {
	return &VarSpace{vars: make(map[VarKey]engine.BoolVar)}
}

// Get 查询变量
func (s *VarSpace) Get(staffID string, day int, shift model.ShiftType) (engine.BoolVar, bool) {
	v, ok := s.vars[VarKey{StaffID: staffID, Day: day, Shift: shift}]
	return v, ok
}

// Has 判断变量是否存在
func (s *VarSpace) Has(staffID string, day int, shift model.ShiftType) bool {
	_, ok := s.Get(staffID, day, shift)
	return ok
}

// Len 返回变量总数
func (s *VarSpace) Len() int {
	return len(s.vars)
}

func (s *VarSpace) add(m *engine.Model, staffID string, day int, shift model.ShiftType) {
	s.vars[VarKey{StaffID: staffID, Day: day, Shift: shift}] = m.NewBoolVar()
}

// createVariables 为每名员工的每个非固定日按可分配目录生成布尔变量。
//
// 月末最后两天不生成夜勤变量（夜班链无法在月内完结），
// 月初首日不生成明け休み变量（不存在前一日夜班）。
// 变量编号顺序严格为 员工顺序 × 日 × 目录顺序，保证确定性。
func createVariables(
	m *engine.Model,
	space *VarSpace,
	staffList []model.Staff,
	month model.Month,
	fixedRest map[string]model.DaySet,
	catalog func(*model.Staff) []model.ShiftType,
) {
	days := month.Days()
	for i := range staffList {
		staff := &staffList[i]
		fixed := fixedRest[staff.ID]
		for day := 1; day <= days; day++ {
			if fixed.Has(day) {
				continue
			}
			for _, shift := range catalog(staff) {
				if shift == model.ShiftNight && day > days-2 {
					continue
				}
				if shift == model.ShiftFollowup && day == 1 {
					continue
				}
				space.add(m, staff.ID, day, shift)
			}
		}
	}
}

// addExactlyOne 对每名员工的每个有变量的日追加 exactly-one 约束。
// 与固定日的隐式状态合起来，保证整月每天恰好一个状态。
func addExactlyOne(
	m *engine.Model,
	space *VarSpace,
	staffList []model.Staff,
	month model.Month,
	catalog func(*model.Staff) []model.ShiftType,
) {
	for i := range staffList {
		staff := &staffList[i]
		for day := 1; day <= month.Days(); day++ {
			var dayVars []engine.BoolVar
			for _, shift := range catalog(staff) {
				if v, ok := space.Get(staff.ID, day, shift); ok {
					dayVars = append(dayVars, v)
				}
			}
			if len(dayVars) > 0 {
				m.AddExactlyOne(dayVars)
			}
		}
	}
}

// absDifference 绝对差线性化：引入 [0, bound] 的辅助整数 d，
// 约束 d >= a-b 且 d >= b-a。目标函数中全部公平性/目标接近项复用此模式。
func absDifference(m *engine.Model, a, b *engine.LinearExpr, bound int) engine.IntVar {
	d := m.NewIntVar(bound)
	geA := engine.NewLinear().AddInt(d, 1).AddExpr(a, -1).AddExpr(b, 1)
	m.AddGE(geA, 0)
	geB := engine.NewLinear().AddInt(d, 1).AddExpr(a, 1).AddExpr(b, -1)
	m.AddGE(geB, 0)
	return d
}
