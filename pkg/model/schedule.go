package model

import "time"

// GeneratedShift 单日的排班结果
type GeneratedShift struct {
	Date      string    `json:"date"` // YYYY-MM-DD
	ShiftType ShiftType `json:"shiftType"`
}

// StaffSchedule 单员工整月的排班（按日期升序，覆盖每一天恰好一次）
type StaffSchedule struct {
	StaffID       string           `json:"staffId"`
	StaffName     string           `json:"staffName"`
	MonthlyShifts []GeneratedShift `json:"monthlyShifts"`
}

// SolverStats 求解统计（仅描述性，不被下游消费）
type SolverStats struct {
	Status         string `json:"status"`
	SolveTimeMs    int64  `json:"solveTimeMs"`
	NumVariables   int    `json:"numVariables"`
	NumConstraints int    `json:"numConstraints"`
	ObjectiveValue int    `json:"objectiveValue"`
}

// WarningKind 警告类别
type WarningKind string

const (
	WarnStaffingShortage      WarningKind = "staffing-shortage"      // 人员配置不足
	WarnQualificationShortage WarningKind = "qualification-shortage" // 资格人员不足
)

// Warning 诊断性警告（非错误，可与成功求解共存）
type Warning struct {
	Date      string      `json:"date"`
	ShiftType ShiftType   `json:"shiftType"`
	Kind      WarningKind `json:"constraintKind"`
	Required  int         `json:"required"`
	Available int         `json:"available"`
	Detail    string      `json:"detail"`
}

// SolveResult 一次求解的完整产出
type SolveResult struct {
	Schedule []StaffSchedule `json:"schedule"`
	Stats    SolverStats     `json:"solverStats"`
	Warnings []Warning       `json:"warnings,omitempty"`
	Duration time.Duration   `json:"-"`
}
