package solver

import (
	"fmt"

	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/builder"
)

// warnShiftTypes 警告扫描的班次顺序
var warnShiftTypes = []model.ShiftType{
	model.ShiftEarly, model.ShiftDay, model.ShiftLate, model.ShiftNight,
}

// collectWarnings 在求解前扫描需求，对可用人数不足的 (日, 班次)
// 生成人员配置缺口警告。可用人数按模型中实际存在决策变量计数，
// 与配置下限约束的空洞跳过逻辑保持一致。
func collectWarnings(
	b *builder.UnifiedBuilder,
	staffList []model.Staff,
	req *model.ShiftRequirement,
) []model.Warning {
	month := b.Month()
	var warnings []model.Warning

	for day := 1; day <= month.Days(); day++ {
		for _, shift := range warnShiftTypes {
			dayReq, ok := req.Lookup(month, day, shift)
			if !ok {
				continue
			}

			if dayReq.TotalStaff > 0 {
				available := 0
				for i := range staffList {
					if b.HasVariable(staffList[i].ID, day, shift) {
						available++
					}
				}
				if available < dayReq.TotalStaff {
					warnings = append(warnings, model.Warning{
						Date:      month.DateString(day),
						ShiftType: shift,
						Kind:      model.WarnStaffingShortage,
						Required:  dayReq.TotalStaff,
						Available: available,
						Detail: fmt.Sprintf("%s %s 需要 %d 人，仅 %d 人可用",
							month.DateString(day), shift, dayReq.TotalStaff, available),
					})
				}
			}

			for _, qual := range dayReq.RequiredQualifications {
				if qual.Count <= 0 {
					continue
				}
				available := 0
				for i := range staffList {
					staff := &staffList[i]
					if staff.HasQualification(qual.Qualification) && b.HasVariable(staff.ID, day, shift) {
						available++
					}
				}
				if available < qual.Count {
					warnings = append(warnings, model.Warning{
						Date:      month.DateString(day),
						ShiftType: shift,
						Kind:      model.WarnQualificationShortage,
						Required:  qual.Count,
						Available: available,
						Detail: fmt.Sprintf("%s %s 需要 %d 名持有 '%s' 资格的员工，仅 %d 人可用",
							month.DateString(day), shift, qual.Count, qual.Qualification, available),
					})
				}
			}
		}
	}

	return warnings
}
