package builder

import (
	"context"
	"testing"
	"time"

	"github.com/banci/banci/pkg/model"
	"github.com/banci/banci/pkg/scheduler/engine"
)

// fullRequirement 为整月每天的给定班次生成需求条目
func fullRequirement(t *testing.T, monthStr string, shifts []model.ShiftType, total int) *model.ShiftRequirement {
	t.Helper()
	month, err := model.ParseMonth(monthStr)
	if err != nil {
		t.Fatalf("ParseMonth failed: %v", err)
	}
	req := &model.ShiftRequirement{
		TargetMonth:  monthStr,
		Requirements: make(map[string]model.DailyRequirement),
	}
	for day := 1; day <= month.Days(); day++ {
		for _, shift := range shifts {
			req.Requirements[model.RequirementKey(month, day, shift)] = model.DailyRequirement{TotalStaff: total}
		}
	}
	return req
}

func anyStaff(id string) model.Staff {
	return model.Staff{
		ID:                     id,
		Name:                   "員工" + id,
		MaxConsecutiveWorkDays: 5,
		AvailableWeekdays:      allWeekdays,
		TimeSlotPreference:     model.PreferAny,
	}
}

func TestUnifiedBuilder_EndOfMonthExclusions(t *testing.T) {
	staffList := []model.Staff{anyStaff("s1")}
	req := fullRequirement(t, "2026-03", []model.ShiftType{model.ShiftDay, model.ShiftNight}, 0)

	b, err := NewUnifiedBuilder(staffList, req, nil)
	if err != nil {
		t.Fatalf("NewUnifiedBuilder failed: %v", err)
	}
	b.Build()

	if !b.NightRoster() {
		t.Fatal("Requirement with 夜勤 entries should enable the night roster")
	}

	// 月末最后两天不得有夜勤变量（休息链无法完成）
	days := b.Month().Days()
	if b.HasVariable("s1", days, model.ShiftNight) || b.HasVariable("s1", days-1, model.ShiftNight) {
		t.Error("Night shift variables must not exist on the last two days")
	}
	if !b.HasVariable("s1", days-2, model.ShiftNight) {
		t.Error("Night shift variable should exist three days before month end")
	}

	// 首日不得有明け休み变量（不存在前一天的夜勤）
	if b.HasVariable("s1", 1, model.ShiftFollowup) {
		t.Error("Followup rest variable must not exist on day 1")
	}
	if !b.HasVariable("s1", 2, model.ShiftFollowup) {
		t.Error("Followup rest variable should exist on day 2")
	}
}

func TestUnifiedBuilder_DayOnlyCatalog(t *testing.T) {
	staff := anyStaff("s1")
	staff.TimeSlotPreference = model.PreferDayOnly
	req := fullRequirement(t, "2026-03", []model.ShiftType{model.ShiftDay, model.ShiftNight}, 0)

	b, err := NewUnifiedBuilder([]model.Staff{staff}, req, nil)
	if err != nil {
		t.Fatalf("NewUnifiedBuilder failed: %v", err)
	}
	b.Build()

	for day := 1; day <= b.Month().Days(); day++ {
		for _, shift := range []model.ShiftType{model.ShiftEarly, model.ShiftLate, model.ShiftNight, model.ShiftFollowup} {
			if b.HasVariable("s1", day, shift) {
				t.Fatalf("Day-only staff must not have a %s variable on day %d", shift, day)
			}
		}
	}
	if !b.HasVariable("s1", 2, model.ShiftDay) {
		t.Error("Day-only staff should still have 日勤 variables")
	}
}

func TestUnifiedBuilder_NonOperationalDay(t *testing.T) {
	month, _ := model.ParseMonth("2026-03")
	req := fullRequirement(t, "2026-03", []model.ShiftType{model.ShiftDay}, 1)
	// 去掉15日的全部条目，使其成为非营业日
	delete(req.Requirements, model.RequirementKey(month, 15, model.ShiftDay))

	b, err := NewUnifiedBuilder([]model.Staff{anyStaff("s1")}, req, nil)
	if err != nil {
		t.Fatalf("NewUnifiedBuilder failed: %v", err)
	}
	b.Build()

	for _, shift := range model.AllShiftTypes {
		if b.HasVariable("s1", 15, shift) {
			t.Fatalf("Non-operational day must not have any variable, found %s", shift)
		}
	}
	if !b.FixedRest("s1").Has(15) {
		t.Error("Non-operational day should be fixed rest")
	}
}

func TestUnifiedBuilder_InvalidMonth(t *testing.T) {
	req := &model.ShiftRequirement{TargetMonth: "bogus"}
	if _, err := NewUnifiedBuilder([]model.Staff{anyStaff("s1")}, req, nil); err == nil {
		t.Fatal("Expected error for malformed target month")
	}
}

func TestAbsDifference(t *testing.T) {
	m := engine.NewModel()
	a := m.NewBoolVar()
	b := m.NewBoolVar()
	m.Fix(a, true)
	m.Fix(b, false)

	ea := engine.NewLinear().AddVar(a, 1)
	eb := engine.NewLinear().AddVar(b, 1)
	diff := absDifference(m, ea, eb, 4)

	// 目标推使 diff 贴紧下界 |a-b| = 1
	obj := engine.NewLinear().AddConstant(4).AddInt(diff, -1)
	m.Maximize(obj)

	res, err := engine.NewSolver(engine.Config{Workers: 1, TimeLimit: 5 * time.Second}).Solve(context.Background(), m)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if res.Status != engine.StatusOptimal {
		t.Fatalf("Expected OPTIMAL, got %s", res.Status.Name())
	}
	if got := res.IntValue(diff); got != 1 {
		t.Errorf("Expected |a-b| = 1, got %d", got)
	}
}
