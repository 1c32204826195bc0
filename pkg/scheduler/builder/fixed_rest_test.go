package builder

import (
	"testing"

	"github.com/banci/banci/pkg/model"
)

var allWeekdays = []int{0, 1, 2, 3, 4, 5, 6}

func TestResolveFixedRest_Union(t *testing.T) {
	month, _ := model.ParseMonth("2026-03")
	staff := &model.Staff{
		ID:                "s1",
		AvailableWeekdays: []int{1, 2, 3, 4, 5, 6}, // 周日不可出勤
		UnavailableDates:  []string{"2026-03-10", "2026-04-10"},
	}
	nonOp := model.NewDaySet(31)
	leaves := model.LeaveRequests{
		"s1": {"2026-03-20": "有給"},
	}

	fixed := ResolveFixedRest(staff, month, nonOp, leaves, nil)

	// 2026-03-01 是周日
	if !fixed.Has(1) || !fixed.Has(8) || !fixed.Has(15) || !fixed.Has(22) || !fixed.Has(29) {
		t.Error("All Sundays should be fixed rest")
	}
	if !fixed.Has(10) {
		t.Error("Unavailable date should be fixed rest")
	}
	if fixed.Has(11) {
		t.Error("Out-of-month unavailable date should not leak into this month")
	}
	if !fixed.Has(20) {
		t.Error("Leave day should be fixed rest")
	}
	if !fixed.Has(31) {
		t.Error("Non-operational day should be fixed rest")
	}
	if fixed.Has(2) {
		t.Error("Ordinary Monday should not be fixed rest")
	}
}

func TestResolveFixedRest_Skeleton(t *testing.T) {
	month, _ := model.ParseMonth("2026-03")
	staff := &model.Staff{ID: "s1", AvailableWeekdays: allWeekdays}
	skel := &model.StaffSkeleton{
		StaffID:                "s1",
		RestDays:               []int{7},
		NightShiftDays:         []int{12},
		NightShiftFollowupDays: []int{13},
	}

	fixed := ResolveFixedRest(staff, month, nil, nil, skel)
	for _, day := range []int{7, 12, 13} {
		if !fixed.Has(day) {
			t.Errorf("Skeleton day %d should be fixed", day)
		}
	}
	if fixed.Has(14) {
		t.Error("Day 14 should not be fixed")
	}
}

func TestResolveFixedRest_Idempotent(t *testing.T) {
	month, _ := model.ParseMonth("2026-03")
	staff := &model.Staff{
		ID:                "s1",
		AvailableWeekdays: []int{1, 3, 5},
		UnavailableDates:  []string{"2026-03-04"},
	}
	leaves := model.LeaveRequests{"s1": {"2026-03-09": "有給"}}

	first := ResolveFixedRest(staff, month, nil, leaves, nil)
	second := ResolveFixedRest(staff, month, nil, leaves, nil)
	if len(first) != len(second) {
		t.Fatalf("Recomputation changed set size: %d vs %d", len(first), len(second))
	}
	for day := range first {
		if !second.Has(day) {
			t.Errorf("Recomputation lost day %d", day)
		}
	}
}

func TestResolveFixedRest_NoAvailableWeekdays(t *testing.T) {
	month, _ := model.ParseMonth("2026-03")
	staff := &model.Staff{ID: "s1", AvailableWeekdays: nil}

	fixed := ResolveFixedRest(staff, month, nil, nil, nil)
	if len(fixed) != month.Days() {
		t.Errorf("Expected every day fixed, got %d of %d", len(fixed), month.Days())
	}
}
