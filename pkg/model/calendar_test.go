package model

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("ParseMonth failed: %v", err)
	}
	if m.Year != 2026 || m.Month != time.March {
		t.Errorf("Expected 2026-03, got %v", m)
	}
	if m.String() != "2026-03" {
		t.Errorf("Expected string 2026-03, got %s", m.String())
	}

	if _, err := ParseMonth("2026/03"); err == nil {
		t.Error("Expected error for malformed month string")
	}
	if _, err := ParseMonth("2026-13"); err == nil {
		t.Error("Expected error for month 13")
	}
}

func TestMonthDays(t *testing.T) {
	cases := []struct {
		month string
		days  int
	}{
		{"2026-02", 28},
		{"2024-02", 29}, // 闰年
		{"2026-03", 31},
		{"2026-04", 30},
	}
	for _, c := range cases {
		m, err := ParseMonth(c.month)
		if err != nil {
			t.Fatalf("ParseMonth(%s) failed: %v", c.month, err)
		}
		if got := m.Days(); got != c.days {
			t.Errorf("%s: expected %d days, got %d", c.month, c.days, got)
		}
	}
}

func TestMonthWeekday(t *testing.T) {
	m, _ := ParseMonth("2026-03")
	// 2026-03-01 是周日
	if wd := m.Weekday(1); wd != 0 {
		t.Errorf("2026-03-01 should be Sunday (0), got %d", wd)
	}
	if wd := m.Weekday(2); wd != 1 {
		t.Errorf("2026-03-02 should be Monday (1), got %d", wd)
	}
	if wd := m.Weekday(7); wd != 6 {
		t.Errorf("2026-03-07 should be Saturday (6), got %d", wd)
	}
}

func TestMonthDateString(t *testing.T) {
	m, _ := ParseMonth("2026-03")
	if got := m.DateString(5); got != "2026-03-05" {
		t.Errorf("Expected 2026-03-05, got %s", got)
	}
}

func TestMonthDayOf(t *testing.T) {
	m, _ := ParseMonth("2026-03")
	if day := m.DayOf("2026-03-15"); day != 15 {
		t.Errorf("Expected day 15, got %d", day)
	}
	// 非本月与非法日期均返回0
	if day := m.DayOf("2026-04-01"); day != 0 {
		t.Errorf("Expected 0 for other month, got %d", day)
	}
	if day := m.DayOf("not-a-date"); day != 0 {
		t.Errorf("Expected 0 for malformed date, got %d", day)
	}
}

func TestDaySet(t *testing.T) {
	s := NewDaySet(1, 5, 9)
	if !s.Has(5) || s.Has(2) {
		t.Error("DaySet membership mismatch")
	}
	s.Add(2)
	if !s.Has(2) {
		t.Error("Add should make day a member")
	}
}
