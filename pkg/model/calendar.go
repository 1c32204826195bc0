package model

import (
	"fmt"
	"time"
)

// Month 目标月份（年月对）
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth 解析 "YYYY-MM" 格式的月份字符串
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("无效的月份格式 %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// String 返回 "YYYY-MM" 格式
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Days 返回该月天数（28-31，闰年自动处理）
func (m Month) Days() int {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, 0).Add(-24 * time.Hour).Day()
}

// Weekday 返回该月第 day 天的星期（0=周日..6=周六，JS 惯例）
func (m Month) Weekday(day int) int {
	return int(time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC).Weekday())
}

// DateString 返回该月第 day 天的 "YYYY-MM-DD" 字符串
func (m Month) DateString(day int) string {
	return fmt.Sprintf("%s-%02d", m.String(), day)
}

// DayOf 若日期字符串属于本月则返回其日序号（1 起），否则返回 0
func (m Month) DayOf(date string) int {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0
	}
	if t.Year() != m.Year || t.Month() != m.Month {
		return 0
	}
	return t.Day()
}

// DaySet 月内日序号集合
type DaySet map[int]bool

// NewDaySet 由日序号列表创建集合
func NewDaySet(days ...int) DaySet {
	s := make(DaySet, len(days))
	for _, d := range days {
		s[d] = true
	}
	return s
}

// Add 加入日序号
func (s DaySet) Add(day int) {
	s[day] = true
}

// Has 判断是否包含日序号
func (s DaySet) Has(day int) bool {
	return s[day]
}
