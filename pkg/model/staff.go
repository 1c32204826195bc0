package model

// WeeklyWorkCount 每周工作天数目标
type WeeklyWorkCount struct {
	Hope int `json:"hope"` // 期望值（软目标）
	Must int `json:"must"` // 参考值（用于月度目标推算）
}

// Staff 员工（单次求解期间不可变）
type Staff struct {
	ID                     string             `json:"id"`
	Name                   string             `json:"name"`
	Role                   string             `json:"role"`
	Qualifications         []string           `json:"qualifications"`
	WeeklyWorkCount        WeeklyWorkCount    `json:"weeklyWorkCount"`
	MaxConsecutiveWorkDays int                `json:"maxConsecutiveWorkDays"`
	AvailableWeekdays      []int              `json:"availableWeekdays"` // 0=周日..6=周六
	TimeSlotPreference     TimeSlotPreference `json:"timeSlotPreference"`
	IsNightShiftOnly       bool               `json:"isNightShiftOnly"`
	UnavailableDates       []string           `json:"unavailableDates"` // ["2026-03-05", ...]
}

// HasQualification 检查员工是否持有某资格
func (s *Staff) HasQualification(q string) bool {
	for _, have := range s.Qualifications {
		if have == q {
			return true
		}
	}
	return false
}

// WorksOnWeekday 检查员工是否可在某星期出勤（0=周日..6=周六）
func (s *Staff) WorksOnWeekday(weekday int) bool {
	for _, wd := range s.AvailableWeekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// EligibleShiftTypes 返回员工可被分配的班次目录（按偏好派生）
//
// 仅日班: 日勤+休；仅夜班: 夜勤+明け休み+休（无夜班设施时回退日勤+休）；
// 任意: 夜班设施为全目录，否则日间班次+休。
func (s *Staff) EligibleShiftTypes(nightRoster bool) []ShiftType {
	if s.TimeSlotPreference == PreferDayOnly {
		return []ShiftType{ShiftDay, ShiftRest}
	}
	if s.TimeSlotPreference == PreferNightOnly || s.IsNightShiftOnly {
		if nightRoster {
			return []ShiftType{ShiftNight, ShiftFollowup, ShiftRest}
		}
		return []ShiftType{ShiftDay, ShiftRest}
	}
	if nightRoster {
		return AllShiftTypes
	}
	return []ShiftType{ShiftEarly, ShiftDay, ShiftLate, ShiftRest}
}
