// Package model 定义排班求解器的核心数据模型
package model

// ShiftType 班次类型（与原客户端的日文线上格式保持一致）
type ShiftType string

const (
	ShiftEarly    ShiftType = "早番"   // 早班
	ShiftDay      ShiftType = "日勤"   // 日班
	ShiftLate     ShiftType = "遅番"   // 晚班
	ShiftNight    ShiftType = "夜勤"   // 夜班
	ShiftRest     ShiftType = "休"    // 休息日
	ShiftFollowup ShiftType = "明け休み" // 夜班后的跟休
)

// DayShiftTypes 日间工作班次（可分配给普通工作日）
var DayShiftTypes = []ShiftType{ShiftEarly, ShiftDay, ShiftLate}

// NightShiftTypes 夜班设施的追加班次
var NightShiftTypes = []ShiftType{ShiftNight}

// RestShiftTypes 非工作类标记
var RestShiftTypes = []ShiftType{ShiftRest, ShiftFollowup}

// AllShiftTypes 全部班次类型（按目录顺序）
var AllShiftTypes = []ShiftType{
	ShiftEarly, ShiftDay, ShiftLate, ShiftNight, ShiftRest, ShiftFollowup,
}

// IsWorking 判断该班次是否为工作班次
func (s ShiftType) IsWorking() bool {
	switch s {
	case ShiftRest, ShiftFollowup:
		return false
	default:
		return true
	}
}

// TimeSlotPreference 时段偏好
type TimeSlotPreference string

const (
	PreferDayOnly   TimeSlotPreference = "日勤のみ"  // 仅日班
	PreferNightOnly TimeSlotPreference = "夜勤のみ"  // 仅夜班
	PreferAny       TimeSlotPreference = "いつでも可" // 任意时段
)

// ShiftTimeSlot 班次时段定义（目录条目）
type ShiftTimeSlot struct {
	Name      string  `json:"name"`
	Start     string  `json:"start"` // HH:MM
	End       string  `json:"end"`   // HH:MM
	RestHours float64 `json:"restHours"`
}
