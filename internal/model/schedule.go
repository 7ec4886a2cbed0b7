package model

import (
	"encoding/json"
	"strings"
)

// Weekday 周几标记，与 java.time.DayOfWeek 的序列化值保持一致
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

// weekOrder 规范化排序用，集合语义本身与顺序无关
var weekOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday 解析单个周几标记，大小写不敏感
func ParseWeekday(token string) (Weekday, bool) {
	w := Weekday(strings.ToUpper(strings.TrimSpace(token)))
	for _, d := range weekOrder {
		if d == w {
			return w, true
		}
	}
	return "", false
}

// NormalizeWeekdays 校验并去重，返回按周一到周日排序的集合；
// 任何非法标记都会让整个集合被拒绝
func NormalizeWeekdays(tokens []string) ([]Weekday, bool) {
	seen := make(map[Weekday]bool, len(tokens))
	for _, t := range tokens {
		w, ok := ParseWeekday(t)
		if !ok {
			return nil, false
		}
		seen[w] = true
	}
	out := make([]Weekday, 0, len(seen))
	for _, d := range weekOrder {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out, true
}

// Schedule 一个例程的每周排期，Days 以 JSON 数组存储周几集合。
// 一个 Schedule 同一时间最多属于一个 Routine。
type Schedule struct {
	BaseModel
	Days string `gorm:"type:json" json:"-"`
}

func (Schedule) TableName() string {
	return "schedules"
}

// DaySet 反序列化周几集合，空列或损坏数据按空集处理
func (s *Schedule) DaySet() []Weekday {
	if s.Days == "" {
		return nil
	}
	var days []Weekday
	if err := json.Unmarshal([]byte(s.Days), &days); err != nil {
		return nil
	}
	return days
}

// SetDays 写入规范化后的周几集合
func (s *Schedule) SetDays(days []Weekday) {
	if days == nil {
		days = []Weekday{}
	}
	bytes, _ := json.Marshal(days)
	s.Days = string(bytes)
}

// ContainsDay 判断集合是否包含某天
func (s *Schedule) ContainsDay(day Weekday) bool {
	for _, d := range s.DaySet() {
		if d == day {
			return true
		}
	}
	return false
}

// IntersectDays 返回两个集合的交集，按规范顺序
func IntersectDays(a, b []Weekday) []Weekday {
	inA := make(map[Weekday]bool, len(a))
	for _, d := range a {
		inA[d] = true
	}
	var out []Weekday
	for _, d := range weekOrder {
		if !inA[d] {
			continue
		}
		for _, o := range b {
			if o == d {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// SubtractDays 从 a 中移除 b 中出现的所有天
func SubtractDays(a, b []Weekday) []Weekday {
	inB := make(map[Weekday]bool, len(b))
	for _, d := range b {
		inB[d] = true
	}
	out := make([]Weekday, 0, len(a))
	for _, d := range a {
		if !inB[d] {
			out = append(out, d)
		}
	}
	return out
}
