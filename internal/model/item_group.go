package model

import "time"

// HabitGroup 分区内的一个习惯占位，引用 Habit，按 Position 排序。
// SectionID 是非拥有的回指。
type HabitGroup struct {
	BaseModel
	SectionID uint              `gorm:"index;not null" json:"sectionId"`
	HabitID   uint              `gorm:"index;not null" json:"habitId"`
	StartTime string            `gorm:"size:5" json:"startTime"`
	EndTime   string            `gorm:"size:5" json:"endTime"`
	Position  int               `gorm:"not null;default:0" json:"position"`
	Checks    []HabitGroupCheck `gorm:"foreignKey:GroupID" json:"checks,omitempty"`
}

func (HabitGroup) TableName() string {
	return "habit_groups"
}

// TaskGroup 分区内的一个任务占位，引用 Task
type TaskGroup struct {
	BaseModel
	SectionID uint             `gorm:"index;not null" json:"sectionId"`
	TaskID    uint             `gorm:"index;not null" json:"taskId"`
	StartTime string           `gorm:"size:5" json:"startTime"`
	EndTime   string           `gorm:"size:5" json:"endTime"`
	Position  int              `gorm:"not null;default:0" json:"position"`
	Checks    []TaskGroupCheck `gorm:"foreignKey:GroupID" json:"checks,omitempty"`
}

func (TaskGroup) TableName() string {
	return "task_groups"
}

// HabitGroupCheck 某个习惯占位在某个日期的打卡记录，
// 每个 (group, date) 至多一条
type HabitGroupCheck struct {
	BaseModel
	GroupID     uint      `gorm:"not null;index:idx_habit_check_group_date,unique" json:"groupId"`
	Date        time.Time `gorm:"type:date;not null;index:idx_habit_check_group_date,unique" json:"date"`
	Time        string    `gorm:"size:5" json:"time"`
	Checked     bool      `gorm:"default:false" json:"checked"`
	GeneratedXP int       `gorm:"default:0" json:"generatedXp"`
}

func (HabitGroupCheck) TableName() string {
	return "habit_group_checks"
}

// TaskGroupCheck 某个任务占位在某个日期的打卡记录
type TaskGroupCheck struct {
	BaseModel
	GroupID     uint      `gorm:"not null;index:idx_task_check_group_date,unique" json:"groupId"`
	Date        time.Time `gorm:"type:date;not null;index:idx_task_check_group_date,unique" json:"date"`
	Time        string    `gorm:"size:5" json:"time"`
	Checked     bool      `gorm:"default:false" json:"checked"`
	GeneratedXP int       `gorm:"default:0" json:"generatedXp"`
}

func (TaskGroupCheck) TableName() string {
	return "task_group_checks"
}
