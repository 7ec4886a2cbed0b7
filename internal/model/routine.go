package model

type RoutineVariant string

const (
	// RoutineDiary 目前唯一的例程变体；后续变体作为新的枚举值加入，而不是子类
	RoutineDiary RoutineVariant = "diary"
)

// Routine 用户拥有的例程。Schedule 为可选的一对一引用，
// 同一个 Schedule 不允许同时挂在两个例程上。
type Routine struct {
	BaseModel
	UserID     uint             `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Name       string           `gorm:"size:100;not null" json:"name"`
	Icon       string           `gorm:"size:255" json:"icon"`
	Variant    RoutineVariant   `gorm:"size:20;default:'diary'" json:"variant"`
	ScheduleID *uint            `gorm:"index" json:"scheduleId"`
	Schedule   *Schedule        `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
	Sections   []RoutineSection `gorm:"foreignKey:RoutineID" json:"sections,omitempty"`
}

func (Routine) TableName() string {
	return "routines"
}

// RoutineSection 例程内按 Position 排序的时间段分区。
// RoutineID 是非拥有的回指。
type RoutineSection struct {
	BaseModel
	RoutineID   uint         `gorm:"index;not null" json:"routineId"`
	Name        string       `gorm:"size:100;not null" json:"name"`
	Icon        string       `gorm:"size:255" json:"icon"`
	StartTime   string       `gorm:"size:5" json:"startTime"` // HH:MM
	EndTime     string       `gorm:"size:5" json:"endTime"`
	Position    int          `gorm:"not null;default:0" json:"position"`
	HabitGroups []HabitGroup `gorm:"foreignKey:SectionID" json:"habitGroups,omitempty"`
	TaskGroups  []TaskGroup  `gorm:"foreignKey:SectionID" json:"taskGroups,omitempty"`
}

func (RoutineSection) TableName() string {
	return "routine_sections"
}
