package model

import "time"

type GoalStatus string

const (
	GoalPending    GoalStatus = "pending"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
)

// Goal 带起止日期和目标值的目标；完成时按难度/紧迫度/持续性一次性发放 XP，
// XpAwarded 只在完成时写入一次
type Goal struct {
	BaseModel
	UserID      uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	CategoryID  uint       `gorm:"index" json:"categoryId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      GoalStatus `gorm:"size:20;default:'pending'" json:"status"`
	TargetValue int        `gorm:"not null" json:"targetValue"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"startDate"`
	EndDate     time.Time  `gorm:"type:date;not null" json:"endDate"`
	CompletedAt *time.Time `json:"completedAt"`
	XpAwarded   int        `gorm:"default:0" json:"xpAwarded"`
}

func (Goal) TableName() string {
	return "goals"
}
