package model

import "time"

// Task 一次性任务，同样可以被编入例程分区
type Task struct {
	BaseModel
	UserID      uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	CategoryID  uint       `gorm:"index" json:"categoryId"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Icon        string     `gorm:"size:255" json:"icon"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"type:date" json:"dueDate"`
	Done        bool       `gorm:"default:false" json:"done"`
}

func (Task) TableName() string {
	return "tasks"
}
