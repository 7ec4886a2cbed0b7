package model

// Habit 可以被编入例程分区反复打卡的习惯
type Habit struct {
	BaseModel
	UserID      uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	CategoryID  uint   `gorm:"index" json:"categoryId"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Icon        string `gorm:"size:255" json:"icon"`
	Description string `gorm:"type:text" json:"description"`
}

func (Habit) TableName() string {
	return "habits"
}
