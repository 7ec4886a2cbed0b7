package model

// Category 习惯/任务的归属分类，同时作为 XP 的累计桶
type Category struct {
	BaseModel
	UserID uint   `gorm:"index;type:bigint unsigned" json:"userId"` // 0 表示系统预置分类
	Name   string `gorm:"size:100;not null" json:"name"`
	Icon   string `gorm:"size:255" json:"icon"`
	Color  string `gorm:"size:20" json:"color"`
	XP     int    `gorm:"default:0" json:"xp"`
}

func (Category) TableName() string {
	return "categories"
}
