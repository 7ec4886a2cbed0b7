package model

// XpByLevel 等级到累计 XP 门槛的预生成参照行，进程启动时播种一次，
// 之后只读。门槛随等级严格递增，0 级门槛为 0。
type XpByLevel struct {
	Level      int `gorm:"primaryKey;autoIncrement:false" json:"level"`
	RequiredXP int `gorm:"not null" json:"requiredXp"`
}

func (XpByLevel) TableName() string {
	return "xp_by_levels"
}
