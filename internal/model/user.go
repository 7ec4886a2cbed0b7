package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:100;unique;not null" json:"email"`
	Password string    `gorm:"size:100;not null" json:"-"`
	XP       int       `gorm:"default:0" json:"xp"` // 总经验值
	Language string    `gorm:"size:10;default:'en'" json:"language"`
	Avatar   string    `gorm:"size:255" json:"avatar"`
	Disabled bool      `gorm:"default:false" json:"disabled"`
	LastSeen time.Time `json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
