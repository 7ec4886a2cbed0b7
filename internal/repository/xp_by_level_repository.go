package repository

import (
	"habitflow_backend/internal/model"

	"gorm.io/gorm"
)

// XpByLevelRepository 等级经验参照表的数据访问，表在启动时播种后只读

type XpByLevelRepository struct {
	DB *gorm.DB
}

func NewXpByLevelRepository(db *gorm.DB) *XpByLevelRepository {
	return &XpByLevelRepository{DB: db}
}

func (r *XpByLevelRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.XpByLevel{}).Count(&count).Error
	return count, err
}

func (r *XpByLevelRepository) CreateAll(rows []model.XpByLevel) error {
	return r.DB.Create(&rows).Error
}

// FindAll 按等级升序返回整张参照表
func (r *XpByLevelRepository) FindAll() ([]model.XpByLevel, error) {
	var rows []model.XpByLevel
	err := r.DB.Order("level").Find(&rows).Error
	return rows, err
}
