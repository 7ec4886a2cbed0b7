package repository

import (
	"habitflow_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) Update(category *model.Category) error {
	return r.DB.Save(category).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Category{}, id).Error
}

func (r *CategoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, id).Error
	return &category, err
}

// FindByUserID 用户自建分类加上系统预置分类
func (r *CategoryRepository) FindByUserID(userID uint) ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Where("user_id = ? OR user_id = 0", userID).Order("created_at").Find(&categories).Error
	return categories, err
}

// UpdateXP 原子累加分类经验值
func (r *CategoryRepository) UpdateXP(categoryID uint, delta int) error {
	return r.DB.Model(&model.Category{}).
		Where("id = ?", categoryID).
		Update("xp", gorm.Expr("xp + ?", delta)).Error
}
