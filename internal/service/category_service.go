package service

import (
	"errors"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

// CategoryRequest 创建/更新分类的请求结构
type CategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Icon  string `json:"icon" binding:"max=255"`
	Color string `json:"color" binding:"max=20"`
}

func (s *CategoryService) CreateCategory(userID uint, req CategoryRequest) (*model.Category, error) {
	category := &model.Category{
		UserID: userID,
		Name:   req.Name,
		Icon:   req.Icon,
		Color:  req.Color,
	}
	return category, s.CategoryRepo.Create(category)
}

func (s *CategoryService) GetUserCategories(userID uint) ([]model.Category, error) {
	return s.CategoryRepo.FindByUserID(userID)
}

func (s *CategoryService) UpdateCategory(userID, categoryID uint, req CategoryRequest) (*model.Category, error) {
	category, err := s.ownedCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Icon = req.Icon
	category.Color = req.Color
	return category, s.CategoryRepo.Update(category)
}

func (s *CategoryService) DeleteCategory(userID, categoryID uint) error {
	if _, err := s.ownedCategory(userID, categoryID); err != nil {
		return err
	}
	return s.CategoryRepo.Delete(categoryID)
}

// ownedCategory 预置分类（user_id=0）不允许修改或删除
func (s *CategoryService) ownedCategory(userID, categoryID uint) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, err
	}
	if category.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return category, nil
}
