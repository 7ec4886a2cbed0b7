package service

import (
	"errors"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

type HabitService struct {
	HabitRepo    *repository.HabitRepository
	CategoryRepo *repository.CategoryRepository
}

func NewHabitService(habitRepo *repository.HabitRepository, categoryRepo *repository.CategoryRepository) *HabitService {
	return &HabitService{
		HabitRepo:    habitRepo,
		CategoryRepo: categoryRepo,
	}
}

// HabitRequest 创建/更新习惯的请求结构
type HabitRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Icon        string `json:"icon" binding:"max=255"`
	Description string `json:"description" binding:"max=1000"`
	CategoryID  uint   `json:"categoryId"`
}

func (s *HabitService) CreateHabit(userID uint, req HabitRequest) (*model.Habit, error) {
	if req.CategoryID > 0 {
		if _, err := s.CategoryRepo.FindByID(req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCategoryNotFound
			}
			return nil, err
		}
	}

	habit := &model.Habit{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
	}
	return habit, s.HabitRepo.Create(habit)
}

func (s *HabitService) GetUserHabits(userID uint) ([]model.Habit, error) {
	return s.HabitRepo.FindByUserID(userID)
}

func (s *HabitService) UpdateHabit(userID, habitID uint, req HabitRequest) (*model.Habit, error) {
	habit, err := s.HabitRepo.FindByIDAndUserID(habitID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrHabitNotFound
		}
		return nil, err
	}

	habit.Name = req.Name
	habit.Icon = req.Icon
	habit.Description = req.Description
	if req.CategoryID > 0 {
		habit.CategoryID = req.CategoryID
	}
	return habit, s.HabitRepo.Update(habit)
}

func (s *HabitService) DeleteHabit(userID, habitID uint) error {
	if _, err := s.HabitRepo.FindByIDAndUserID(habitID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrHabitNotFound
		}
		return err
	}
	return s.HabitRepo.Delete(habitID)
}
