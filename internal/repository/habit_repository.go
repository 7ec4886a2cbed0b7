package repository

import (
	"habitflow_backend/internal/model"

	"gorm.io/gorm"
)

type HabitRepository struct {
	DB *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{DB: db}
}

func (r *HabitRepository) Create(habit *model.Habit) error {
	return r.DB.Create(habit).Error
}

func (r *HabitRepository) Update(habit *model.Habit) error {
	return r.DB.Save(habit).Error
}

func (r *HabitRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Habit{}, id).Error
}

func (r *HabitRepository) FindByID(id uint) (*model.Habit, error) {
	var habit model.Habit
	err := r.DB.First(&habit, id).Error
	return &habit, err
}

func (r *HabitRepository) FindByIDAndUserID(id, userID uint) (*model.Habit, error) {
	var habit model.Habit
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error
	return &habit, err
}

func (r *HabitRepository) FindByUserID(userID uint) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.DB.Where("user_id = ?", userID).Order("created_at").Find(&habits).Error
	return habits, err
}
