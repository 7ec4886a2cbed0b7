package repository

import (
	"habitflow_backend/internal/model"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	DB *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func (r *ScheduleRepository) Create(schedule *model.Schedule) error {
	return r.DB.Create(schedule).Error
}

func (r *ScheduleRepository) Save(schedule *model.Schedule) error {
	return r.DB.Save(schedule).Error
}

func (r *ScheduleRepository) FindByID(id uint) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.DB.First(&schedule, id).Error
	return &schedule, err
}

func (r *ScheduleRepository) ExistsByID(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Schedule{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ScheduleRepository) DeleteByID(id uint) error {
	return r.DB.Delete(&model.Schedule{}, id).Error
}
