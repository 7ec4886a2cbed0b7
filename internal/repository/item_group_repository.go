package repository

import (
	"habitflow_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// ItemGroupRepository 处理分区内习惯/任务占位及其打卡记录的数据访问

type ItemGroupRepository struct {
	DB *gorm.DB
}

func NewItemGroupRepository(db *gorm.DB) *ItemGroupRepository {
	return &ItemGroupRepository{DB: db}
}

func (r *ItemGroupRepository) CreateHabitGroup(group *model.HabitGroup) error {
	return r.DB.Create(group).Error
}

func (r *ItemGroupRepository) CreateTaskGroup(group *model.TaskGroup) error {
	return r.DB.Create(group).Error
}

func (r *ItemGroupRepository) FindHabitGroupByID(id uint) (*model.HabitGroup, error) {
	var group model.HabitGroup
	err := r.DB.First(&group, id).Error
	return &group, err
}

func (r *ItemGroupRepository) FindTaskGroupByID(id uint) (*model.TaskGroup, error) {
	var group model.TaskGroup
	err := r.DB.First(&group, id).Error
	return &group, err
}

// FindHabitGroupOwned 沿 分区→例程 连到属主，只命中指定用户的占位
func (r *ItemGroupRepository) FindHabitGroupOwned(id, userID uint) (*model.HabitGroup, error) {
	var group model.HabitGroup
	err := r.DB.Select("habit_groups.*").
		Joins("JOIN routine_sections ON routine_sections.id = habit_groups.section_id").
		Joins("JOIN routines ON routines.id = routine_sections.routine_id").
		Where("habit_groups.id = ? AND routines.user_id = ?", id, userID).
		First(&group).Error
	return &group, err
}

// FindTaskGroupOwned 任务占位版本的属主查找
func (r *ItemGroupRepository) FindTaskGroupOwned(id, userID uint) (*model.TaskGroup, error) {
	var group model.TaskGroup
	err := r.DB.Select("task_groups.*").
		Joins("JOIN routine_sections ON routine_sections.id = task_groups.section_id").
		Joins("JOIN routines ON routines.id = routine_sections.routine_id").
		Where("task_groups.id = ? AND routines.user_id = ?", id, userID).
		First(&group).Error
	return &group, err
}

func (r *ItemGroupRepository) DeleteHabitGroup(id uint) error {
	return r.DB.Delete(&model.HabitGroup{}, id).Error
}

func (r *ItemGroupRepository) DeleteTaskGroup(id uint) error {
	return r.DB.Delete(&model.TaskGroup{}, id).Error
}

// FindHabitCheck 查找某占位在某天的打卡记录
func (r *ItemGroupRepository) FindHabitCheck(groupID uint, date time.Time) (*model.HabitGroupCheck, error) {
	var check model.HabitGroupCheck
	err := r.DB.Where("group_id = ? AND date = ?", groupID, dateOnly(date)).First(&check).Error
	return &check, err
}

// FindTaskCheck 查找某任务占位在某天的打卡记录
func (r *ItemGroupRepository) FindTaskCheck(groupID uint, date time.Time) (*model.TaskGroupCheck, error) {
	var check model.TaskGroupCheck
	err := r.DB.Where("group_id = ? AND date = ?", groupID, dateOnly(date)).First(&check).Error
	return &check, err
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
