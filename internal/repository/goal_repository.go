package repository

import (
	"habitflow_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// GoalRepository 处理目标的数据访问

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

// Update 更新目标
func (r *GoalRepository) Update(goal *model.Goal) error {
	return r.DB.Model(&model.Goal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"title":        goal.Title,
			"description":  goal.Description,
			"status":       goal.Status,
			"target_value": goal.TargetValue,
			"start_date":   goal.StartDate,
			"end_date":     goal.EndDate,
			"completed_at": goal.CompletedAt,
			"xp_awarded":   goal.XpAwarded,
			"category_id":  goal.CategoryID,
			"updated_at":   time.Now(),
		}).Error
}

func (r *GoalRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Goal{}, id).Error
}

func (r *GoalRepository) FindByID(id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.First(&goal, id).Error
	return &goal, err
}

// FindByUserID 获取用户的所有目标
func (r *GoalRepository) FindByUserID(userID uint) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("user_id = ?", userID).Order("end_date").Find(&goals).Error
	return goals, err
}

// FindByIDAndUserID 根据ID和用户ID查找目标
func (r *GoalRepository) FindByIDAndUserID(id, userID uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error
	return &goal, err
}

// FindByUserIDAndStatus 获取用户特定状态的目标
func (r *GoalRepository) FindByUserIDAndStatus(userID uint, status model.GoalStatus) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("user_id = ? AND status = ?", userID, status).Order("end_date").Find(&goals).Error
	return goals, err
}
