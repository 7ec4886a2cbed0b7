package service

import (
	"errors"
	"time"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

// GoalService 处理目标的业务逻辑
type GoalService struct {
	GoalRepo     *repository.GoalRepository
	UserRepo     *repository.UserRepository
	CategoryRepo *repository.CategoryRepository
	XpLevel      *XpLevelService
	DB           *gorm.DB
}

func NewGoalService(
	goalRepo *repository.GoalRepository,
	userRepo *repository.UserRepository,
	categoryRepo *repository.CategoryRepository,
	xpLevel *XpLevelService,
	db *gorm.DB,
) *GoalService {
	return &GoalService{
		GoalRepo:     goalRepo,
		UserRepo:     userRepo,
		CategoryRepo: categoryRepo,
		XpLevel:      xpLevel,
		DB:           db,
	}
}

// CreateGoalRequest 创建目标的请求结构
type CreateGoalRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description" binding:"max=1000"`
	TargetValue int       `json:"targetValue" binding:"required,min=1"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	CategoryID  uint      `json:"categoryId"`
}

// UpdateGoalRequest 更新目标的请求结构
type UpdateGoalRequest struct {
	Title       string    `json:"title" binding:"max=255"`
	Description string    `json:"description" binding:"max=1000"`
	TargetValue int       `json:"targetValue"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	CategoryID  uint      `json:"categoryId"`
}

func (s *GoalService) CreateGoal(userID uint, req CreateGoalRequest) (*model.Goal, error) {
	goal := &model.Goal{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.GoalPending,
		TargetValue: req.TargetValue,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	return goal, s.GoalRepo.Create(goal)
}

func (s *GoalService) GetUserGoals(userID uint) ([]model.Goal, error) {
	return s.GoalRepo.FindByUserID(userID)
}

func (s *GoalService) GetGoalByID(userID, goalID uint) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByIDAndUserID(goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) UpdateGoal(userID, goalID uint, req UpdateGoalRequest) (*model.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		goal.Title = req.Title
	}
	if req.Description != "" {
		goal.Description = req.Description
	}
	if req.TargetValue > 0 {
		goal.TargetValue = req.TargetValue
	}
	if !req.StartDate.IsZero() {
		goal.StartDate = req.StartDate
	}
	if !req.EndDate.IsZero() {
		goal.EndDate = req.EndDate
	}
	if req.CategoryID > 0 {
		goal.CategoryID = req.CategoryID
	}

	return goal, s.GoalRepo.Update(goal)
}

func (s *GoalService) DeleteGoal(userID, goalID uint) error {
	if _, err := s.GetGoalByID(userID, goalID); err != nil {
		return err
	}
	return s.GoalRepo.Delete(goalID)
}

// GoalCompletionResult 完成目标的结果：发放的经验和结算后的等级进度
type GoalCompletionResult struct {
	Goal     *model.Goal    `json:"goal"`
	XpReward int            `json:"xpReward"`
	Progress *LevelProgress `json:"progress"`
}

// CompleteGoal 标记目标完成并发放经验，奖励只发这一次。
// 状态检查放在更新条件里，并发的两次完成只有一次能改到行
func (s *GoalService) CompleteGoal(userID, goalID uint) (*GoalCompletionResult, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reward := GoalXpReward(goal.TargetValue, goal.StartDate, goal.EndDate, goal.EndDate.After(now))

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		goal.Status = model.GoalCompleted
		goal.CompletedAt = &now
		goal.XpAwarded = reward
		res := tx.Model(&model.Goal{}).
			Where("id = ? AND status <> ?", goal.ID, model.GoalCompleted).
			Updates(map[string]interface{}{
				"status":       goal.Status,
				"completed_at": goal.CompletedAt,
				"xp_awarded":   goal.XpAwarded,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrGoalAlreadyCompleted
		}

		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Update("xp", gorm.Expr("xp + ?", reward)).Error; err != nil {
			return err
		}

		if goal.CategoryID > 0 {
			return tx.Model(&model.Category{}).
				Where("id = ?", goal.CategoryID).
				Update("xp", gorm.Expr("xp + ?", reward)).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.XpLevel.LevelFor(user.XP)
	if err != nil {
		return nil, err
	}

	return &GoalCompletionResult{
		Goal:     goal,
		XpReward: reward,
		Progress: progress,
	}, nil
}
