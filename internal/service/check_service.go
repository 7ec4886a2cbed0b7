package service

import (
	"errors"
	"time"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

// 单次打卡产生的基础经验值
const checkBaseXP = 10

// CheckService 维护占位的按日打卡记录并驱动经验值结算。
// 每个 (占位, 日期) 至多一条记录；勾选时发放经验，取消时
// 按记录里存的 GeneratedXP 原数退回。
type CheckService struct {
	GroupRepo    *repository.ItemGroupRepository
	HabitRepo    *repository.HabitRepository
	TaskRepo     *repository.TaskRepository
	UserRepo     *repository.UserRepository
	CategoryRepo *repository.CategoryRepository
	DB           *gorm.DB
}

func NewCheckService(
	groupRepo *repository.ItemGroupRepository,
	habitRepo *repository.HabitRepository,
	taskRepo *repository.TaskRepository,
	userRepo *repository.UserRepository,
	categoryRepo *repository.CategoryRepository,
	db *gorm.DB,
) *CheckService {
	return &CheckService{
		GroupRepo:    groupRepo,
		HabitRepo:    habitRepo,
		TaskRepo:     taskRepo,
		UserRepo:     userRepo,
		CategoryRepo: categoryRepo,
		DB:           db,
	}
}

type CheckRequest struct {
	Date    time.Time `json:"date" binding:"required"`
	Time    string    `json:"time"`
	Checked bool      `json:"checked"`
}

// ToggleHabitCheck 写入或翻转某个习惯占位在某天的打卡状态。
// 占位必须属于该用户的例程，否则按不存在处理
func (s *CheckService) ToggleHabitCheck(userID, groupID uint, req CheckRequest) (*model.HabitGroupCheck, error) {
	group, err := s.GroupRepo.FindHabitGroupOwned(groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrItemGroupNotFound
		}
		return nil, err
	}

	habit, err := s.HabitRepo.FindByID(group.HabitID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	var categoryID uint
	if err == nil {
		categoryID = habit.CategoryID
	}

	var result *model.HabitGroupCheck
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var check model.HabitGroupCheck
		findErr := tx.Where("group_id = ? AND date = ?", groupID, dateOf(req.Date)).First(&check).Error

		switch {
		case findErr == nil:
			// 已有记录，状态翻转时结算经验差额
			delta := 0
			if req.Checked && !check.Checked {
				check.GeneratedXP = checkBaseXP
				delta = checkBaseXP
			} else if !req.Checked && check.Checked {
				delta = -check.GeneratedXP
				check.GeneratedXP = 0
			}
			check.Checked = req.Checked
			if req.Time != "" {
				check.Time = req.Time
			}
			if err := tx.Save(&check).Error; err != nil {
				return err
			}
			if err := s.applyXP(tx, userID, categoryID, delta); err != nil {
				return err
			}
			result = &check

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			check = model.HabitGroupCheck{
				GroupID: groupID,
				Date:    dateOf(req.Date),
				Time:    req.Time,
				Checked: req.Checked,
			}
			delta := 0
			if req.Checked {
				check.GeneratedXP = checkBaseXP
				delta = checkBaseXP
			}
			if err := tx.Create(&check).Error; err != nil {
				return err
			}
			if err := s.applyXP(tx, userID, categoryID, delta); err != nil {
				return err
			}
			result = &check

		default:
			return findErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ToggleTaskCheck 任务占位版本的打卡
func (s *CheckService) ToggleTaskCheck(userID, groupID uint, req CheckRequest) (*model.TaskGroupCheck, error) {
	group, err := s.GroupRepo.FindTaskGroupOwned(groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrItemGroupNotFound
		}
		return nil, err
	}

	task, err := s.TaskRepo.FindByID(group.TaskID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	var categoryID uint
	if err == nil {
		categoryID = task.CategoryID
	}

	var result *model.TaskGroupCheck
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var check model.TaskGroupCheck
		findErr := tx.Where("group_id = ? AND date = ?", groupID, dateOf(req.Date)).First(&check).Error

		switch {
		case findErr == nil:
			delta := 0
			if req.Checked && !check.Checked {
				check.GeneratedXP = checkBaseXP
				delta = checkBaseXP
			} else if !req.Checked && check.Checked {
				delta = -check.GeneratedXP
				check.GeneratedXP = 0
			}
			check.Checked = req.Checked
			if req.Time != "" {
				check.Time = req.Time
			}
			if err := tx.Save(&check).Error; err != nil {
				return err
			}
			if err := s.applyXP(tx, userID, categoryID, delta); err != nil {
				return err
			}
			result = &check

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			check = model.TaskGroupCheck{
				GroupID: groupID,
				Date:    dateOf(req.Date),
				Time:    req.Time,
				Checked: req.Checked,
			}
			delta := 0
			if req.Checked {
				check.GeneratedXP = checkBaseXP
				delta = checkBaseXP
			}
			if err := tx.Create(&check).Error; err != nil {
				return err
			}
			if err := s.applyXP(tx, userID, categoryID, delta); err != nil {
				return err
			}
			result = &check

		default:
			return findErr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyXP 把经验差额同时记到用户和所属分类上
func (s *CheckService) applyXP(tx *gorm.DB, userID, categoryID uint, delta int) error {
	if delta == 0 {
		return nil
	}
	if err := tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("xp", gorm.Expr("xp + ?", delta)).Error; err != nil {
		return err
	}
	if categoryID > 0 {
		return tx.Model(&model.Category{}).
			Where("id = ?", categoryID).
			Update("xp", gorm.Expr("xp + ?", delta)).Error
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
