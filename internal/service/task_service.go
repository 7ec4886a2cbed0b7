package service

import (
	"errors"
	"time"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

type TaskService struct {
	TaskRepo     *repository.TaskRepository
	CategoryRepo *repository.CategoryRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository) *TaskService {
	return &TaskService{
		TaskRepo:     taskRepo,
		CategoryRepo: categoryRepo,
	}
}

// TaskRequest 创建/更新任务的请求结构
type TaskRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Icon        string     `json:"icon" binding:"max=255"`
	Description string     `json:"description" binding:"max=1000"`
	DueDate     *time.Time `json:"dueDate"`
	CategoryID  uint       `json:"categoryId"`
}

func (s *TaskService) CreateTask(userID uint, req TaskRequest) (*model.Task, error) {
	if req.CategoryID > 0 {
		if _, err := s.CategoryRepo.FindByID(req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCategoryNotFound
			}
			return nil, err
		}
	}

	task := &model.Task{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	return task, s.TaskRepo.Create(task)
}

func (s *TaskService) GetUserTasks(userID uint) ([]model.Task, error) {
	return s.TaskRepo.FindByUserID(userID)
}

func (s *TaskService) UpdateTask(userID, taskID uint, req TaskRequest) (*model.Task, error) {
	task, err := s.TaskRepo.FindByIDAndUserID(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}

	task.Name = req.Name
	task.Icon = req.Icon
	task.Description = req.Description
	task.DueDate = req.DueDate
	if req.CategoryID > 0 {
		task.CategoryID = req.CategoryID
	}
	return task, s.TaskRepo.Update(task)
}

// SetTaskDone 标记任务完成/未完成
func (s *TaskService) SetTaskDone(userID, taskID uint, done bool) (*model.Task, error) {
	task, err := s.TaskRepo.FindByIDAndUserID(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}

	task.Done = done
	return task, s.TaskRepo.Update(task)
}

func (s *TaskService) DeleteTask(userID, taskID uint) error {
	if _, err := s.TaskRepo.FindByIDAndUserID(taskID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTaskNotFound
		}
		return err
	}
	return s.TaskRepo.Delete(taskID)
}
