package service

import (
	"errors"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

// RoutineService 处理例程及其分区/占位的业务逻辑
type RoutineService struct {
	RoutineRepo  *repository.RoutineRepository
	ScheduleRepo *repository.ScheduleRepository
	GroupRepo    *repository.ItemGroupRepository
	HabitRepo    *repository.HabitRepository
	TaskRepo     *repository.TaskRepository
	DB           *gorm.DB
}

func NewRoutineService(
	routineRepo *repository.RoutineRepository,
	scheduleRepo *repository.ScheduleRepository,
	groupRepo *repository.ItemGroupRepository,
	habitRepo *repository.HabitRepository,
	taskRepo *repository.TaskRepository,
	db *gorm.DB,
) *RoutineService {
	return &RoutineService{
		RoutineRepo:  routineRepo,
		ScheduleRepo: scheduleRepo,
		GroupRepo:    groupRepo,
		HabitRepo:    habitRepo,
		TaskRepo:     taskRepo,
		DB:           db,
	}
}

// CreateRoutineRequest 创建例程的请求结构
type CreateRoutineRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Icon string `json:"icon" binding:"max=255"`
}

func (s *RoutineService) CreateRoutine(userID uint, req CreateRoutineRequest) (*model.Routine, error) {
	routine := &model.Routine{
		UserID:  userID,
		Name:    req.Name,
		Icon:    req.Icon,
		Variant: model.RoutineDiary,
	}
	return routine, s.RoutineRepo.Create(routine)
}

func (s *RoutineService) GetUserRoutines(userID uint) ([]model.Routine, error) {
	return s.RoutineRepo.FindByUserID(userID)
}

// GetRoutineTree 加载整棵层级树，校验属主
func (s *RoutineService) GetRoutineTree(userID, routineID uint) (*model.Routine, error) {
	if _, err := s.ownedRoutine(userID, routineID); err != nil {
		return nil, err
	}
	return s.RoutineRepo.FindByIDWithTree(routineID)
}

// UpdateRoutine 更新例程的名称与图标
func (s *RoutineService) UpdateRoutine(userID, routineID uint, req CreateRoutineRequest) (*model.Routine, error) {
	routine, err := s.ownedRoutine(userID, routineID)
	if err != nil {
		return nil, err
	}

	routine.Name = req.Name
	routine.Icon = req.Icon
	return routine, s.RoutineRepo.Save(routine)
}

// DeleteRoutine 删除例程；挂着的排期先解引用再删行
func (s *RoutineService) DeleteRoutine(userID, routineID uint) error {
	routine, err := s.ownedRoutine(userID, routineID)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if routine.ScheduleID != nil {
			scheduleID := *routine.ScheduleID
			if err := tx.Model(routine).Update("schedule_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Schedule{}, scheduleID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Routine{}, routineID).Error
	})
}

// CreateSectionRequest 创建分区的请求结构
type CreateSectionRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Icon      string `json:"icon" binding:"max=255"`
	StartTime string `json:"startTime" binding:"max=5"`
	EndTime   string `json:"endTime" binding:"max=5"`
	Position  int    `json:"position"`
}

func (s *RoutineService) AddSection(userID, routineID uint, req CreateSectionRequest) (*model.RoutineSection, error) {
	if _, err := s.ownedRoutine(userID, routineID); err != nil {
		return nil, err
	}

	section := &model.RoutineSection{
		RoutineID: routineID,
		Name:      req.Name,
		Icon:      req.Icon,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Position:  req.Position,
	}
	return section, s.RoutineRepo.CreateSection(section)
}

func (s *RoutineService) DeleteSection(userID, sectionID uint) error {
	section, err := s.RoutineRepo.FindSectionByID(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSectionNotFound
		}
		return err
	}
	if _, err := s.ownedRoutine(userID, section.RoutineID); err != nil {
		return err
	}
	return s.RoutineRepo.DeleteSection(sectionID)
}

// CreateItemGroupRequest 在分区里挂习惯/任务占位的请求结构
type CreateItemGroupRequest struct {
	ItemID    uint   `json:"itemId" binding:"required"`
	StartTime string `json:"startTime" binding:"max=5"`
	EndTime   string `json:"endTime" binding:"max=5"`
	Position  int    `json:"position"`
}

func (s *RoutineService) AddHabitGroup(userID, sectionID uint, req CreateItemGroupRequest) (*model.HabitGroup, error) {
	if err := s.checkSectionOwner(userID, sectionID); err != nil {
		return nil, err
	}
	if _, err := s.HabitRepo.FindByIDAndUserID(req.ItemID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrHabitNotFound
		}
		return nil, err
	}

	group := &model.HabitGroup{
		SectionID: sectionID,
		HabitID:   req.ItemID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Position:  req.Position,
	}
	return group, s.GroupRepo.CreateHabitGroup(group)
}

func (s *RoutineService) AddTaskGroup(userID, sectionID uint, req CreateItemGroupRequest) (*model.TaskGroup, error) {
	if err := s.checkSectionOwner(userID, sectionID); err != nil {
		return nil, err
	}
	if _, err := s.TaskRepo.FindByIDAndUserID(req.ItemID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}

	group := &model.TaskGroup{
		SectionID: sectionID,
		TaskID:    req.ItemID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Position:  req.Position,
	}
	return group, s.GroupRepo.CreateTaskGroup(group)
}

func (s *RoutineService) ownedRoutine(userID, routineID uint) (*model.Routine, error) {
	routine, err := s.RoutineRepo.FindByIDAndUserID(routineID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoutineNotFound
		}
		return nil, err
	}
	return routine, nil
}

func (s *RoutineService) checkSectionOwner(userID, sectionID uint) error {
	section, err := s.RoutineRepo.FindSectionByID(sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSectionNotFound
		}
		return err
	}
	_, err = s.ownedRoutine(userID, section.RoutineID)
	return err
}
