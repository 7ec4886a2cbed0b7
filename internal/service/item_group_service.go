package service

import (
	"errors"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

// ItemGroupService 在例程层级树里定位单个习惯/任务占位。
// 历史接口用同一个ID同时充当例程ID和占位ID：先按这个ID加载
// 日记例程，再在它的所有分区里找同ID的占位。占位不在任何
// 分区里属于软缺失，返回 (nil, nil)；例程本身不存在才算硬失败。
type ItemGroupService struct {
	RoutineRepo *repository.RoutineRepository
}

func NewItemGroupService(routineRepo *repository.RoutineRepository) *ItemGroupService {
	return &ItemGroupService{RoutineRepo: routineRepo}
}

func (s *ItemGroupService) loadDiaryRoutine(userID, id uint) (*model.Routine, error) {
	routine, err := s.RoutineRepo.FindByIDWithTree(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrDiaryRoutineNotFound
		}
		return nil, err
	}
	// 别人的例程按不存在处理
	if routine.UserID != userID || routine.Variant != model.RoutineDiary {
		return nil, util.ErrDiaryRoutineNotFound
	}
	return routine, nil
}

// FindHabitGroup 按分区顺序摊平所有习惯占位，返回第一个ID匹配的
func (s *ItemGroupService) FindHabitGroup(userID, id uint) (*model.HabitGroup, error) {
	routine, err := s.loadDiaryRoutine(userID, id)
	if err != nil {
		return nil, err
	}

	for i := range routine.Sections {
		for j := range routine.Sections[i].HabitGroups {
			group := &routine.Sections[i].HabitGroups[j]
			if group.ID == id {
				return group, nil
			}
		}
	}
	return nil, nil
}

// FindTaskGroup 任务占位版本的查找
func (s *ItemGroupService) FindTaskGroup(userID, id uint) (*model.TaskGroup, error) {
	routine, err := s.loadDiaryRoutine(userID, id)
	if err != nil {
		return nil, err
	}

	for i := range routine.Sections {
		for j := range routine.Sections[i].TaskGroups {
			group := &routine.Sections[i].TaskGroups[j]
			if group.ID == id {
				return group, nil
			}
		}
	}
	return nil, nil
}
