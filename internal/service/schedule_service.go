package service

import (
	"errors"
	"sync"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"
	"habitflow_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ScheduleService 负责例程每周排期的增删改查和跨例程的冲突消解。
// 同一个用户的排期写操作串行执行：冲突消解要先读全量例程再改其中几个，
// 并发写会让两边都以为某天是空闲的。
type ScheduleService struct {
	ScheduleRepo *repository.ScheduleRepository
	RoutineRepo  *repository.RoutineRepository
	DB           *gorm.DB

	mu        sync.Mutex
	userLocks map[uint]*sync.Mutex
}

func NewScheduleService(
	scheduleRepo *repository.ScheduleRepository,
	routineRepo *repository.RoutineRepository,
	db *gorm.DB,
) *ScheduleService {
	return &ScheduleService{
		ScheduleRepo: scheduleRepo,
		RoutineRepo:  routineRepo,
		DB:           db,
		userLocks:    make(map[uint]*sync.Mutex),
	}
}

// lockUser 拿到某个用户的写锁，返回解锁函数
func (s *ScheduleService) lockUser(userID uint) func() {
	s.mu.Lock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// ScheduleResult 排期写操作的结果；AffectedScheduleIDs 列出
// 因冲突消解被动修改的其他排期，调用方可以据此重查
type ScheduleResult struct {
	Schedule            *model.Schedule `json:"schedule"`
	Days                []model.Weekday `json:"days"`
	AffectedScheduleIDs []uint          `json:"affectedScheduleIds"`
}

// Create 为用户自己的例程新建排期并挂接。例程原有的排期引用会被替换，
// 旧的 Schedule 行成为孤儿，调用方需要显式删除不再使用的排期。
func (s *ScheduleService) Create(userID, routineID uint, dayTokens []string) (*ScheduleResult, error) {
	days, ok := model.NormalizeWeekdays(dayTokens)
	if !ok {
		return nil, util.ErrInvalidWeekday
	}

	routine, err := s.RoutineRepo.FindByIDAndUserID(routineID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoutineNotFound
		}
		return nil, err
	}

	unlock := s.lockUser(routine.UserID)
	defer unlock()

	var result *ScheduleResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := resolveScheduleConflicts(tx, routine.UserID, routine.ID, days)
		if err != nil {
			return err
		}

		schedule := &model.Schedule{}
		schedule.SetDays(days)
		if err := tx.Create(schedule).Error; err != nil {
			return err
		}

		routine.ScheduleID = &schedule.ID
		if err := tx.Save(routine).Error; err != nil {
			return err
		}

		result = &ScheduleResult{
			Schedule:            schedule,
			Days:                days,
			AffectedScheduleIDs: affected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("schedule created",
		zap.Uint("routineId", routineID),
		zap.Uint("scheduleId", result.Schedule.ID),
		zap.Uints("affectedScheduleIds", result.AffectedScheduleIDs))
	return result, nil
}

// Update 原地覆盖既有排期的周几集合，身份和行不变。
// 别人的排期按不存在处理。
func (s *ScheduleService) Update(userID, scheduleID uint, dayTokens []string) (*ScheduleResult, error) {
	days, ok := model.NormalizeWeekdays(dayTokens)
	if !ok {
		return nil, util.ErrInvalidWeekday
	}

	schedule, err := s.ScheduleRepo.FindByID(scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScheduleNotFound
		}
		return nil, err
	}

	// 冲突消解需要知道属主，挂在哪个例程上就归谁
	routine, err := s.RoutineRepo.FindByScheduleID(scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScheduleOrphaned
		}
		return nil, err
	}
	if routine.UserID != userID {
		return nil, util.ErrScheduleNotFound
	}

	unlock := s.lockUser(routine.UserID)
	defer unlock()

	var result *ScheduleResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := resolveScheduleConflicts(tx, routine.UserID, routine.ID, days)
		if err != nil {
			return err
		}

		schedule.SetDays(days)
		if err := tx.Save(schedule).Error; err != nil {
			return err
		}

		result = &ScheduleResult{
			Schedule:            schedule,
			Days:                days,
			AffectedScheduleIDs: affected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("schedule updated",
		zap.Uint("scheduleId", scheduleID),
		zap.Uints("affectedScheduleIds", result.AffectedScheduleIDs))
	return result, nil
}

// Delete 删除排期。先清掉例程侧的引用再删行，避免悬空外键。
// 没有任何例程引用的排期说明数据已经不一致，直接报错而不是静默删除。
// 别人的排期按不存在处理。
func (s *ScheduleService) Delete(userID, scheduleID uint) error {
	exists, err := s.ScheduleRepo.ExistsByID(scheduleID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrScheduleNotFound
	}

	routine, err := s.RoutineRepo.FindByScheduleID(scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrScheduleOrphaned
		}
		return err
	}
	if routine.UserID != userID {
		return util.ErrScheduleNotFound
	}

	unlock := s.lockUser(routine.UserID)
	defer unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(routine).Update("schedule_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Schedule{}, scheduleID).Error
	})
}

// FindAll 返回用户每个例程的排期，一个例程一个槽位，
// 未排期的例程保留 nil 空洞，不做压缩
func (s *ScheduleService) FindAll(userID uint) ([]*model.Schedule, error) {
	routines, err := s.RoutineRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	schedules := make([]*model.Schedule, len(routines))
	for i, routine := range routines {
		schedules[i] = routine.Schedule
	}
	return schedules, nil
}

// resolveScheduleConflicts 把 newDays 中与其他例程排期重叠的天
// 从那些排期里移除并保存（可能清空，空集仍然是合法排期）。
// 返回被改动的排期ID；这是不可逆的副作用，调用方想确认只能重查。
func resolveScheduleConflicts(tx *gorm.DB, userID, keepRoutineID uint, newDays []model.Weekday) ([]uint, error) {
	var routines []model.Routine
	if err := tx.Preload("Schedule").
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&routines).Error; err != nil {
		return nil, err
	}

	var affected []uint
	for i := range routines {
		other := &routines[i]
		if other.ID == keepRoutineID || other.Schedule == nil {
			continue
		}

		otherDays := other.Schedule.DaySet()
		if len(otherDays) == 0 {
			continue
		}

		overlap := model.IntersectDays(otherDays, newDays)
		if len(overlap) == 0 {
			continue
		}

		other.Schedule.SetDays(model.SubtractDays(otherDays, overlap))
		if err := tx.Save(other.Schedule).Error; err != nil {
			return nil, err
		}

		logger.Log.Info("conflicting days removed from schedule",
			zap.Uint("routineId", other.ID),
			zap.Uint("scheduleId", other.Schedule.ID),
			zap.Any("removedDays", overlap))
		affected = append(affected, other.Schedule.ID)
	}
	return affected, nil
}
