package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrRoutineNotFound      = errors.New("routine not found")
	ErrDiaryRoutineNotFound = errors.New("diary routine not found")
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrItemGroupNotFound    = errors.New("item group not found")
	ErrScheduleOrphaned     = errors.New("schedule is not referenced by any routine")
	ErrInvalidWeekday       = errors.New("invalid weekday token")
	ErrSectionNotFound      = errors.New("routine section not found")
	ErrHabitNotFound        = errors.New("habit not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrGoalNotFound         = errors.New("goal not found")
	ErrGoalAlreadyCompleted = errors.New("goal already completed")
)
