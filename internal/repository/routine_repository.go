package repository

import (
	"habitflow_backend/internal/model"

	"gorm.io/gorm"
)

// RoutineRepository 处理例程及其层级结构的数据访问

type RoutineRepository struct {
	DB *gorm.DB
}

func NewRoutineRepository(db *gorm.DB) *RoutineRepository {
	return &RoutineRepository{DB: db}
}

func (r *RoutineRepository) Create(routine *model.Routine) error {
	return r.DB.Create(routine).Error
}

func (r *RoutineRepository) Save(routine *model.Routine) error {
	return r.DB.Save(routine).Error
}

func (r *RoutineRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Routine{}, id).Error
}

// FindByID 根据ID查找例程（不加载层级）
func (r *RoutineRepository) FindByID(id uint) (*model.Routine, error) {
	var routine model.Routine
	err := r.DB.First(&routine, id).Error
	return &routine, err
}

// FindByIDWithSchedule 根据ID查找例程并带上排期
func (r *RoutineRepository) FindByIDWithSchedule(id uint) (*model.Routine, error) {
	var routine model.Routine
	err := r.DB.Preload("Schedule").First(&routine, id).Error
	return &routine, err
}

// FindByIDWithTree 加载整棵层级树：分区 → 习惯/任务占位 → 打卡记录，
// 分区与占位都按 Position 排序
func (r *RoutineRepository) FindByIDWithTree(id uint) (*model.Routine, error) {
	var routine model.Routine
	err := r.DB.
		Preload("Schedule").
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("routine_sections.position")
		}).
		Preload("Sections.HabitGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("habit_groups.position")
		}).
		Preload("Sections.HabitGroups.Checks", func(db *gorm.DB) *gorm.DB {
			return db.Order("habit_group_checks.date")
		}).
		Preload("Sections.TaskGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_groups.position")
		}).
		Preload("Sections.TaskGroups.Checks", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_group_checks.date")
		}).
		First(&routine, id).Error
	return &routine, err
}

// FindByUserID 某用户的全部例程，带排期，按创建时间排序
func (r *RoutineRepository) FindByUserID(userID uint) ([]model.Routine, error) {
	var routines []model.Routine
	err := r.DB.Preload("Schedule").
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&routines).Error
	return routines, err
}

// FindByScheduleID 查找引用某个排期的例程；没有则返回 gorm.ErrRecordNotFound
func (r *RoutineRepository) FindByScheduleID(scheduleID uint) (*model.Routine, error) {
	var routine model.Routine
	err := r.DB.Where("schedule_id = ?", scheduleID).First(&routine).Error
	return &routine, err
}

// FindByIDAndUserID 校验属主后返回例程
func (r *RoutineRepository) FindByIDAndUserID(id, userID uint) (*model.Routine, error) {
	var routine model.Routine
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&routine).Error
	return &routine, err
}

func (r *RoutineRepository) CreateSection(section *model.RoutineSection) error {
	return r.DB.Create(section).Error
}

func (r *RoutineRepository) FindSectionByID(id uint) (*model.RoutineSection, error) {
	var section model.RoutineSection
	err := r.DB.First(&section, id).Error
	return &section, err
}

func (r *RoutineRepository) DeleteSection(id uint) error {
	return r.DB.Delete(&model.RoutineSection{}, id).Error
}
