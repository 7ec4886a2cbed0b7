package service

import (
	"errors"
	"reflect"
	"testing"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

func newScheduleService(db *gorm.DB) *ScheduleService {
	return NewScheduleService(
		repository.NewScheduleRepository(db),
		repository.NewRoutineRepository(db),
		db,
	)
}

func createRoutine(t *testing.T, db *gorm.DB, userID uint, name string) *model.Routine {
	t.Helper()
	routine := &model.Routine{
		UserID:  userID,
		Name:    name,
		Variant: model.RoutineDiary,
	}
	if err := db.Create(routine).Error; err != nil {
		t.Fatalf("create routine %s: %v", name, err)
	}
	return routine
}

func scheduleDays(t *testing.T, db *gorm.DB, scheduleID uint) []model.Weekday {
	t.Helper()
	var schedule model.Schedule
	if err := db.First(&schedule, scheduleID).Error; err != nil {
		t.Fatalf("load schedule %d: %v", scheduleID, err)
	}
	return schedule.DaySet()
}

func TestCreateScheduleAttachesToRoutine(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)
	routine := createRoutine(t, db, 1, "morning")

	result, err := svc.Create(1, routine.ID, []string{"MONDAY", "WEDNESDAY"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	want := []model.Weekday{model.Monday, model.Wednesday}
	if !reflect.DeepEqual(result.Days, want) {
		t.Errorf("Days = %v, want %v", result.Days, want)
	}
	if len(result.AffectedScheduleIDs) != 0 {
		t.Errorf("AffectedScheduleIDs = %v, want empty", result.AffectedScheduleIDs)
	}

	var reloaded model.Routine
	if err := db.First(&reloaded, routine.ID).Error; err != nil {
		t.Fatalf("reload routine: %v", err)
	}
	if reloaded.ScheduleID == nil || *reloaded.ScheduleID != result.Schedule.ID {
		t.Errorf("routine.ScheduleID = %v, want %d", reloaded.ScheduleID, result.Schedule.ID)
	}
}

func TestCreateScheduleRoutineNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)

	if _, err := svc.Create(1, 999, []string{"MONDAY"}); !errors.Is(err, util.ErrRoutineNotFound) {
		t.Fatalf("err = %v, want ErrRoutineNotFound", err)
	}
}

func TestCreateScheduleInvalidWeekday(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)
	routine := createRoutine(t, db, 1, "morning")

	if _, err := svc.Create(1, routine.ID, []string{"MONDAY", "SOMEDAY"}); !errors.Is(err, util.ErrInvalidWeekday) {
		t.Fatalf("err = %v, want ErrInvalidWeekday", err)
	}
}

func TestCreateScheduleResolvesConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)

	routineA := createRoutine(t, db, 1, "morning")
	routineB := createRoutine(t, db, 1, "evening")

	resultA, err := svc.Create(1, routineA.ID, []string{"MONDAY", "WEDNESDAY"})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}

	resultB, err := svc.Create(1, routineB.ID, []string{"WEDNESDAY", "FRIDAY"})
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	// B 抢走了周三，A 只剩周一
	if !reflect.DeepEqual(resultB.AffectedScheduleIDs, []uint{resultA.Schedule.ID}) {
		t.Errorf("AffectedScheduleIDs = %v, want [%d]", resultB.AffectedScheduleIDs, resultA.Schedule.ID)
	}
	if got := scheduleDays(t, db, resultA.Schedule.ID); !reflect.DeepEqual(got, []model.Weekday{model.Monday}) {
		t.Errorf("schedule A days = %v, want [MONDAY]", got)
	}
	if got := scheduleDays(t, db, resultB.Schedule.ID); !reflect.DeepEqual(got, []model.Weekday{model.Wednesday, model.Friday}) {
		t.Errorf("schedule B days = %v, want [WEDNESDAY FRIDAY]", got)
	}
}

func TestUpdateScheduleResolvesConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)

	routineA := createRoutine(t, db, 1, "morning")
	routineB := createRoutine(t, db, 1, "evening")

	resultA, err := svc.Create(1, routineA.ID, []string{"MONDAY"})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	resultB, err := svc.Create(1, routineB.ID, []string{"WEDNESDAY", "FRIDAY"})
	if err != nil {
		t.Fatalf("create B: %v", err)
	}

	// A 改到周三周四，抢走 B 的周三
	updated, err := svc.Update(1, resultA.Schedule.ID, []string{"WEDNESDAY", "THURSDAY"})
	if err != nil {
		t.Fatalf("update A: %v", err)
	}

	if !reflect.DeepEqual(updated.AffectedScheduleIDs, []uint{resultB.Schedule.ID}) {
		t.Errorf("AffectedScheduleIDs = %v, want [%d]", updated.AffectedScheduleIDs, resultB.Schedule.ID)
	}
	if got := scheduleDays(t, db, resultA.Schedule.ID); !reflect.DeepEqual(got, []model.Weekday{model.Wednesday, model.Thursday}) {
		t.Errorf("schedule A days = %v, want [WEDNESDAY THURSDAY]", got)
	}
	if got := scheduleDays(t, db, resultB.Schedule.ID); !reflect.DeepEqual(got, []model.Weekday{model.Friday}) {
		t.Errorf("schedule B days = %v, want [FRIDAY]", got)
	}
}

func TestConflictCanEmptyOtherSchedule(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)

	routineA := createRoutine(t, db, 1, "morning")
	routineB := createRoutine(t, db, 1, "evening")

	resultA, err := svc.Create(1, routineA.ID, []string{"MONDAY", "TUESDAY"})
	if err != nil {
		t.Fatalf("create A: %v", err)
	}
	if _, err := svc.Create(1, routineB.ID, []string{"MONDAY", "TUESDAY"}); err != nil {
		t.Fatalf("create B: %v", err)
	}

	// A 的排期被清空但行还在
	if got := scheduleDays(t, db, resultA.Schedule.ID); len(got) != 0 {
		t.Errorf("schedule A days = %v, want empty", got)
	}
	var count int64
	db.Model(&model.Schedule{}).Where("id = ?", resultA.Schedule.ID).Count(&count)
	if count != 1 {
		t.Errorf("schedule A row count = %d, want 1", count)
	}
}

func TestConflictIgnoresOtherUsers(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)

	mine := createRoutine(t, db, 1, "mine")
	theirs := createRoutine(t, db, 2, "theirs")

	resultTheirs, err := svc.Create(2, theirs.ID, []string{"MONDAY"})
	if err != nil {
		t.Fatalf("create theirs: %v", err)
	}
	resultMine, err := svc.Create(1, mine.ID, []string{"MONDAY"})
	if err != nil {
		t.Fatalf("create mine: %v", err)
	}

	if len(resultMine.AffectedScheduleIDs) != 0 {
		t.Errorf("AffectedScheduleIDs = %v, want empty", resultMine.AffectedScheduleIDs)
	}
	if got := scheduleDays(t, db, resultTheirs.Schedule.ID); !reflect.DeepEqual(got, []model.Weekday{model.Monday}) {
		t.Errorf("other user's schedule = %v, want [MONDAY]", got)
	}
}

func TestUpdateOrphanedSchedule(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)

	orphan := &model.Schedule{}
	orphan.SetDays([]model.Weekday{model.Monday})
	if err := db.Create(orphan).Error; err != nil {
		t.Fatalf("create orphan: %v", err)
	}

	if _, err := svc.Update(1, orphan.ID, []string{"TUESDAY"}); !errors.Is(err, util.ErrScheduleOrphaned) {
		t.Fatalf("err = %v, want ErrScheduleOrphaned", err)
	}
}

func TestDeleteSchedule(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)
	routine := createRoutine(t, db, 1, "morning")

	result, err := svc.Create(1, routine.ID, []string{"MONDAY"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(1, result.Schedule.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var reloaded model.Routine
	if err := db.First(&reloaded, routine.ID).Error; err != nil {
		t.Fatalf("reload routine: %v", err)
	}
	if reloaded.ScheduleID != nil {
		t.Errorf("routine.ScheduleID = %v, want nil", *reloaded.ScheduleID)
	}

	if err := svc.Delete(1, result.Schedule.ID); !errors.Is(err, util.ErrScheduleNotFound) {
		t.Fatalf("second delete err = %v, want ErrScheduleNotFound", err)
	}
}

func TestDeleteOrphanedSchedulePreservesRow(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)

	orphan := &model.Schedule{}
	orphan.SetDays([]model.Weekday{model.Monday})
	if err := db.Create(orphan).Error; err != nil {
		t.Fatalf("create orphan: %v", err)
	}

	if err := svc.Delete(1, orphan.ID); !errors.Is(err, util.ErrScheduleOrphaned) {
		t.Fatalf("err = %v, want ErrScheduleOrphaned", err)
	}

	var count int64
	db.Model(&model.Schedule{}).Where("id = ?", orphan.ID).Count(&count)
	if count != 1 {
		t.Errorf("orphan row count = %d, want 1", count)
	}
}

func TestFindAllKeepsUnscheduledHoles(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)

	routineA := createRoutine(t, db, 1, "scheduled")
	createRoutine(t, db, 1, "unscheduled")

	result, err := svc.Create(1, routineA.ID, []string{"MONDAY"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	schedules, err := svc.FindAll(1)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("len = %d, want 2", len(schedules))
	}
	if schedules[0] == nil || schedules[0].ID != result.Schedule.ID {
		t.Errorf("slot 0 = %v, want schedule %d", schedules[0], result.Schedule.ID)
	}
	if schedules[1] != nil {
		t.Errorf("slot 1 = %v, want nil", schedules[1])
	}
}

func TestScheduleOwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := newScheduleService(db)

	routine := createRoutine(t, db, 1, "morning")
	result, err := svc.Create(1, routine.ID, []string{"MONDAY"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 用户2摸不到用户1的例程和排期
	if _, err := svc.Create(2, routine.ID, []string{"TUESDAY"}); !errors.Is(err, util.ErrRoutineNotFound) {
		t.Errorf("foreign create err = %v, want ErrRoutineNotFound", err)
	}
	if _, err := svc.Update(2, result.Schedule.ID, []string{"TUESDAY"}); !errors.Is(err, util.ErrScheduleNotFound) {
		t.Errorf("foreign update err = %v, want ErrScheduleNotFound", err)
	}
	if err := svc.Delete(2, result.Schedule.ID); !errors.Is(err, util.ErrScheduleNotFound) {
		t.Errorf("foreign delete err = %v, want ErrScheduleNotFound", err)
	}

	// 排期原样保留
	var count int64
	db.Model(&model.Schedule{}).Where("id = ?", result.Schedule.ID).Count(&count)
	if count != 1 {
		t.Errorf("schedule row count = %d, want 1", count)
	}
	if got := scheduleDays(t, db, result.Schedule.ID); !reflect.DeepEqual(got, []model.Weekday{model.Monday}) {
		t.Errorf("days = %v, want [MONDAY]", got)
	}
}
