package service

import (
	"errors"
	"testing"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

// buildDiaryTree 建一个日记例程，并在其分区里放一个与例程同ID的习惯占位
func buildDiaryTree(t *testing.T, db *gorm.DB) (*model.Routine, *model.HabitGroup) {
	t.Helper()

	routine := createRoutine(t, db, 1, "diary")
	section := &model.RoutineSection{RoutineID: routine.ID, Name: "morning", Position: 0}
	if err := db.Create(section).Error; err != nil {
		t.Fatalf("create section: %v", err)
	}

	group := &model.HabitGroup{
		BaseModel: model.BaseModel{ID: routine.ID},
		SectionID: section.ID,
		HabitID:   42,
		Position:  0,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("create habit group: %v", err)
	}
	return routine, group
}

func TestFindHabitGroup(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemGroupService(repository.NewRoutineRepository(db))
	routine, group := buildDiaryTree(t, db)

	got, err := svc.FindHabitGroup(1, routine.ID)
	if err != nil {
		t.Fatalf("FindHabitGroup: %v", err)
	}
	if got == nil {
		t.Fatal("got nil group, want match")
	}
	if got.ID != group.ID || got.HabitID != 42 {
		t.Errorf("got group %+v, want id=%d habitId=42", got, group.ID)
	}
}

func TestFindHabitGroupSoftAbsence(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemGroupService(repository.NewRoutineRepository(db))

	// 例程存在但没有任何同ID占位
	routine := createRoutine(t, db, 1, "diary")

	got, err := svc.FindHabitGroup(1, routine.ID)
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestFindHabitGroupRoutineMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemGroupService(repository.NewRoutineRepository(db))

	if _, err := svc.FindHabitGroup(1, 999); !errors.Is(err, util.ErrDiaryRoutineNotFound) {
		t.Fatalf("err = %v, want ErrDiaryRoutineNotFound", err)
	}
}

func TestFindHabitGroupNonDiaryVariant(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemGroupService(repository.NewRoutineRepository(db))

	routine := &model.Routine{UserID: 1, Name: "other", Variant: "template"}
	if err := db.Create(routine).Error; err != nil {
		t.Fatalf("create routine: %v", err)
	}

	if _, err := svc.FindHabitGroup(1, routine.ID); !errors.Is(err, util.ErrDiaryRoutineNotFound) {
		t.Fatalf("err = %v, want ErrDiaryRoutineNotFound", err)
	}
}

func TestFindTaskGroup(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemGroupService(repository.NewRoutineRepository(db))

	routine := createRoutine(t, db, 1, "diary")
	section := &model.RoutineSection{RoutineID: routine.ID, Name: "evening", Position: 0}
	if err := db.Create(section).Error; err != nil {
		t.Fatalf("create section: %v", err)
	}
	group := &model.TaskGroup{
		BaseModel: model.BaseModel{ID: routine.ID},
		SectionID: section.ID,
		TaskID:    7,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("create task group: %v", err)
	}

	got, err := svc.FindTaskGroup(1, routine.ID)
	if err != nil {
		t.Fatalf("FindTaskGroup: %v", err)
	}
	if got == nil || got.TaskID != 7 {
		t.Errorf("got %+v, want taskId=7", got)
	}
}

func TestFindHabitGroupOtherUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewItemGroupService(repository.NewRoutineRepository(db))
	routine, _ := buildDiaryTree(t, db)

	// 用户2看不到用户1的例程树
	if _, err := svc.FindHabitGroup(2, routine.ID); !errors.Is(err, util.ErrDiaryRoutineNotFound) {
		t.Fatalf("err = %v, want ErrDiaryRoutineNotFound", err)
	}
}
