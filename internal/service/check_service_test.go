package service

import (
	"errors"
	"testing"
	"time"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/internal/util"

	"gorm.io/gorm"
)

func newCheckService(db *gorm.DB) *CheckService {
	return NewCheckService(
		repository.NewItemGroupRepository(db),
		repository.NewHabitRepository(db),
		repository.NewTaskRepository(db),
		repository.NewUserRepository(db),
		repository.NewCategoryRepository(db),
		db,
	)
}

func buildHabitGroup(t *testing.T, db *gorm.DB, categoryID uint) *model.HabitGroup {
	t.Helper()

	habit := &model.Habit{UserID: 1, Name: "stretch", CategoryID: categoryID}
	if err := db.Create(habit).Error; err != nil {
		t.Fatalf("create habit: %v", err)
	}

	routine := createRoutine(t, db, 1, "diary")
	section := &model.RoutineSection{RoutineID: routine.ID, Name: "morning"}
	if err := db.Create(section).Error; err != nil {
		t.Fatalf("create section: %v", err)
	}

	group := &model.HabitGroup{SectionID: section.ID, HabitID: habit.ID}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}
	return group
}

func TestToggleHabitCheckAwardsXP(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckService(db)

	user := createUser(t, db)
	category := &model.Category{Name: "health"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	group := buildHabitGroup(t, db, category.ID)

	day := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)
	check, err := svc.ToggleHabitCheck(user.ID, group.ID, CheckRequest{Date: day, Time: "15:30", Checked: true})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if !check.Checked {
		t.Error("check not marked checked")
	}
	if check.GeneratedXP != checkBaseXP {
		t.Errorf("GeneratedXP = %d, want %d", check.GeneratedXP, checkBaseXP)
	}
	// 日期部分被截断，时间只保留在 Time 字段
	if !check.Date.Equal(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want truncated day", check.Date)
	}

	var reloadedUser model.User
	db.First(&reloadedUser, user.ID)
	if reloadedUser.XP != checkBaseXP {
		t.Errorf("user XP = %d, want %d", reloadedUser.XP, checkBaseXP)
	}

	var reloadedCategory model.Category
	db.First(&reloadedCategory, category.ID)
	if reloadedCategory.XP != checkBaseXP {
		t.Errorf("category XP = %d, want %d", reloadedCategory.XP, checkBaseXP)
	}
}

func TestToggleHabitCheckIdempotentAndRetract(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckService(db)

	user := createUser(t, db)
	group := buildHabitGroup(t, db, 0)
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	if _, err := svc.ToggleHabitCheck(user.ID, group.ID, CheckRequest{Date: day, Checked: true}); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	// 重复打卡不再加经验
	if _, err := svc.ToggleHabitCheck(user.ID, group.ID, CheckRequest{Date: day, Checked: true}); err != nil {
		t.Fatalf("second toggle: %v", err)
	}

	var u model.User
	db.First(&u, user.ID)
	if u.XP != checkBaseXP {
		t.Fatalf("user XP after double check = %d, want %d", u.XP, checkBaseXP)
	}

	// 取消打卡收回经验
	check, err := svc.ToggleHabitCheck(user.ID, group.ID, CheckRequest{Date: day, Checked: false})
	if err != nil {
		t.Fatalf("retract: %v", err)
	}
	if check.Checked || check.GeneratedXP != 0 {
		t.Errorf("after retract: checked=%v generatedXp=%d", check.Checked, check.GeneratedXP)
	}

	db.First(&u, user.ID)
	if u.XP != 0 {
		t.Errorf("user XP after retract = %d, want 0", u.XP)
	}

	// 同一 (占位, 日期) 只有一行
	var count int64
	db.Model(&model.HabitGroupCheck{}).Where("group_id = ?", group.ID).Count(&count)
	if count != 1 {
		t.Errorf("check rows = %d, want 1", count)
	}
}

func TestToggleHabitCheckSeparateDays(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckService(db)

	user := createUser(t, db)
	group := buildHabitGroup(t, db, 0)

	for dayOffset := 0; dayOffset < 3; dayOffset++ {
		day := time.Date(2026, 8, 29+dayOffset, 0, 0, 0, 0, time.UTC)
		if _, err := svc.ToggleHabitCheck(user.ID, group.ID, CheckRequest{Date: day, Checked: true}); err != nil {
			t.Fatalf("toggle day %d: %v", dayOffset, err)
		}
	}

	var u model.User
	db.First(&u, user.ID)
	if u.XP != 3*checkBaseXP {
		t.Errorf("user XP = %d, want %d", u.XP, 3*checkBaseXP)
	}
}

func TestToggleHabitCheckGroupMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckService(db)
	user := createUser(t, db)

	_, err := svc.ToggleHabitCheck(user.ID, 999, CheckRequest{Date: time.Now(), Checked: true})
	if !errors.Is(err, util.ErrItemGroupNotFound) {
		t.Fatalf("err = %v, want ErrItemGroupNotFound", err)
	}
}

func TestToggleTaskCheck(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckService(db)

	user := createUser(t, db)
	task := &model.Task{UserID: user.ID, Name: "file taxes"}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	routine := createRoutine(t, db, user.ID, "diary")
	section := &model.RoutineSection{RoutineID: routine.ID, Name: "admin"}
	if err := db.Create(section).Error; err != nil {
		t.Fatalf("create section: %v", err)
	}
	group := &model.TaskGroup{SectionID: section.ID, TaskID: task.ID}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}

	check, err := svc.ToggleTaskCheck(user.ID, group.ID, CheckRequest{Date: time.Now(), Checked: true})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !check.Checked || check.GeneratedXP != checkBaseXP {
		t.Errorf("check = %+v, want checked with %d xp", check, checkBaseXP)
	}
}

func TestToggleHabitCheckOtherUsersGroup(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckService(db)

	createUser(t, db) // 占位属主
	group := buildHabitGroup(t, db, 0)

	intruder := &model.User{Name: "other", Email: "other@example.com", Password: "hash"}
	if err := db.Create(intruder).Error; err != nil {
		t.Fatalf("create intruder: %v", err)
	}

	// 别人的占位打不了卡，也蹭不到经验
	_, err := svc.ToggleHabitCheck(intruder.ID, group.ID, CheckRequest{Date: time.Now(), Checked: true})
	if !errors.Is(err, util.ErrItemGroupNotFound) {
		t.Fatalf("err = %v, want ErrItemGroupNotFound", err)
	}

	var count int64
	db.Model(&model.HabitGroupCheck{}).Where("group_id = ?", group.ID).Count(&count)
	if count != 0 {
		t.Errorf("check rows = %d, want 0", count)
	}
	var reloaded model.User
	if err := db.First(&reloaded, intruder.ID).Error; err != nil {
		t.Fatalf("reload intruder: %v", err)
	}
	if reloaded.XP != 0 {
		t.Errorf("intruder XP = %d, want 0", reloaded.XP)
	}
}
