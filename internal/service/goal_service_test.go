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

func newGoalService(db *gorm.DB) *GoalService {
	xpLevel := NewXpLevelService(repository.NewXpByLevelRepository(db), db)
	return NewGoalService(
		repository.NewGoalRepository(db),
		repository.NewUserRepository(db),
		repository.NewCategoryRepository(db),
		xpLevel,
		db,
	)
}

func createUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{Name: "tester", Email: "tester@example.com", Password: "hash"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestCompleteGoalAwardsXP(t *testing.T) {
	db := newTestDB(t)
	svc := newGoalService(db)
	if _, err := svc.XpLevel.SeedLevels(); err != nil {
		t.Fatalf("seed levels: %v", err)
	}

	user := createUser(t, db)
	category := &model.Category{Name: "fitness"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}

	// 已过期的短目标：50 * 1.0 * 1.5 = 75
	goal, err := svc.CreateGoal(user.ID, CreateGoalRequest{
		Title:       "run",
		TargetValue: 5,
		StartDate:   date(2026, 1, 1),
		EndDate:     date(2026, 1, 5),
		CategoryID:  category.ID,
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	result, err := svc.CompleteGoal(user.ID, goal.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if result.XpReward != 75 {
		t.Errorf("XpReward = %d, want 75", result.XpReward)
	}
	if result.Goal.Status != model.GoalCompleted {
		t.Errorf("Status = %s, want completed", result.Goal.Status)
	}
	if result.Goal.CompletedAt == nil {
		t.Error("CompletedAt is nil")
	}
	if result.Progress == nil || result.Progress.Level != 1 {
		t.Errorf("Progress = %+v, want level 1", result.Progress)
	}

	var reloadedUser model.User
	if err := db.First(&reloadedUser, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloadedUser.XP != 75 {
		t.Errorf("user XP = %d, want 75", reloadedUser.XP)
	}

	var reloadedCategory model.Category
	if err := db.First(&reloadedCategory, category.ID).Error; err != nil {
		t.Fatalf("reload category: %v", err)
	}
	if reloadedCategory.XP != 75 {
		t.Errorf("category XP = %d, want 75", reloadedCategory.XP)
	}
}

func TestCompleteGoalOnlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newGoalService(db)
	if _, err := svc.XpLevel.SeedLevels(); err != nil {
		t.Fatalf("seed levels: %v", err)
	}

	user := createUser(t, db)
	goal, err := svc.CreateGoal(user.ID, CreateGoalRequest{
		Title:       "read",
		TargetValue: 5,
		StartDate:   date(2026, 1, 1),
		EndDate:     date(2026, 1, 5),
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	if _, err := svc.CompleteGoal(user.ID, goal.ID); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if _, err := svc.CompleteGoal(user.ID, goal.ID); !errors.Is(err, util.ErrGoalAlreadyCompleted) {
		t.Fatalf("second complete err = %v, want ErrGoalAlreadyCompleted", err)
	}

	// 奖励只发了一次
	var reloaded model.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.XP != 75 {
		t.Errorf("user XP = %d, want 75", reloaded.XP)
	}
}

func TestCompleteGoalConcurrentWinnerBlocksReward(t *testing.T) {
	db := newTestDB(t)
	svc := newGoalService(db)
	if _, err := svc.XpLevel.SeedLevels(); err != nil {
		t.Fatalf("seed levels: %v", err)
	}

	user := createUser(t, db)
	goal, err := svc.CreateGoal(user.ID, CreateGoalRequest{
		Title:       "read",
		TargetValue: 5,
		StartDate:   date(2026, 1, 1),
		EndDate:     date(2026, 1, 5),
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	// 另一个请求已经抢先把目标置为完成
	if err := db.Model(&model.Goal{}).Where("id = ?", goal.ID).
		Update("status", model.GoalCompleted).Error; err != nil {
		t.Fatalf("mark completed: %v", err)
	}

	if _, err := svc.CompleteGoal(user.ID, goal.ID); !errors.Is(err, util.ErrGoalAlreadyCompleted) {
		t.Fatalf("err = %v, want ErrGoalAlreadyCompleted", err)
	}

	var reloaded model.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.XP != 0 {
		t.Errorf("user XP = %d, want 0", reloaded.XP)
	}
}

func TestCompleteGoalConsistencyBonus(t *testing.T) {
	db := newTestDB(t)
	svc := newGoalService(db)
	if _, err := svc.XpLevel.SeedLevels(); err != nil {
		t.Fatalf("seed levels: %v", err)
	}

	user := createUser(t, db)

	// 截止日期在未来，持续性系数 1.3 生效
	start := time.Now().AddDate(0, 0, -2)
	end := time.Now().AddDate(0, 0, 3)
	goal, err := svc.CreateGoal(user.ID, CreateGoalRequest{
		Title:       "early finish",
		TargetValue: 5,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	result, err := svc.CompleteGoal(user.ID, goal.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	// 50 * 1.0 * 1.5 * 1.3 = 97.5 → 98
	if result.XpReward != 98 {
		t.Errorf("XpReward = %d, want 98", result.XpReward)
	}
}

func TestCompleteGoalWrongUser(t *testing.T) {
	db := newTestDB(t)
	svc := newGoalService(db)

	user := createUser(t, db)
	goal, err := svc.CreateGoal(user.ID, CreateGoalRequest{
		Title:       "private",
		TargetValue: 5,
		StartDate:   date(2026, 1, 1),
		EndDate:     date(2026, 1, 5),
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	if _, err := svc.CompleteGoal(user.ID+1, goal.ID); !errors.Is(err, util.ErrGoalNotFound) {
		t.Fatalf("err = %v, want ErrGoalNotFound", err)
	}
}
