package service

import (
	"fmt"
	"os"
	"testing"

	"habitflow_backend/internal/model"
	"habitflow_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// newTestDB 为每个测试开一个独立的内存库并迁移全部表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Habit{},
		&model.Task{},
		&model.Goal{},
		&model.Routine{},
		&model.Schedule{},
		&model.RoutineSection{},
		&model.HabitGroup{},
		&model.TaskGroup{},
		&model.HabitGroupCheck{},
		&model.TaskGroupCheck{},
		&model.XpByLevel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
