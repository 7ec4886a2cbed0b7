package database

import (
	"fmt"
	"log"

	"habitflow_backend/internal/config"
	"habitflow_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

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
		return nil, err
	}

	log.Println("Database migration completed")

	// 预置分类（为空时插入一批常用分类，user_id=0 表示系统预置）
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaultCategories := []model.Category{
			{Name: "健康", Icon: "heart", Color: "#e74c3c"},
			{Name: "学习", Icon: "book", Color: "#3498db"},
			{Name: "工作", Icon: "briefcase", Color: "#34495e"},
			{Name: "运动", Icon: "dumbbell", Color: "#2ecc71"},
			{Name: "生活", Icon: "home", Color: "#f39c12"},
		}
		for _, c := range defaultCategories {
			db.Create(&c)
		}
	}

	return db, nil
}
