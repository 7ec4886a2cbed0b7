// 手动重建等级经验参照表脚本
//
// 等级表在主应用启动时会幂等播种一次，之后不再改动。
// 如果曲线参数调整过、或表数据被误改，可用此脚本清空重建。
//
// 用法: go run scripts/reseed_levels.go
package main

import (
	"log"

	"habitflow_backend/internal/config"
	"habitflow_backend/internal/model"
	"habitflow_backend/internal/service"
	"habitflow_backend/pkg/database"
	"habitflow_backend/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("重建等级经验表...")

	rows := service.GenerateLevelTable()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.XpByLevel{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		log.Fatalf("重建失败: %v", err)
	}

	log.Printf("完成！写入 %d 行", len(rows))
}
