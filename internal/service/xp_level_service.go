package service

import (
	"sync"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const MaxLevel = 100

// XpLevelService 负责等级经验参照表的生成、播种与查询。
// 表在启动时写入一次，之后只读，读取侧做一次性内存缓存。
type XpLevelService struct {
	XpRepo *repository.XpByLevelRepository
	DB     *gorm.DB

	once  sync.Once
	table []model.XpByLevel
}

func NewXpLevelService(xpRepo *repository.XpByLevelRepository, db *gorm.DB) *XpLevelService {
	return &XpLevelService{
		XpRepo: xpRepo,
		DB:     db,
	}
}

// GenerateLevelTable 生成 0..100 级的累计经验门槛。
// 升级步长为 (level+1)*100*multiplier；multiplier 从 0.5 起步，
// 超过 10 级降到 0.2，超过 30 级抬到 0.3。两个分支每轮都会求值，
// 30 级以上后一个分支覆盖前一个，这个顺序是刻意保留的曲线设定。
func GenerateLevelTable() []model.XpByLevel {
	rows := make([]model.XpByLevel, 0, MaxLevel+1)
	multiplier := 0.5
	cumulative := 0

	for level := 0; level <= MaxLevel; level++ {
		rows = append(rows, model.XpByLevel{Level: level, RequiredXP: cumulative})

		if level > 10 {
			multiplier = 0.2
		}
		if level > 30 {
			multiplier = 0.3
		}
		cumulative += int(float64(level+1) * 100 * multiplier)
	}
	return rows
}

// SeedLevels 幂等播种：表里已有数据时不写任何行。
// 返回本次写入的行数。
func (s *XpLevelService) SeedLevels() (int, error) {
	count, err := s.XpRepo.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	rows := GenerateLevelTable()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, err
	}

	logger.Log.Info("xp level table seeded", zap.Int("rows", len(rows)))
	return len(rows), nil
}

// LevelProgress 某个总经验值对应的等级进度
type LevelProgress struct {
	Level         int `json:"level"`
	ActualLevelXP int `json:"actualLevelXp"` // 当前等级内已积累的经验
	NextLevelXP   int `json:"nextLevelXp"`   // 升到下一级还需要的总步长，满级为 0
}

// LevelFor 返回累计门槛不超过 xp 的最大等级及级内进度
func (s *XpLevelService) LevelFor(xp int) (*LevelProgress, error) {
	table, err := s.loadTable()
	if err != nil {
		return nil, err
	}

	if len(table) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	if xp < 0 {
		xp = 0
	}

	level := 0
	for _, row := range table {
		if row.RequiredXP <= xp {
			level = row.Level
		} else {
			break
		}
	}

	progress := &LevelProgress{
		Level:         level,
		ActualLevelXP: xp - table[level].RequiredXP,
	}
	if level < MaxLevel {
		progress.NextLevelXP = table[level+1].RequiredXP - table[level].RequiredXP
	}
	return progress, nil
}

// loadTable 首次调用时从库中加载整张表，之后走缓存；
// 播种发生在任何读取之前，所以不需要失效逻辑
func (s *XpLevelService) loadTable() ([]model.XpByLevel, error) {
	var loadErr error
	s.once.Do(func() {
		rows, err := s.XpRepo.FindAll()
		if err != nil {
			loadErr = err
			return
		}
		s.table = rows
	})
	if loadErr != nil {
		return nil, loadErr
	}
	if s.table == nil {
		// 缓存因之前的错误为空时重新尝试一次
		rows, err := s.XpRepo.FindAll()
		if err != nil {
			return nil, err
		}
		s.table = rows
	}
	return s.table, nil
}
