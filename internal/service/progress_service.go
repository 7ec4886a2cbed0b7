package service

import (
	"context"
	"encoding/json"
	"time"

	"habitflow_backend/internal/model"
	"habitflow_backend/internal/repository"
	"habitflow_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const leaderboardCacheKey = "habitflow:leaderboard"

// ProgressService 汇总用户的经验、等级与排行榜
type ProgressService struct {
	UserRepo     *repository.UserRepository
	GoalRepo     *repository.GoalRepository
	CategoryRepo *repository.CategoryRepository
	XpLevel      *XpLevelService
	Redis        *redis.Client
}

func NewProgressService(
	userRepo *repository.UserRepository,
	goalRepo *repository.GoalRepository,
	categoryRepo *repository.CategoryRepository,
	xpLevel *XpLevelService,
	rdb *redis.Client,
) *ProgressService {
	return &ProgressService{
		UserRepo:     userRepo,
		GoalRepo:     goalRepo,
		CategoryRepo: categoryRepo,
		XpLevel:      xpLevel,
		Redis:        rdb,
	}
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	User   string `json:"user"`
	XP     int    `json:"xp"`
	Avatar string `json:"avatar,omitempty"`
}

type UserProgress struct {
	TotalXP     int                `json:"totalXp"`
	Level       int                `json:"level"`
	ActualXP    int                `json:"actualLevelXp"`
	NextLevelXP int                `json:"nextLevelXp"`
	Categories  []model.Category   `json:"categories"`
	Goals       []model.Goal       `json:"goals"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// GetUserProgress 返回用户的总经验、等级进度、分类经验和排行榜
func (s *ProgressService) GetUserProgress(userID uint) (*UserProgress, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	progress, err := s.XpLevel.LevelFor(user.XP)
	if err != nil {
		return nil, err
	}

	categories, err := s.CategoryRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.GoalRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	leaderboard, err := s.GetLeaderboard(10)
	if err != nil {
		return nil, err
	}

	return &UserProgress{
		TotalXP:     user.XP,
		Level:       progress.Level,
		ActualXP:    progress.ActualLevelXP,
		NextLevelXP: progress.NextLevelXP,
		Categories:  categories,
		Goals:       goals,
		Leaderboard: leaderboard,
	}, nil
}

// GetLeaderboard 经验排行，Redis 短缓存兜掉热点查询
func (s *ProgressService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	ctx := context.Background()

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByXP(limit)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		leaderboard[i] = LeaderboardEntry{
			Rank:   i + 1,
			User:   user.Name,
			XP:     user.XP,
			Avatar: user.Avatar,
		}
	}

	if s.Redis != nil {
		bytes, _ := json.Marshal(leaderboard)
		if err := s.Redis.Set(ctx, leaderboardCacheKey, bytes, time.Minute).Err(); err != nil {
			logger.Log.Warn("failed to cache leaderboard", zap.Error(err))
		}
	}

	return leaderboard, nil
}
