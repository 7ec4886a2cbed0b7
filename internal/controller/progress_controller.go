package controller

import (
	"strconv"

	"habitflow_backend/internal/service"
	"habitflow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	XpLevelService  *service.XpLevelService
}

func NewProgressController(progressService *service.ProgressService, xpLevelService *service.XpLevelService) *ProgressController {
	return &ProgressController{
		ProgressService: progressService,
		XpLevelService:  xpLevelService,
	}
}

// GetProgress godoc
// @Summary 获取用户成长面板
// @Description 返回当前等级进度、各分类经验与进行中的目标
// @Tags 成长
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserProgress} "成功"
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.GetUserProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// GetLeaderboard godoc
// @Summary 获取经验排行榜
// @Tags 成长
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "返回条数，默认10"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry} "成功"
// @Router /api/progress/leaderboard [get]
func (c *ProgressController) GetLeaderboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := 10
	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := c.ProgressService.GetLeaderboard(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// GetLevelCurve godoc
// @Summary 获取等级经验曲线
// @Description 返回每个等级对应的累计经验阈值
// @Tags 成长
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.XpByLevel} "成功"
// @Router /api/levels [get]
func (c *ProgressController) GetLevelCurve(ctx *gin.Context) {
	table := service.GenerateLevelTable()
	util.Success(ctx, table)
}
