package controller

import (
	"errors"
	"strconv"

	"habitflow_backend/internal/service"
	"habitflow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CheckController struct {
	CheckService *service.CheckService
}

func NewCheckController(checkService *service.CheckService) *CheckController {
	return &CheckController{CheckService: checkService}
}

// ToggleHabitCheck godoc
// @Summary 写入习惯打卡
// @Description 记录某个习惯占位在指定日期的打卡状态并结算经验值
// @Tags 打卡
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "习惯占位ID"
// @Param   body body service.CheckRequest true "打卡信息"
// @Success 200 {object} util.Response{data=model.HabitGroupCheck} "成功"
// @Failure 404 {object} util.Response "占位不存在"
// @Router /api/habit-groups/{id}/checks [put]
func (c *CheckController) ToggleHabitCheck(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的占位ID")
		return
	}

	var req service.CheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	check, err := c.CheckService.ToggleHabitCheck(claims.UserID, uint(groupID), req)
	if err != nil {
		checkError(ctx, err)
		return
	}

	util.Success(ctx, check)
}

// ToggleTaskCheck godoc
// @Summary 写入任务打卡
// @Description 记录某个任务占位在指定日期的打卡状态并结算经验值
// @Tags 打卡
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务占位ID"
// @Param   body body service.CheckRequest true "打卡信息"
// @Success 200 {object} util.Response{data=model.TaskGroupCheck} "成功"
// @Failure 404 {object} util.Response "占位不存在"
// @Router /api/task-groups/{id}/checks [put]
func (c *CheckController) ToggleTaskCheck(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	groupID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的占位ID")
		return
	}

	var req service.CheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	check, err := c.CheckService.ToggleTaskCheck(claims.UserID, uint(groupID), req)
	if err != nil {
		checkError(ctx, err)
		return
	}

	util.Success(ctx, check)
}

func checkError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrItemGroupNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
