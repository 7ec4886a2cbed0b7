package controller

import (
	"errors"
	"strconv"

	"habitflow_backend/internal/service"
	"habitflow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ItemGroupController struct {
	ItemGroupService *service.ItemGroupService
}

func NewItemGroupController(itemGroupService *service.ItemGroupService) *ItemGroupController {
	return &ItemGroupController{ItemGroupService: itemGroupService}
}

// GetHabitGroup godoc
// @Summary 按ID查找习惯占位
// @Description 在对应日记例程的分区中查找习惯占位；例程存在但占位缺失时返回 null
// @Tags 例程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "占位ID"
// @Success 200 {object} util.Response{data=model.HabitGroup} "成功，未找到时 data 为 null"
// @Failure 404 {object} util.Response "日记例程不存在"
// @Router /api/habit-groups/{id} [get]
func (c *ItemGroupController) GetHabitGroup(ctx *gin.Context) {
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

	group, err := c.ItemGroupService.FindHabitGroup(claims.UserID, uint(groupID))
	if err != nil {
		if errors.Is(err, util.ErrDiaryRoutineNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, group)
}

// GetTaskGroup godoc
// @Summary 按ID查找任务占位
// @Description 在对应日记例程的分区中查找任务占位；例程存在但占位缺失时返回 null
// @Tags 例程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "占位ID"
// @Success 200 {object} util.Response{data=model.TaskGroup} "成功，未找到时 data 为 null"
// @Failure 404 {object} util.Response "日记例程不存在"
// @Router /api/task-groups/{id} [get]
func (c *ItemGroupController) GetTaskGroup(ctx *gin.Context) {
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

	group, err := c.ItemGroupService.FindTaskGroup(claims.UserID, uint(groupID))
	if err != nil {
		if errors.Is(err, util.ErrDiaryRoutineNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, group)
}
