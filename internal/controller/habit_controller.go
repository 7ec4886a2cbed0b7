package controller

import (
	"errors"
	"strconv"

	"habitflow_backend/internal/service"
	"habitflow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HabitController struct {
	HabitService *service.HabitService
}

func NewHabitController(habitService *service.HabitService) *HabitController {
	return &HabitController{HabitService: habitService}
}

// ListHabits godoc
// @Summary 获取当前用户的习惯列表
// @Tags 习惯
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Habit} "成功"
// @Router /api/habits [get]
func (c *HabitController) ListHabits(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habits, err := c.HabitService.GetUserHabits(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, habits)
}

// CreateHabit godoc
// @Summary 创建习惯
// @Tags 习惯
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.HabitRequest true "习惯信息"
// @Success 201 {object} util.Response{data=model.Habit} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/habits [post]
func (c *HabitController) CreateHabit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.HabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	habit, err := c.HabitService.CreateHabit(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.BadRequest(ctx, "指定的分类不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, habit)
}

// UpdateHabit godoc
// @Summary 更新习惯
// @Tags 习惯
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "习惯ID"
// @Param   body body service.HabitRequest true "习惯信息"
// @Success 200 {object} util.Response{data=model.Habit} "成功"
// @Failure 404 {object} util.Response "习惯不存在"
// @Router /api/habits/{id} [put]
func (c *HabitController) UpdateHabit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habitID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的习惯ID")
		return
	}

	var req service.HabitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	habit, err := c.HabitService.UpdateHabit(claims.UserID, uint(habitID), req)
	if err != nil {
		if errors.Is(err, util.ErrHabitNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, habit)
}

// DeleteHabit godoc
// @Summary 删除习惯
// @Tags 习惯
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "习惯ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "习惯不存在"
// @Router /api/habits/{id} [delete]
func (c *HabitController) DeleteHabit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	habitID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的习惯ID")
		return
	}

	if err := c.HabitService.DeleteHabit(claims.UserID, uint(habitID)); err != nil {
		if errors.Is(err, util.ErrHabitNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
