package controller

import (
	"errors"
	"strconv"

	"habitflow_backend/internal/service"
	"habitflow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// ListGoals godoc
// @Summary 获取当前用户的目标列表
// @Tags 目标
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Goal} "成功"
// @Router /api/goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goals, err := c.GoalService.GetUserGoals(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, goals)
}

// GetGoal godoc
// @Summary 获取目标详情
// @Tags 目标
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "目标ID"
// @Success 200 {object} util.Response{data=model.Goal} "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/goals/{id} [get]
func (c *GoalController) GetGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goalID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的目标ID")
		return
	}

	goal, err := c.GoalService.GetGoalByID(claims.UserID, uint(goalID))
	if err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, goal)
}

// CreateGoal godoc
// @Summary 创建目标
// @Tags 目标
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateGoalRequest true "目标信息"
// @Success 201 {object} util.Response{data=model.Goal} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.CreateGoal(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, goal)
}

// UpdateGoal godoc
// @Summary 更新目标
// @Tags 目标
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "目标ID"
// @Param   body body service.UpdateGoalRequest true "目标更新内容"
// @Success 200 {object} util.Response{data=model.Goal} "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/goals/{id} [put]
func (c *GoalController) UpdateGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goalID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的目标ID")
		return
	}

	var req service.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateGoal(claims.UserID, uint(goalID), req)
	if err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, goal)
}

// CompleteGoal godoc
// @Summary 完成目标并结算经验值
// @Description 将目标标记为已完成，按目标难度与期限计算经验奖励
// @Tags 目标
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "目标ID"
// @Success 200 {object} util.Response{data=service.GoalCompletionResult} "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Failure 409 {object} util.Response "目标已完成"
// @Router /api/goals/{id}/complete [post]
func (c *GoalController) CompleteGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goalID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的目标ID")
		return
	}

	result, err := c.GoalService.CompleteGoal(claims.UserID, uint(goalID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrGoalNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrGoalAlreadyCompleted):
			util.Conflict(ctx, "目标已完成")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// DeleteGoal godoc
// @Summary 删除目标
// @Tags 目标
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "目标ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goalID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的目标ID")
		return
	}

	if err := c.GoalService.DeleteGoal(claims.UserID, uint(goalID)); err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
