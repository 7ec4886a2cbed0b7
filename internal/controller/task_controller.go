package controller

import (
	"errors"
	"strconv"

	"habitflow_backend/internal/service"
	"habitflow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// ListTasks godoc
// @Summary 获取当前用户的任务列表
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Task} "成功"
// @Router /api/tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.TaskService.GetUserTasks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tasks)
}

// CreateTask godoc
// @Summary 创建任务
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TaskRequest true "任务信息"
// @Success 201 {object} util.Response{data=model.Task} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.CreateTask(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.BadRequest(ctx, "指定的分类不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, task)
}

// UpdateTask godoc
// @Summary 更新任务
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Param   body body service.TaskRequest true "任务信息"
// @Success 200 {object} util.Response{data=model.Task} "成功"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	taskID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的任务ID")
		return
	}

	var req service.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.UpdateTask(claims.UserID, uint(taskID), req)
	if err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, task)
}

// SetTaskDoneRequest 标记任务完成状态
type SetTaskDoneRequest struct {
	Done bool `json:"done"`
}

// SetTaskDone godoc
// @Summary 标记任务完成状态
// @Tags 任务
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Param   body body SetTaskDoneRequest true "完成状态"
// @Success 200 {object} util.Response{data=model.Task} "成功"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/tasks/{id}/done [put]
func (c *TaskController) SetTaskDone(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	taskID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的任务ID")
		return
	}

	var req SetTaskDoneRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.SetTaskDone(claims.UserID, uint(taskID), req.Done)
	if err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, task)
}

// DeleteTask godoc
// @Summary 删除任务
// @Tags 任务
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	taskID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的任务ID")
		return
	}

	if err := c.TaskService.DeleteTask(claims.UserID, uint(taskID)); err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
