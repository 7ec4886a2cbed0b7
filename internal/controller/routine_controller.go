package controller

import (
	"errors"
	"strconv"

	"habitflow_backend/internal/service"
	"habitflow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoutineController struct {
	RoutineService *service.RoutineService
}

func NewRoutineController(routineService *service.RoutineService) *RoutineController {
	return &RoutineController{RoutineService: routineService}
}

func routineError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrRoutineNotFound), errors.Is(err, util.ErrSectionNotFound),
		errors.Is(err, util.ErrHabitNotFound), errors.Is(err, util.ErrTaskNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListRoutines godoc
// @Summary 获取当前用户的例程列表
// @Description 返回例程及其关联的排期，不含分区明细
// @Tags 例程
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Routine} "成功"
// @Router /api/routines [get]
func (c *RoutineController) ListRoutines(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	routines, err := c.RoutineService.GetUserRoutines(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, routines)
}

// GetRoutine godoc
// @Summary 获取例程详情
// @Description 返回例程完整结构：分区、习惯占位、任务占位及各自的打卡记录
// @Tags 例程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "例程ID"
// @Success 200 {object} util.Response{data=model.Routine} "成功"
// @Failure 404 {object} util.Response "例程不存在"
// @Router /api/routines/{id} [get]
func (c *RoutineController) GetRoutine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	routineID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的例程ID")
		return
	}

	routine, err := c.RoutineService.GetRoutineTree(claims.UserID, uint(routineID))
	if err != nil {
		routineError(ctx, err)
		return
	}

	util.Success(ctx, routine)
}

// CreateRoutine godoc
// @Summary 创建例程
// @Tags 例程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateRoutineRequest true "例程信息"
// @Success 201 {object} util.Response{data=model.Routine} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/routines [post]
func (c *RoutineController) CreateRoutine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateRoutineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	routine, err := c.RoutineService.CreateRoutine(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, routine)
}

// UpdateRoutine godoc
// @Summary 更新例程基本信息
// @Tags 例程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "例程ID"
// @Param   body body service.CreateRoutineRequest true "例程信息"
// @Success 200 {object} util.Response{data=model.Routine} "成功"
// @Failure 404 {object} util.Response "例程不存在"
// @Router /api/routines/{id} [put]
func (c *RoutineController) UpdateRoutine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	routineID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的例程ID")
		return
	}

	var req service.CreateRoutineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	routine, err := c.RoutineService.UpdateRoutine(claims.UserID, uint(routineID), req)
	if err != nil {
		routineError(ctx, err)
		return
	}

	util.Success(ctx, routine)
}

// DeleteRoutine godoc
// @Summary 删除例程
// @Description 级联删除例程及其排期、分区与打卡记录
// @Tags 例程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "例程ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "例程不存在"
// @Router /api/routines/{id} [delete]
func (c *RoutineController) DeleteRoutine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	routineID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的例程ID")
		return
	}

	if err := c.RoutineService.DeleteRoutine(claims.UserID, uint(routineID)); err != nil {
		routineError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// AddSection godoc
// @Summary 为例程添加分区
// @Tags 例程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "例程ID"
// @Param   body body service.CreateSectionRequest true "分区信息"
// @Success 201 {object} util.Response{data=model.RoutineSection} "创建成功"
// @Failure 404 {object} util.Response "例程不存在"
// @Router /api/routines/{id}/sections [post]
func (c *RoutineController) AddSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	routineID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的例程ID")
		return
	}

	var req service.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.RoutineService.AddSection(claims.UserID, uint(routineID), req)
	if err != nil {
		routineError(ctx, err)
		return
	}

	util.Created(ctx, section)
}

// DeleteSection godoc
// @Summary 删除例程分区
// @Tags 例程
// @Produce  json
// @Security ApiKeyAuth
// @Param   sectionId path int true "分区ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "分区不存在"
// @Router /api/sections/{sectionId} [delete]
func (c *RoutineController) DeleteSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sectionID, err := strconv.ParseUint(ctx.Param("sectionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的分区ID")
		return
	}

	if err := c.RoutineService.DeleteSection(claims.UserID, uint(sectionID)); err != nil {
		routineError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// AddHabitGroup godoc
// @Summary 向分区添加习惯占位
// @Tags 例程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   sectionId path int true "分区ID"
// @Param   body body service.CreateItemGroupRequest true "占位信息"
// @Success 201 {object} util.Response{data=model.HabitGroup} "创建成功"
// @Failure 404 {object} util.Response "分区不存在"
// @Router /api/sections/{sectionId}/habit-groups [post]
func (c *RoutineController) AddHabitGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sectionID, err := strconv.ParseUint(ctx.Param("sectionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的分区ID")
		return
	}

	var req service.CreateItemGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	group, err := c.RoutineService.AddHabitGroup(claims.UserID, uint(sectionID), req)
	if err != nil {
		routineError(ctx, err)
		return
	}

	util.Created(ctx, group)
}

// AddTaskGroup godoc
// @Summary 向分区添加任务占位
// @Tags 例程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   sectionId path int true "分区ID"
// @Param   body body service.CreateItemGroupRequest true "占位信息"
// @Success 201 {object} util.Response{data=model.TaskGroup} "创建成功"
// @Failure 404 {object} util.Response "分区不存在"
// @Router /api/sections/{sectionId}/task-groups [post]
func (c *RoutineController) AddTaskGroup(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sectionID, err := strconv.ParseUint(ctx.Param("sectionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的分区ID")
		return
	}

	var req service.CreateItemGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	group, err := c.RoutineService.AddTaskGroup(claims.UserID, uint(sectionID), req)
	if err != nil {
		routineError(ctx, err)
		return
	}

	util.Created(ctx, group)
}
