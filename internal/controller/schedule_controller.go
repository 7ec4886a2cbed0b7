package controller

import (
	"errors"
	"strconv"

	"habitflow_backend/internal/service"
	"habitflow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	ScheduleService *service.ScheduleService
}

func NewScheduleController(scheduleService *service.ScheduleService) *ScheduleController {
	return &ScheduleController{ScheduleService: scheduleService}
}

// ScheduleRequest 排期写入请求，days 使用大写周几令牌（如 MONDAY）
type ScheduleRequest struct {
	Days []string `json:"days" binding:"required"`
}

func scheduleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidWeekday):
		util.BadRequest(ctx, "无效的周几取值")
	case errors.Is(err, util.ErrRoutineNotFound), errors.Is(err, util.ErrScheduleNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrScheduleOrphaned):
		util.Conflict(ctx, "排期未关联任何例程")
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListSchedules godoc
// @Summary 获取当前用户的排期列表
// @Description 按例程创建顺序逐一返回排期，未排期的例程对应 null
// @Tags 排期
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Schedule} "成功"
// @Router /api/schedules [get]
func (c *ScheduleController) ListSchedules(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	schedules, err := c.ScheduleService.FindAll(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, schedules)
}

// CreateSchedule godoc
// @Summary 为例程创建排期
// @Description 新建排期并挂接到例程；与其他例程排期重叠的周几会从对方排期中移除
// @Tags 排期
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "例程ID"
// @Param   body body ScheduleRequest true "周几集合"
// @Success 201 {object} util.Response{data=service.ScheduleResult} "创建成功"
// @Failure 400 {object} util.Response "无效的周几取值"
// @Failure 404 {object} util.Response "例程不存在"
// @Router /api/routines/{id}/schedule [post]
func (c *ScheduleController) CreateSchedule(ctx *gin.Context) {
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

	var req ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ScheduleService.Create(claims.UserID, uint(routineID), req.Days)
	if err != nil {
		scheduleError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// UpdateSchedule godoc
// @Summary 更新排期
// @Description 覆盖排期的周几集合并重新执行冲突消解
// @Tags 排期
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "排期ID"
// @Param   body body ScheduleRequest true "周几集合"
// @Success 200 {object} util.Response{data=service.ScheduleResult} "成功"
// @Failure 400 {object} util.Response "无效的周几取值"
// @Failure 404 {object} util.Response "排期不存在"
// @Failure 409 {object} util.Response "排期未关联任何例程"
// @Router /api/schedules/{id} [put]
func (c *ScheduleController) UpdateSchedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	scheduleID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的排期ID")
		return
	}

	var req ScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ScheduleService.Update(claims.UserID, uint(scheduleID), req.Days)
	if err != nil {
		scheduleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// DeleteSchedule godoc
// @Summary 删除排期
// @Description 先解除例程引用再删除排期行
// @Tags 排期
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "排期ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "排期不存在"
// @Failure 409 {object} util.Response "排期未关联任何例程"
// @Router /api/schedules/{id} [delete]
func (c *ScheduleController) DeleteSchedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	scheduleID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的排期ID")
		return
	}

	if err := c.ScheduleService.Delete(claims.UserID, uint(scheduleID)); err != nil {
		scheduleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
