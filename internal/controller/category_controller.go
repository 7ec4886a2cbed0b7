package controller

import (
	"errors"
	"strconv"

	"habitflow_backend/internal/service"
	"habitflow_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// ListCategories godoc
// @Summary 获取分类列表
// @Description 返回系统默认分类与当前用户自建分类
// @Tags 分类
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Category} "成功"
// @Router /api/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	categories, err := c.CategoryService.GetUserCategories(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}

// CreateCategory godoc
// @Summary 创建分类
// @Tags 分类
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CategoryRequest true "分类信息"
// @Success 201 {object} util.Response{data=model.Category} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.CreateCategory(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, category)
}

// UpdateCategory godoc
// @Summary 更新分类
// @Tags 分类
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "分类ID"
// @Param   body body service.CategoryRequest true "分类信息"
// @Success 200 {object} util.Response{data=model.Category} "成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	categoryID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的分类ID")
		return
	}

	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.UpdateCategory(claims.UserID, uint(categoryID), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, category)
}

// DeleteCategory godoc
// @Summary 删除分类
// @Tags 分类
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "分类ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	categoryID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "无效的分类ID")
		return
	}

	if err := c.CategoryService.DeleteCategory(claims.UserID, uint(categoryID)); err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
