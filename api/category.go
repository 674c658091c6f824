package api

import (
	"errors"

	"accountit/database"
	"accountit/middleware"
	"accountit/store"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 预算分类处理器
type CategoryHandler struct{}

// NewCategoryHandler 创建预算分类处理器
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

func (h *CategoryHandler) categories() *store.CategoryStore {
	return store.NewCategoryStore(database.DB)
}

// CategoryCreateRequest 创建分类请求
type CategoryCreateRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=50" example:"Food"`
	Allocated float64 `json:"allocated" binding:"gte=0" example:"1000.00"`
}

// List 获取分类列表
// @Summary 获取分类列表
// @Description 获取当前用户的全部预算分类，置顶分类在前，组内按名称升序
// @Tags 分类
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.Category} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	list, err := h.categories().List(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询分类失败"))
		return
	}

	Success(c, list)
}

// Create 创建分类
// @Summary 创建分类
// @Description 新建一个预算分类（信封），初始已花费为 0
// @Tags 分类
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryCreateRequest true "分类信息"
// @Success 200 {object} Response{data=models.Category} "创建成功"
// @Failure 400 {object} Response "参数错误或分类名已存在"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	cat, err := h.categories().Add(userID, req.Name, req.Allocated)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			BadRequest(c, "分类名称已存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "创建分类失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", cat)
}

// Delete 删除分类
// @Summary 删除分类
// @Description 按名称硬删除当前用户的分类
// @Tags 分类
// @Produce json
// @Security BearerAuth
// @Param name path string true "分类名称"
// @Success 200 {object} Response "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "分类不存在"
// @Router /api/v1/categories/{name} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	name := c.Param("name")

	if err := h.categories().Delete(userID, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "分类不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "删除分类失败"))
		return
	}

	SuccessWithMessage(c, "删除成功", nil)
}

// AddExpenseRequest 记支出请求
type AddExpenseRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0" example:"99.99"`
}

// AddExpense 向分类记一笔支出
// @Summary 记一笔支出
// @Description 向指定分类累加一笔支出金额，SQL 级原子自增
// @Tags 分类
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "分类名称"
// @Param request body AddExpenseRequest true "支出金额"
// @Success 200 {object} Response "记录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "分类不存在"
// @Router /api/v1/categories/{name}/expenses [post]
func (h *CategoryHandler) AddExpense(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	name := c.Param("name")

	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.categories().AddExpense(userID, name, req.Amount); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "分类不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "记录支出失败"))
		return
	}

	SuccessWithMessage(c, "记录成功", nil)
}

// TogglePin 切换分类置顶
// @Summary 切换分类置顶
// @Description 置顶/取消置顶指定分类，单条条件 SQL 原子完成
// @Tags 分类
// @Produce json
// @Security BearerAuth
// @Param name path string true "分类名称"
// @Success 200 {object} Response "切换成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "分类不存在"
// @Router /api/v1/categories/{name}/pin [post]
func (h *CategoryHandler) TogglePin(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	name := c.Param("name")

	if err := h.categories().TogglePin(userID, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "分类不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "切换置顶失败"))
		return
	}

	SuccessWithMessage(c, "切换成功", nil)
}
