package api

import (
	"accountit/database"
	"accountit/middleware"
	"accountit/store"

	"github.com/gin-gonic/gin"
)

// BudgetHandler 预算处理器
type BudgetHandler struct{}

// NewBudgetHandler 创建预算处理器
func NewBudgetHandler() *BudgetHandler {
	return &BudgetHandler{}
}

func (h *BudgetHandler) budgets() *store.BudgetStore {
	return store.NewBudgetStore(database.DB)
}

// BudgetSummaryResponse 预算概览响应
type BudgetSummaryResponse struct {
	TotalBudget float64 `json:"total_budget" example:"5000.00"`
	Income      float64 `json:"income" example:"8000.00"`
	TotalSpent  float64 `json:"total_spent" example:"1280.00"`
	Remaining   float64 `json:"remaining" example:"3720.00"` // 总预算减去全部分类已花费
}

// GetSummary 获取预算概览
// @Summary 获取预算概览
// @Description 返回当前用户的总预算、收入、已花费与剩余额度。预算行不存在时自动创建零值行。
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=BudgetSummaryResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budget [get]
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	budget, err := h.budgets().Get(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询预算失败"))
		return
	}

	spent, err := store.NewCategoryStore(database.DB).TotalSpent(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "汇总支出失败"))
		return
	}

	Success(c, BudgetSummaryResponse{
		TotalBudget: budget.TotalBudget,
		Income:      budget.Income,
		TotalSpent:  spent,
		Remaining:   budget.TotalBudget - spent,
	})
}

// SetBudgetRequest 设置总预算请求
type SetBudgetRequest struct {
	// required 会把 float64 的 0 当缺失拒掉，预算清零是合法操作，只限非负
	Amount float64 `json:"amount" binding:"gte=0" example:"5000.00"`
}

// SetBudget 设置总预算
// @Summary 设置总预算
// @Description 覆盖设置当前用户的月度总预算
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetBudgetRequest true "预算金额"
// @Success 200 {object} Response "设置成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budget [put]
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.budgets().SetBudget(userID, req.Amount); err != nil {
		InternalError(c, SafeErrorMessage(err, "设置预算失败"))
		return
	}

	SuccessWithMessage(c, "设置成功", nil)
}

// AddIncomeRequest 添加收入请求
type AddIncomeRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0" example:"8000.00"`
}

// AddIncome 累加收入
// @Summary 累加收入
// @Description 在当前收入上累加一笔金额，SQL 级原子自增
// @Tags 预算
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddIncomeRequest true "收入金额"
// @Success 200 {object} Response "添加成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budget/income [post]
func (h *BudgetHandler) AddIncome(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req AddIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.budgets().AddIncome(userID, req.Amount); err != nil {
		InternalError(c, SafeErrorMessage(err, "添加收入失败"))
		return
	}

	SuccessWithMessage(c, "添加成功", nil)
}

// ResetIncome 收入清零
// @Summary 收入清零
// @Description 将当前用户的收入重置为 0（月初滚动）
// @Tags 预算
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "重置成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/budget/income/reset [post]
func (h *BudgetHandler) ResetIncome(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	if err := h.budgets().ResetIncome(userID); err != nil {
		InternalError(c, SafeErrorMessage(err, "重置收入失败"))
		return
	}

	SuccessWithMessage(c, "重置成功", nil)
}
