package api

import (
	"errors"
	"time"

	"accountit/database"
	"accountit/middleware"
	"accountit/store"

	"github.com/gin-gonic/gin"
)

// SavingsHandler 储蓄处理器
type SavingsHandler struct{}

// NewSavingsHandler 创建储蓄处理器
func NewSavingsHandler() *SavingsHandler {
	return &SavingsHandler{}
}

func (h *SavingsHandler) savings() *store.SavingsStore {
	return store.NewSavingsStore(database.DB)
}

// CreateGoalRequest 创建储蓄目标请求
type CreateGoalRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=100" example:"Holiday"`
	TargetAmount float64 `json:"target_amount" binding:"required,gt=0" example:"10000.00"`
	TargetDate   string  `json:"target_date" binding:"omitempty" example:"2026-12-31"` // 可选，YYYY-MM-DD
}

// ListGoals 获取储蓄目标列表
// @Summary 获取储蓄目标列表
// @Description 返回当前用户的储蓄目标及进度，当前金额由存入流水按目标名求和得出
// @Tags 储蓄
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.SavingsGoal} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings/goals [get]
func (h *SavingsHandler) ListGoals(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	goals, err := h.savings().ListGoals(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询储蓄目标失败"))
		return
	}

	Success(c, goals)
}

// CreateGoal 创建储蓄目标
// @Summary 创建储蓄目标
// @Description 新建一个储蓄目标，目标行是纯元数据，创建后不再修改
// @Tags 储蓄
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGoalRequest true "目标信息"
// @Success 200 {object} Response{data=models.SavingsEntry} "创建成功"
// @Failure 400 {object} Response "参数错误或目标名已存在"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings/goals [post]
func (h *SavingsHandler) CreateGoal(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var targetDate *time.Time
	if req.TargetDate != "" {
		t, err := time.ParseInLocation("2006-01-02", req.TargetDate, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		targetDate = &t
	}

	goal, err := h.savings().AddGoal(userID, req.Name, req.TargetAmount, targetDate)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			BadRequest(c, "目标名称已存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "创建储蓄目标失败"))
		return
	}

	SuccessWithMessage(c, "创建成功", goal)
}

// CreateDepositRequest 存入请求
type CreateDepositRequest struct {
	GoalName string  `json:"goal_name" binding:"required,min=1,max=100" example:"Holiday"`
	Amount   float64 `json:"amount" binding:"gte=0" example:"500.00"`
}

// CreateDeposit 向目标存入一笔
// @Summary 存入一笔
// @Description 向指定目标追加一条存入流水，目标必须已存在；允许超额存入
// @Tags 储蓄
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDepositRequest true "存入信息"
// @Success 200 {object} Response{data=models.SavingsEntry} "存入成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "目标不存在"
// @Router /api/v1/savings/deposits [post]
func (h *SavingsHandler) CreateDeposit(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	dep, err := h.savings().AddDeposit(userID, req.GoalName, req.Amount)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "目标不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "记录存入失败"))
		return
	}

	SuccessWithMessage(c, "存入成功", dep)
}

// TotalSavingsResponse 储蓄总额响应
type TotalSavingsResponse struct {
	Total float64 `json:"total" example:"1500.00"`
}

// GetTotal 获取储蓄总额
// @Summary 获取储蓄总额
// @Description 返回当前用户全部存入流水之和
// @Tags 储蓄
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=TotalSavingsResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings/total [get]
func (h *SavingsHandler) GetTotal(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	total, err := h.savings().TotalSavings(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "汇总储蓄失败"))
		return
	}

	Success(c, TotalSavingsResponse{Total: total})
}

// ListTransactions 获取存入流水
// @Summary 获取存入流水
// @Description 返回当前用户的存入流水，按时间倒序
// @Tags 储蓄
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.SavingsTransaction} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/savings/transactions [get]
func (h *SavingsHandler) ListTransactions(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	txs, err := h.savings().ListTransactions(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询储蓄流水失败"))
		return
	}

	Success(c, txs)
}
