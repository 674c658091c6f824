package api

import (
	"errors"
	"log"

	"accountit/config"
	"accountit/database"
	"accountit/middleware"
	"accountit/models"
	"accountit/service"
	"accountit/store"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg          *config.Config
	emailService *service.EmailService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		emailService: service.NewEmailService(&cfg.Email),
	}
}

func (h *AuthHandler) users() *store.UserStore {
	return store.NewUserStore(database.DB)
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username         string `json:"username" binding:"required,min=3,max=50" example:"alice"`
	Password         string `json:"password" binding:"required,min=6,max=50" example:"password123"`
	SecurityQuestion string `json:"security_question" binding:"required,min=1,max=255" example:"养的第一只宠物叫什么？"`
	SecurityAnswer   string `json:"security_answer" binding:"required,min=1,max=255" example:"Rex"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户账号，用户行与零值预算行在同一事务中写入
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} Response{data=models.User} "注册成功"
// @Failure 400 {object} Response "请求参数错误或用户名已存在"
// @Failure 500 {object} Response "服务器错误"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	user, err := h.users().Register(req.Username, req.Password, req.SecurityQuestion, req.SecurityAnswer)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			BadRequest(c, "用户名已存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "创建用户失败"))
		return
	}

	SuccessWithMessage(c, "注册成功", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户登录获取 JWT token
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "用户名或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	userID, err := h.users().Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			Unauthorized(c, "用户名或密码错误")
			return
		}
		InternalError(c, SafeErrorMessage(err, "登录失败"))
		return
	}

	token, err := middleware.GenerateToken(userID, req.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}

	user, err := h.users().GetByID(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询用户失败"))
		return
	}

	Success(c, LoginResponse{
		Token:    token,
		UserInfo: *user,
	})
}

// GetProfile 获取当前用户信息
// @Summary 获取当前用户信息
// @Description 获取当前登录用户的详细信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	user, err := h.users().GetByID(userID)
	if err != nil {
		NotFound(c, "用户不存在")
		return
	}

	Success(c, user)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required" example:"oldpassword123"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50" example:"newpassword123"`
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Description 校验旧密码后修改当前用户密码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "密码信息"
// @Success 200 {object} Response "修改成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "原密码错误"
// @Router /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.users().ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidCredentials):
			Unauthorized(c, "原密码错误")
		case errors.Is(err, store.ErrNotFound):
			NotFound(c, "用户不存在")
		default:
			InternalError(c, SafeErrorMessage(err, "更新密码失败"))
		}
		return
	}

	SuccessWithMessage(c, "密码修改成功", nil)
}

// ============== 安全问题找回密码 ==============

// SecurityQuestionResponse 安全问题响应
type SecurityQuestionResponse struct {
	Question string `json:"question"`
}

// GetSecurityQuestion 获取安全问题
// @Summary 获取安全问题
// @Description 根据用户名返回注册时设置的安全问题
// @Tags 认证
// @Produce json
// @Param username query string true "用户名"
// @Success 200 {object} Response{data=SecurityQuestionResponse} "获取成功"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/auth/security-question [get]
func (h *AuthHandler) GetSecurityQuestion(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		BadRequest(c, "请提供用户名")
		return
	}

	question, err := h.users().GetSecurityQuestion(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			NotFound(c, "用户不存在")
			return
		}
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}

	Success(c, SecurityQuestionResponse{Question: question})
}

// VerifySecurityAnswerRequest 验证安全问题答案请求
type VerifySecurityAnswerRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Answer   string `json:"answer" binding:"required" example:"Rex"`
}

// ResetTokenResponse 重置令牌响应
type ResetTokenResponse struct {
	ResetToken string `json:"reset_token"`
}

// VerifySecurityAnswer 验证安全问题答案
// @Summary 验证安全问题答案
// @Description 答案验证通过后签发一次性密码重置令牌（30分钟有效），绝不返回原密码
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body VerifySecurityAnswerRequest true "验证信息"
// @Success 200 {object} Response{data=ResetTokenResponse} "验证成功"
// @Failure 401 {object} Response "答案错误"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/auth/verify-answer [post]
func (h *AuthHandler) VerifySecurityAnswer(c *gin.Context) {
	var req VerifySecurityAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	reset, err := h.users().VerifySecurityAnswer(req.Username, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			NotFound(c, "用户不存在")
		case errors.Is(err, store.ErrInvalidCredentials):
			Unauthorized(c, "答案错误")
		default:
			InternalError(c, SafeErrorMessage(err, "验证失败"))
		}
		return
	}

	// 邮件服务可用时同时投递一封重置邮件，不影响接口返回
	if h.cfg.Email.Enabled {
		if err := h.emailService.SendResetTokenEmail(req.Username, reset.Token); err != nil {
			log.Printf("发送重置邮件失败: %v", err)
		}
	}

	SuccessWithMessage(c, "验证成功", ResetTokenResponse{ResetToken: reset.Token})
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token" binding:"required,len=64"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=50" example:"newpassword123"`
}

// ResetPassword 使用令牌重置密码
// @Summary 重置密码
// @Description 使用安全问题流程签发的令牌重置密码，令牌一次性
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "重置密码请求"
// @Success 200 {object} Response "密码重置成功"
// @Failure 400 {object} Response "令牌无效或已过期"
// @Router /api/v1/auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.users().ResetPassword(req.ResetToken, req.NewPassword); err != nil {
		if errors.Is(err, store.ErrInvalidToken) {
			BadRequest(c, "令牌无效或已过期")
			return
		}
		InternalError(c, SafeErrorMessage(err, "重置密码失败"))
		return
	}

	SuccessWithMessage(c, "密码重置成功，请使用新密码登录", nil)
}

// ============== 货币偏好 ==============

// CurrencyResponse 货币偏好响应
type CurrencyResponse struct {
	Code   string `json:"code" example:"ZAR"`
	Symbol string `json:"symbol" example:"R"`
}

// GetCurrency 获取货币偏好
// @Summary 获取货币偏好
// @Description 返回当前用户的货币代码与显示符号
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=CurrencyResponse} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/currency [get]
func (h *AuthHandler) GetCurrency(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	code, err := h.users().GetCurrency(userID)
	if err != nil {
		NotFound(c, "用户不存在")
		return
	}
	symbol, err := h.users().GetCurrencySymbol(userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询货币失败"))
		return
	}

	Success(c, CurrencyResponse{Code: code, Symbol: symbol})
}

// UpdateCurrencyRequest 更新货币偏好请求
type UpdateCurrencyRequest struct {
	Code string `json:"code" binding:"required,len=3" example:"USD"`
}

// UpdateCurrency 更新货币偏好
// @Summary 更新货币偏好
// @Description 更新当前用户的货币代码，仅支持固定列表内的代码
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateCurrencyRequest true "货币代码"
// @Success 200 {object} Response "更新成功"
// @Failure 400 {object} Response "不支持的货币代码"
// @Failure 401 {object} Response "未授权"
// @Router /api/v1/auth/currency [put]
func (h *AuthHandler) UpdateCurrency(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	if err := h.users().UpdateCurrency(userID, req.Code); err != nil {
		switch {
		case errors.Is(err, store.ErrUnsupportedCurrency):
			BadRequest(c, "不支持的货币代码")
		case errors.Is(err, store.ErrNotFound):
			NotFound(c, "用户不存在")
		default:
			InternalError(c, SafeErrorMessage(err, "更新货币失败"))
		}
		return
	}

	SuccessWithMessage(c, "更新成功", nil)
}

// ListCurrencies 列出支持的货币
// @Summary 列出支持的货币
// @Description 返回所有支持的货币代码及显示符号
// @Tags 认证
// @Produce json
// @Success 200 {object} Response{data=[]CurrencyResponse} "获取成功"
// @Router /api/v1/currencies [get]
func (h *AuthHandler) ListCurrencies(c *gin.Context) {
	codes := models.SupportedCurrencies()
	list := make([]CurrencyResponse, 0, len(codes))
	for _, code := range codes {
		symbol, _ := models.CurrencySymbol(code)
		list = append(list, CurrencyResponse{Code: code, Symbol: symbol})
	}
	Success(c, list)
}
