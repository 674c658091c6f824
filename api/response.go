package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应信封
// 所有接口都返回 {code, message, data}，code 与 HTTP 状态码一致，
// data 按接口放用户、预算概览、分类/目标列表等载荷，为空时省略
type Response struct {
	Code    int         `json:"code" example:"200"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应，用于注册、存入这类有确认文案的写操作
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400 错误：参数不合法、重名、令牌无效
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误：凭证或安全问题答案错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalError 500 错误，详情经 SafeErrorMessage 过滤后返回
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404 错误：用户、分类或储蓄目标不存在
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}
