package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedLogin(maxAttempts int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoginRateLimit(maxAttempts, window))
	router.POST("/login", func(c *gin.Context) {
		c.String(200, "ok")
	})
	return router
}

func rateLimitReq(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login", nil)
	req.Header.Set("X-Real-IP", ip)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginRateLimit(t *testing.T) {
	// 短窗口 200ms，最多 2 次
	router := newRateLimitedLogin(2, 200*time.Millisecond)

	// 同一 IP 连续 3 次，第 3 次应返回 429
	w1 := rateLimitReq(router, "192.168.1.1")
	w2 := rateLimitReq(router, "192.168.1.1")
	w3 := rateLimitReq(router, "192.168.1.1")

	assert.Equal(t, 200, w1.Code)
	assert.Equal(t, 200, w2.Code)
	assert.Equal(t, http.StatusTooManyRequests, w3.Code)
	assert.Contains(t, w3.Body.String(), "频繁")

	// 不同 IP 互不影响
	w4 := rateLimitReq(router, "192.168.1.2")
	w5 := rateLimitReq(router, "192.168.1.2")
	assert.Equal(t, 200, w4.Code)
	assert.Equal(t, 200, w5.Code)
}

func TestLoginRateLimit_WindowExpires(t *testing.T) {
	router := newRateLimitedLogin(1, 100*time.Millisecond)

	w1 := rateLimitReq(router, "10.0.0.1")
	w2 := rateLimitReq(router, "10.0.0.1")
	assert.Equal(t, 200, w1.Code)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)

	// 窗口滑过之后额度恢复，顺带触发请求路径上的过期清理
	time.Sleep(150 * time.Millisecond)
	w3 := rateLimitReq(router, "10.0.0.1")
	assert.Equal(t, 200, w3.Code)
}
