package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// LoginRateLimit 登录接口限流中间件
// 每 IP 在窗口内最多 maxAttempts 次尝试，超过则返回 429。
// 过期 IP 的清理搭在请求路径上顺带完成，中间件不持有后台 goroutine，
// 实例随路由注销即可被回收
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	type entry struct {
		timestamps []time.Time
	}
	var (
		mu        sync.Mutex
		store     = make(map[string]*entry)
		lastSweep = time.Now()
	)

	// 调用方须持有 mu
	sweep := func(cutoff time.Time) {
		for ip, e := range store {
			newTs := e.timestamps[:0]
			for _, t := range e.timestamps {
				if t.After(cutoff) {
					newTs = append(newTs, t)
				}
			}
			if len(newTs) == 0 {
				delete(store, ip)
			} else {
				e.timestamps = newTs
			}
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()
		cutoff := now.Add(-window)

		mu.Lock()
		// 每隔一个窗口做一次全表清理，防止一次性 IP 常驻内存
		if now.Sub(lastSweep) > window {
			sweep(cutoff)
			lastSweep = now
		}

		e, ok := store[ip]
		if !ok {
			e = &entry{}
			store[ip] = e
		}
		// 移除窗口外的记录
		newTs := e.timestamps[:0]
		for _, t := range e.timestamps {
			if t.After(cutoff) {
				newTs = append(newTs, t)
			}
		}
		e.timestamps = newTs
		if len(e.timestamps) >= maxAttempts {
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		e.timestamps = append(e.timestamps, now)
		mu.Unlock()
		c.Next()
	}
}
