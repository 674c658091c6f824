package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"accountit/config"
	"accountit/database"
	"accountit/middleware"
	"accountit/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestEnv 用内存 SQLite 替换全局数据库连接，并初始化测试用配置
func setupTestEnv(t *testing.T) *config.Config {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库随连接销毁，串行化到单连接上
	sqlDB.SetMaxOpenConns(1)
	db.Exec("PRAGMA foreign_keys = ON")

	require.NoError(t, database.Migrate(db))

	old := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = old
		sqlDB.Close()
	})

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpireHours: 24,
			ExpireTime:  24 * time.Hour,
		},
	}
	middleware.InitJWT(cfg)
	return cfg
}

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

// registerAPITestUser 直接通过存储层建号，密码 password123，答案 Rex
func registerAPITestUser(t *testing.T, username string) uint {
	t.Helper()
	user, err := store.NewUserStore(database.DB).Register(username, "password123", "养的第一只宠物叫什么？", "Rex")
	require.NoError(t, err)
	return user.ID
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
