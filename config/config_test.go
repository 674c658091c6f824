package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	defer func() { GlobalConfig = nil }()

	// 内置默认配置即可起服务
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "data/accountit.db", cfg.Database.Path)
	assert.Equal(t, 24, cfg.JWT.ExpireHours)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.NotEmpty(t, cfg.JWT.Secret)
	assert.False(t, cfg.Email.Enabled)

	// 全局实例同步更新
	assert.Same(t, cfg, GlobalConfig)
}

func TestSafeErrorMessage(t *testing.T) {
	fallback := "查询预算失败"
	testErr := errors.New("disk I/O error")

	// nil err 返回 fallback
	assert.Equal(t, fallback, SafeErrorMessage(nil, fallback))

	// release 模式返回 fallback，不向客户端暴露底层数据库错误
	GlobalConfig = &Config{Server: ServerConfig{Mode: "release"}}
	defer func() { GlobalConfig = nil }()
	assert.Equal(t, fallback, SafeErrorMessage(testErr, fallback))

	// debug 模式返回 err.Error()
	GlobalConfig = &Config{Server: ServerConfig{Mode: "debug"}}
	assert.Equal(t, "disk I/O error", SafeErrorMessage(testErr, fallback))

	// GlobalConfig 为 nil 时返回 err.Error()（视为开发环境）
	GlobalConfig = nil
	assert.Equal(t, "disk I/O error", SafeErrorMessage(testErr, fallback))
}
