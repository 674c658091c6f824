package store

import (
	"testing"

	"accountit/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 打开内存 SQLite 并建表
// 限制为单连接，保证 :memory: 数据库在整个测试期间存活
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// registerTestUser 注册一个测试用户并返回其 ID
func registerTestUser(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	user, err := NewUserStore(db).Register(username, "password123", "养的第一只宠物叫什么？", "Rex")
	require.NoError(t, err)
	return user.ID
}
