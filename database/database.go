package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"accountit/config"
	"accountit/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
// 打开本地 SQLite 单文件数据库并执行增量迁移（只建表/加列，不丢数据）
func Init(cfg *config.Config) error {
	// 确保数据库目录存在
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建数据库目录失败: %w", err)
		}
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if cfg.Database.LogMode {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return fmt.Errorf("打开数据库失败: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// SQLite 单写多读：限制为单个写连接，避免 database is locked
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	// SQLite 性能与可靠性设置
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	if err := Migrate(DB); err != nil {
		return err
	}

	log.Println("数据库初始化成功")
	return nil
}

// Migrate 执行增量迁移
// AutoMigrate 只做 CREATE TABLE IF NOT EXISTS / ALTER TABLE ADD COLUMN，
// 版本升级不会清空已有数据
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Budget{},
		&models.Category{},
		&models.SavingsEntry{},
		&models.PasswordReset{},
	); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 兼容历史数据：老版本没有 currency 字段，默认设置为 ZAR
	_ = db.Model(&models.User{}).
		Where("currency IS NULL OR currency = ''").
		Update("currency", models.DefaultCurrency).Error

	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
