package models

import (
	"time"
)

// User 用户模型
// 密码只保存 bcrypt 哈希，安全问题答案用于找回密码（比较时不区分大小写）
type User struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Username         string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Password         string    `json:"-" gorm:"size:255;not null"`
	SecurityQuestion string    `json:"security_question" gorm:"size:255;not null"`
	SecurityAnswer   string    `json:"-" gorm:"size:255;not null"`
	Currency         string    `json:"currency" gorm:"size:8;default:ZAR"` // 货币代码，见 currency.go
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}
