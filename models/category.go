package models

import (
	"time"
)

// Category 预算分类（信封）模型
// 同一用户下分类名唯一，支出通过 spent 累加，置顶分类排序靠前
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_user_category;not null"`
	Name      string    `json:"name" gorm:"uniqueIndex:idx_user_category;size:50;not null"`
	Allocated float64   `json:"allocated" gorm:"type:decimal(10,2);not null;default:0"`
	Spent     float64   `json:"spent" gorm:"type:decimal(10,2);not null;default:0"`
	Pinned    bool      `json:"pinned" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Category) TableName() string {
	return "categories"
}
