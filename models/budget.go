package models

import (
	"time"
)

// Budget 预算模型，与用户一对一
// 任意读取前会先确保存在一条零值记录（见 store.BudgetStore）
type Budget struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	TotalBudget float64   `json:"total_budget" gorm:"type:decimal(10,2);not null;default:0"`
	Income      float64   `json:"income" gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (Budget) TableName() string {
	return "budgets"
}
