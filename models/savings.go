package models

import (
	"time"
)

// 储蓄流水条目类型
const (
	// SavingsTypeGoal 目标定义：纯元数据，创建后不再修改
	SavingsTypeGoal = "goal"
	// SavingsTypeDeposit 存入记录：金额的唯一事实来源，按目标名求和得出当前进度
	SavingsTypeDeposit = "deposit"
)

// SavingsEntry 储蓄流水模型（追加式账本）
// type=goal 的行使用 Name/TargetAmount/TargetDate 字段；
// type=deposit 的行使用 Name/Amount/Date 字段，Name 指向同一用户下的目标名
type SavingsEntry struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	Type         string     `json:"type" gorm:"size:16;index;not null"`
	Name         string     `json:"name" gorm:"size:100;not null"` // 目标名
	Amount       float64    `json:"amount" gorm:"type:decimal(10,2);not null;default:0"`
	TargetAmount float64    `json:"target_amount,omitempty" gorm:"type:decimal(10,2)"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	Date         time.Time  `json:"date" gorm:"index;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	User         User       `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 设置表名
func (SavingsEntry) TableName() string {
	return "savings"
}

// SavingsGoal 储蓄目标视图对象（目标元数据 + 按存入流水汇总的当前金额）
type SavingsGoal struct {
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
}

// SavingsTransaction 储蓄存入流水视图对象
type SavingsTransaction struct {
	GoalName string    `json:"goal_name"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
}
