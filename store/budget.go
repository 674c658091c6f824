package store

import (
	"fmt"

	"accountit/models"

	"gorm.io/gorm"
)

// BudgetStore 预算存储：每个用户一行，记录总预算与收入两个标量
type BudgetStore struct {
	db *gorm.DB
}

// NewBudgetStore 创建预算存储
func NewBudgetStore(db *gorm.DB) *BudgetStore {
	return &BudgetStore{db: db}
}

// ensureExists 自愈：预算行不存在时先插入零值行
// 老版本注册不建预算行，任何读取都先走这里，幂等
func (s *BudgetStore) ensureExists(userID uint) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Where(models.Budget{UserID: userID}).
		Attrs(models.Budget{TotalBudget: 0, Income: 0}).
		FirstOrCreate(&budget).Error
	if err != nil {
		return nil, fmt.Errorf("初始化预算记录失败: %w", err)
	}
	return &budget, nil
}

// Get 获取用户的预算记录（不存在则先创建零值行）
func (s *BudgetStore) Get(userID uint) (*models.Budget, error) {
	return s.ensureExists(userID)
}

// GetTotalBudget 获取总预算
func (s *BudgetStore) GetTotalBudget(userID uint) (float64, error) {
	budget, err := s.ensureExists(userID)
	if err != nil {
		return 0, err
	}
	return budget.TotalBudget, nil
}

// GetIncome 获取收入
func (s *BudgetStore) GetIncome(userID uint) (float64, error) {
	budget, err := s.ensureExists(userID)
	if err != nil {
		return 0, err
	}
	return budget.Income, nil
}

// SetBudget 覆盖设置总预算
func (s *BudgetStore) SetBudget(userID uint, amount float64) error {
	if _, err := s.ensureExists(userID); err != nil {
		return err
	}
	return s.db.Model(&models.Budget{}).Where("user_id = ?", userID).
		Update("total_budget", amount).Error
}

// AddIncome 累加收入
// 单条 SQL 级自增，避免读改写造成的丢失更新
func (s *BudgetStore) AddIncome(userID uint, delta float64) error {
	if _, err := s.ensureExists(userID); err != nil {
		return err
	}
	return s.db.Model(&models.Budget{}).Where("user_id = ?", userID).
		Update("income", gorm.Expr("income + ?", delta)).Error
}

// ResetIncome 收入清零
func (s *BudgetStore) ResetIncome(userID uint) error {
	if _, err := s.ensureExists(userID); err != nil {
		return err
	}
	return s.db.Model(&models.Budget{}).Where("user_id = ?", userID).
		Update("income", 0).Error
}
