package store

import (
	"errors"
	"fmt"
	"time"

	"accountit/models"

	"gorm.io/gorm"
)

// SavingsStore 储蓄账本：追加式流水表
// goal 行是纯元数据，deposit 行是金额的唯一事实来源，
// 目标当前进度一律对 deposit 按名称求和得出，不维护冗余计数
type SavingsStore struct {
	db *gorm.DB
}

// NewSavingsStore 创建储蓄账本存储
func NewSavingsStore(db *gorm.DB) *SavingsStore {
	return &SavingsStore{db: db}
}

// AddGoal 新增储蓄目标
func (s *SavingsStore) AddGoal(userID uint, name string, targetAmount float64, targetDate *time.Time) (*models.SavingsEntry, error) {
	var existing models.SavingsEntry
	err := s.db.Where("user_id = ? AND type = ? AND name = ?",
		userID, models.SavingsTypeGoal, name).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("目标 %s: %w", name, ErrDuplicate)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询储蓄目标失败: %w", err)
	}

	entry := models.SavingsEntry{
		UserID:       userID,
		Type:         models.SavingsTypeGoal,
		Name:         name,
		Amount:       0,
		TargetAmount: targetAmount,
		TargetDate:   targetDate,
		Date:         time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("目标 %s: %w", name, ErrDuplicate)
		}
		return nil, fmt.Errorf("创建储蓄目标失败: %w", err)
	}
	return &entry, nil
}

// AddDeposit 向目标存入一笔
// 目标必须已存在，账本不接受悬空的存入记录
func (s *SavingsStore) AddDeposit(userID uint, goalName string, amount float64) (*models.SavingsEntry, error) {
	var goal models.SavingsEntry
	err := s.db.Where("user_id = ? AND type = ? AND name = ?",
		userID, models.SavingsTypeGoal, goalName).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("目标 %s: %w", goalName, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询储蓄目标失败: %w", err)
	}

	entry := models.SavingsEntry{
		UserID: userID,
		Type:   models.SavingsTypeDeposit,
		Name:   goalName,
		Amount: amount,
		Date:   time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("记录存入失败: %w", err)
	}
	return &entry, nil
}

// ListGoals 列出用户的储蓄目标及当前进度
// 单条聚合 JOIN 查询完成，目标允许超额存入，达标后也不做任何终止动作
func (s *SavingsStore) ListGoals(userID uint) ([]models.SavingsGoal, error) {
	type row struct {
		Name          string
		TargetAmount  float64
		TargetDate    *time.Time
		CurrentAmount float64
	}
	var rows []row
	err := s.db.Table("savings AS g").
		Select("g.name, g.target_amount, g.target_date, COALESCE(SUM(d.amount), 0) AS current_amount").
		Joins("LEFT JOIN savings AS d ON d.user_id = g.user_id AND d.name = g.name AND d.type = ?",
			models.SavingsTypeDeposit).
		Where("g.user_id = ? AND g.type = ?", userID, models.SavingsTypeGoal).
		Group("g.id, g.name, g.target_amount, g.target_date").
		Order("g.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("查询储蓄目标失败: %w", err)
	}

	goals := make([]models.SavingsGoal, len(rows))
	for i, r := range rows {
		goals[i] = models.SavingsGoal{
			Name:          r.Name,
			TargetAmount:  r.TargetAmount,
			CurrentAmount: r.CurrentAmount,
			TargetDate:    r.TargetDate,
		}
	}
	return goals, nil
}

// TotalSavings 用户全部存入流水之和
func (s *SavingsStore) TotalSavings(userID uint) (float64, error) {
	var total float64
	err := s.db.Model(&models.SavingsEntry{}).
		Where("user_id = ? AND type = ?", userID, models.SavingsTypeDeposit).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("汇总储蓄失败: %w", err)
	}
	return total, nil
}

// ListTransactions 列出用户的存入流水，按时间倒序
func (s *SavingsStore) ListTransactions(userID uint) ([]models.SavingsTransaction, error) {
	var entries []models.SavingsEntry
	err := s.db.Where("user_id = ? AND type = ?", userID, models.SavingsTypeDeposit).
		Order("date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("查询储蓄流水失败: %w", err)
	}

	txs := make([]models.SavingsTransaction, len(entries))
	for i, e := range entries {
		txs[i] = models.SavingsTransaction{
			GoalName: e.Name,
			Amount:   e.Amount,
			Date:     e.Date,
		}
	}
	return txs, nil
}
