package store

import (
	"fmt"

	"accountit/models"

	"gorm.io/gorm"
)

// CategoryStore 分类存储：用户的预算信封，按“置顶优先、名称次之”排序
type CategoryStore struct {
	db *gorm.DB
}

// NewCategoryStore 创建分类存储
func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// Add 新增分类，spent=0、pinned=false
func (s *CategoryStore) Add(userID uint, name string, allocated float64) (*models.Category, error) {
	var existing models.Category
	if err := s.db.Where("user_id = ? AND name = ?", userID, name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("分类 %s: %w", name, ErrDuplicate)
	}

	category := models.Category{
		UserID:    userID,
		Name:      name,
		Allocated: allocated,
	}
	if err := s.db.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("分类 %s: %w", name, ErrDuplicate)
		}
		return nil, fmt.Errorf("创建分类失败: %w", err)
	}
	return &category, nil
}

// Delete 按用户+名称硬删除分类
func (s *CategoryStore) Delete(userID uint, name string) error {
	res := s.db.Where("user_id = ? AND name = ?", userID, name).Delete(&models.Category{})
	if res.Error != nil {
		return fmt.Errorf("删除分类失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("分类 %s: %w", name, ErrNotFound)
	}
	return nil
}

// AddExpense 向分类记一笔支出
// 单条 SQL 级自增 spent，影响 0 行说明分类不存在
func (s *CategoryStore) AddExpense(userID uint, name string, amount float64) error {
	res := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Update("spent", gorm.Expr("spent + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("记录支出失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("分类 %s: %w", name, ErrNotFound)
	}
	return nil
}

// TogglePin 切换分类置顶状态，单条条件 SQL 原子完成
func (s *CategoryStore) TogglePin(userID uint, name string) error {
	res := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ?", userID, name).
		Update("pinned", gorm.Expr("CASE WHEN pinned = 1 THEN 0 ELSE 1 END"))
	if res.Error != nil {
		return fmt.Errorf("切换置顶失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("分类 %s: %w", name, ErrNotFound)
	}
	return nil
}

// List 列出用户的全部分类，置顶在前，组内按名称升序
func (s *CategoryStore) List(userID uint) ([]models.Category, error) {
	var list []models.Category
	if err := s.db.Where("user_id = ?", userID).
		Order("pinned DESC, name ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询分类失败: %w", err)
	}
	return list, nil
}

// TotalSpent 用户所有分类已花费之和
func (s *CategoryStore) TotalSpent(userID uint) (float64, error) {
	var total float64
	if err := s.db.Model(&models.Category{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(spent), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("汇总支出失败: %w", err)
	}
	return total, nil
}
