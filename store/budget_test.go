package store

import (
	"testing"

	"accountit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetStore_ZeroBeforeAnySet(t *testing.T) {
	db := setupTestDB(t)
	s := NewBudgetStore(db)

	// 直接造一个没有预算行的用户，读取应自愈出零值行
	user := models.User{Username: "bob", Password: "x", SecurityQuestion: "q", SecurityAnswer: "a"}
	require.NoError(t, db.Create(&user).Error)

	total, err := s.GetTotalBudget(user.ID)
	require.NoError(t, err)
	assert.Zero(t, total)

	income, err := s.GetIncome(user.ID)
	require.NoError(t, err)
	assert.Zero(t, income)

	// 重复读取幂等，只会有一行
	_, err = s.GetTotalBudget(user.ID)
	require.NoError(t, err)
	var count int64
	db.Model(&models.Budget{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBudgetStore_SetBudget(t *testing.T) {
	db := setupTestDB(t)
	s := NewBudgetStore(db)
	userID := registerTestUser(t, db, "alice")

	require.NoError(t, s.SetBudget(userID, 5000))
	total, err := s.GetTotalBudget(userID)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, total)

	// 覆盖设置
	require.NoError(t, s.SetBudget(userID, 3000))
	total, err = s.GetTotalBudget(userID)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, total)
}

func TestBudgetStore_AddIncome_Commutative(t *testing.T) {
	db := setupTestDB(t)
	s := NewBudgetStore(db)

	a := registerTestUser(t, db, "alice")
	b := registerTestUser(t, db, "bob")

	// 100 再 50 与 50 再 100 结果一致
	require.NoError(t, s.AddIncome(a, 100))
	require.NoError(t, s.AddIncome(a, 50))
	require.NoError(t, s.AddIncome(b, 50))
	require.NoError(t, s.AddIncome(b, 100))

	incomeA, err := s.GetIncome(a)
	require.NoError(t, err)
	incomeB, err := s.GetIncome(b)
	require.NoError(t, err)
	assert.Equal(t, 150.0, incomeA)
	assert.Equal(t, incomeA, incomeB)
}

func TestBudgetStore_ResetIncome(t *testing.T) {
	db := setupTestDB(t)
	s := NewBudgetStore(db)
	userID := registerTestUser(t, db, "alice")

	require.NoError(t, s.AddIncome(userID, 1234.56))
	require.NoError(t, s.ResetIncome(userID))

	income, err := s.GetIncome(userID)
	require.NoError(t, err)
	assert.Zero(t, income)

	// 收入清零不影响总预算
	require.NoError(t, s.SetBudget(userID, 800))
	require.NoError(t, s.ResetIncome(userID))
	total, err := s.GetTotalBudget(userID)
	require.NoError(t, err)
	assert.Equal(t, 800.0, total)
}
